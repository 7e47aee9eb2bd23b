package ledger

import (
	"encoding/json"
	"fmt"
	"os"
)

// OrderLog is the barista-side order sink: one JSON object per line,
// appended to a plain text file. Unlike the Ledger there is no atomicity
// here, just an append.
type OrderLog struct {
	path string
}

func NewOrderLog(path string) *OrderLog {
	return &OrderLog{path: path}
}

func (ol *OrderLog) Append(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	f, err := os.OpenFile(ol.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open order log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append order: %w", err)
	}
	return nil
}
