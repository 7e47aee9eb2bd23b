package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	log "log/slog"
	"os"
	"path/filepath"
	"time"
)

// LineItem is one product line inside an order. Name and unit price are
// snapshotted at order-creation time so later catalog edits cannot change
// historical orders.
type LineItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
	Size      string `json:"size,omitempty"`
}

// Order is one placed order. Orders are append-only: created, persisted,
// never mutated or deleted.
type Order struct {
	ID        string     `json:"id"`
	Items     []LineItem `json:"items"`
	Total     int        `json:"total"`
	Currency  string     `json:"currency"`
	CreatedAt time.Time  `json:"created_at"`
}

// Ledger holds the placed orders in memory and mirrors them to a JSON file.
// Every append rewrites the whole file; fine at demo scale, not built for
// high order volumes.
type Ledger struct {
	path   string
	orders []Order
}

// Load reads the orders file at path into a new Ledger. A missing file,
// malformed JSON or non-array content starts the ledger empty; losing a
// readable history is not fatal, losing a confirmed write is.
func Load(path string) *Ledger {
	l := &Ledger{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Info("no existing orders file, starting fresh", "path", path)
		} else {
			log.Warn("cannot read orders file, starting fresh", "path", path, "err", err)
		}
		return l
	}

	var orders []Order
	if err := json.Unmarshal(data, &orders); err != nil {
		log.Warn("orders file is not a valid order array, starting fresh", "path", path, "err", err)
		return l
	}

	l.orders = orders
	log.Info("loaded existing orders", "path", path, "count", len(orders))
	return l
}

// Append adds the order to the ledger and rewrites the backing file. The
// write is atomic: serialize to a temp file next to the target, then rename
// onto it, so readers never see a partial file. A persist failure is
// returned to the caller and must be treated as fatal; a confirmed order
// must not silently vanish.
func (l *Ledger) Append(o Order) error {
	l.orders = append(l.orders, o)
	if err := l.persist(); err != nil {
		// roll the in-memory state back so it matches the file
		l.orders = l.orders[:len(l.orders)-1]
		return err
	}
	log.Info("persisted orders", "path", l.path, "count", len(l.orders))
	return nil
}

func (l *Ledger) persist() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create orders dir: %w", err)
	}

	data, err := json.MarshalIndent(l.orders, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal orders: %w", err)
	}

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write orders: %w", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return fmt.Errorf("replace orders file: %w", err)
	}
	return nil
}

// Latest returns the most recently appended order, if any.
func (l *Ledger) Latest() (Order, bool) {
	if len(l.orders) == 0 {
		return Order{}, false
	}
	return l.orders[len(l.orders)-1], true
}

func (l *Ledger) Len() int { return len(l.orders) }

// Orders returns a copy of the ledger contents in creation order.
func (l *Ledger) Orders() []Order {
	return append([]Order(nil), l.orders...)
}
