package ledger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder(id string, total int) Order {
	return Order{
		ID: id,
		Items: []LineItem{
			{ProductID: "mug-001", Name: "Stoneware Coffee Mug", Quantity: 1, UnitPrice: total},
		},
		Total:     total,
		Currency:  "INR",
		CreatedAt: time.Now().UTC(),
	}
}

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	l := Load(filepath.Join(t.TempDir(), "orders.json"))
	assert.Equal(t, 0, l.Len())
	_, ok := l.Latest()
	assert.False(t, ok)
}

func TestLoadMalformedStartsEmpty(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	assert.Equal(t, 0, Load(path).Len())

	path = filepath.Join(dir, "object.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"ORD-1"}`), 0o644))
	assert.Equal(t, 0, Load(path).Len())
}

func TestAppendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")

	l := Load(path)
	require.NoError(t, l.Append(testOrder("ORD-1", 799)))
	require.NoError(t, l.Append(testOrder("ORD-2", 599)))
	require.NoError(t, l.Append(testOrder("ORD-3", 1598)))

	reloaded := Load(path)
	require.Equal(t, 3, reloaded.Len())

	orders := reloaded.Orders()
	assert.Equal(t, "ORD-1", orders[0].ID)
	assert.Equal(t, "ORD-2", orders[1].ID)
	assert.Equal(t, "ORD-3", orders[2].ID)

	last, ok := reloaded.Latest()
	require.True(t, ok)
	assert.Equal(t, "ORD-3", last.ID)
	assert.Equal(t, 1598, last.Total)
}

func TestAppendLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.json")

	l := Load(path)
	require.NoError(t, l.Append(testOrder("ORD-1", 799)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "orders.json", entries[0].Name())
}

func TestAppendFailureRollsBack(t *testing.T) {
	// point the ledger at a path whose parent is a file, so persist fails
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	l := Load(filepath.Join(blocker, "orders.json"))
	err := l.Append(testOrder("ORD-1", 799))
	require.Error(t, err)
	assert.Equal(t, 0, l.Len())
}

func TestOrderLogAppendsOneLinePerOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.log")
	ol := NewOrderLog(path)

	require.NoError(t, ol.Append(map[string]any{"drinkType": "latte", "name": "sam"}))
	require.NoError(t, ol.Append(map[string]any{"drinkType": "mocha", "name": "ava"}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		lines = append(lines, m)
	}
	require.NoError(t, sc.Err())

	require.Len(t, lines, 2)
	assert.Equal(t, "latte", lines[0]["drinkType"])
	assert.Equal(t, "ava", lines[1]["name"])
}
