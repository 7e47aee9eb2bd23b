package barista

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoptalk/internal/ledger"
)

func TestAssistantSavesCompletedOrderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.log")
	a := NewAssistant(ledger.NewOrderLog(path))
	ctx := context.Background()

	assert.Contains(t, a.Greeting(), "What type of drink would you like?")

	for _, u := range []string{"latte", "medium", "oat milk", "no"} {
		reply, err := a.Respond(ctx, u)
		require.NoError(t, err)
		require.NotEmpty(t, reply)
	}

	reply, err := a.Respond(ctx, "Sam")
	require.NoError(t, err)
	assert.Contains(t, reply, "Order confirmed.")
	assert.Contains(t, reply, "Your order has been saved.")

	// a stray extra utterance must not append a second line
	_, err = a.Respond(ctx, "thanks")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var orders []CoffeeOrder
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var o CoffeeOrder
		require.NoError(t, json.Unmarshal(sc.Bytes(), &o))
		orders = append(orders, o)
	}
	require.NoError(t, sc.Err())

	require.Len(t, orders, 1)
	assert.Equal(t, "latte", orders[0].DrinkType)
	assert.Equal(t, "sam", orders[0].Name)
	assert.Empty(t, orders[0].Extras)
}

func TestAssistantPropagatesWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	a := NewAssistant(ledger.NewOrderLog(filepath.Join(blocker, "orders.log")))
	ctx := context.Background()

	for _, u := range []string{"latte", "small", "oat", "no"} {
		_, err := a.Respond(ctx, u)
		require.NoError(t, err)
	}
	_, err := a.Respond(ctx, "kim")
	assert.Error(t, err)
}
