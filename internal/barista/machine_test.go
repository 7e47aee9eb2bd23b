package barista

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullOrderSequence(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, StateDrink, m.State())
	assert.Equal(t, "What type of drink would you like?", m.Prompt())

	utterances := []string{"latte", "medium", "oat milk", "no", "Sam"}

	var reply string
	var done bool
	for i, u := range utterances {
		reply, done = m.Advance(u)
		if i < len(utterances)-1 {
			require.False(t, done, "machine finished early on %q", u)
			require.NotEmpty(t, reply)
		}
	}

	require.True(t, done)
	assert.Equal(t, StateDone, m.State())

	o := m.Order()
	assert.Equal(t, "latte", o.DrinkType)
	assert.Equal(t, "medium", o.Size)
	assert.Equal(t, "oat milk", o.Milk)
	assert.Empty(t, o.Extras)
	assert.Equal(t, "sam", o.Name)
	assert.False(t, o.TakenAt.IsZero())

	assert.Equal(t, "Order confirmed. A medium latte with oat milk milk for sam.", reply)
}

func TestExtrasKeptWhenNotDeclined(t *testing.T) {
	m := NewMachine()
	m.Advance("mocha")
	m.Advance("large")
	m.Advance("whole")
	reply, done := m.Advance("extra caramel")
	require.False(t, done)
	assert.Equal(t, "May I have your name for the order?", reply)

	reply, done = m.Advance("Ava")
	require.True(t, done)
	assert.Equal(t, []string{"extra caramel"}, m.Order().Extras)
	assert.Contains(t, reply, "extras: extra caramel")
	assert.Contains(t, reply, "for ava.")
}

func TestDeclineVariants(t *testing.T) {
	for _, decline := range []string{"no", "No thanks", "nothing for me", "NO"} {
		m := NewMachine()
		m.Advance("flat white")
		m.Advance("small")
		m.Advance("oat")
		m.Advance(decline)
		m.Advance("kim")
		assert.Empty(t, m.Order().Extras, "utterance %q should decline extras", decline)
	}
}

func TestPromptsFollowSlotOrder(t *testing.T) {
	m := NewMachine()

	reply, _ := m.Advance("cappuccino")
	assert.Equal(t, "What size would you prefer? Small, medium, or large?", reply)

	reply, _ = m.Advance("medium")
	assert.Equal(t, "What kind of milk would you like?", reply)

	reply, _ = m.Advance("soy")
	assert.Equal(t, "Any extras like sugar, whipped cream, or caramel?", reply)

	reply, _ = m.Advance("vanilla syrup")
	assert.Equal(t, "May I have your name for the order?", reply)
}

func TestVerbatimAssignmentIsNotValidated(t *testing.T) {
	// anything lands in the awaited slot, nonsense included
	m := NewMachine()
	m.Advance("the weather is nice")
	assert.Equal(t, "the weather is nice", m.Order().DrinkType)
	assert.Equal(t, StateSize, m.State())
}

func TestAdvanceAfterDoneRepeatsSummary(t *testing.T) {
	m := NewMachine()
	for _, u := range []string{"latte", "small", "oat", "no", "Lee"} {
		m.Advance(u)
	}
	reply, done := m.Advance("another latte please")
	assert.True(t, done)
	assert.Contains(t, reply, "Order confirmed.")
	assert.Equal(t, "latte", m.Order().DrinkType)
}
