package barista

import (
	"context"
	"fmt"
	log "log/slog"

	"shoptalk/internal/ledger"
)

// Instructions for the LLM voice layer. With slot filling handled locally
// the model only needs the persona.
const Instructions = `You are a friendly coffee shop barista.
Your job is to take the user's coffee order.
Ask questions until you fill all fields in the order:
drink type, size, milk preference, extras, customer name.
After collecting a field, confirm briefly.
When the order is complete, say the summary.
Keep responses short and friendly.`

// Assistant wires the slot machine to the order log. It is the barista
// agent's transcription callback: every utterance goes straight into the
// machine, no LLM round-trip.
type Assistant struct {
	machine  *Machine
	orderLog *ledger.OrderLog
	saved    bool
}

func NewAssistant(orderLog *ledger.OrderLog) *Assistant {
	return &Assistant{machine: NewMachine(), orderLog: orderLog}
}

// Greeting opens the conversation with the first slot question.
func (a *Assistant) Greeting() string {
	return "Hi! I'll take your coffee order. " + a.machine.Prompt()
}

// Respond advances the machine with one utterance. On completion the order
// is appended to the log once; a failed write is returned as an error since
// a confirmed order must not silently vanish.
func (a *Assistant) Respond(_ context.Context, utterance string) (string, error) {
	reply, done := a.machine.Advance(utterance)
	if !done {
		return reply, nil
	}

	if !a.saved {
		if err := a.orderLog.Append(a.machine.Order()); err != nil {
			return "", fmt.Errorf("save coffee order: %w", err)
		}
		a.saved = true
		log.Info("coffee order saved", "order", a.machine.Order())
		return reply + " Your order has been saved. Anything else?", nil
	}
	return reply, nil
}

// Order exposes the collected slots, mainly for tests and the shutdown log.
func (a *Assistant) Order() CoffeeOrder { return a.machine.Order() }
