package barista

import (
	"fmt"
	log "log/slog"
	"strings"
	"time"
)

// State names one slot the machine is currently waiting on.
type State int

const (
	StateDrink State = iota
	StateSize
	StateMilk
	StateExtras
	StateName
	StateDone
)

func (s State) String() string {
	switch s {
	case StateDrink:
		return "drink"
	case StateSize:
		return "size"
	case StateMilk:
		return "milk"
	case StateExtras:
		return "extras"
	case StateName:
		return "name"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// CoffeeOrder is the record filled slot by slot over the conversation.
type CoffeeOrder struct {
	DrinkType string    `json:"drinkType"`
	Size      string    `json:"size"`
	Milk      string    `json:"milk"`
	Extras    []string  `json:"extras"`
	Name      string    `json:"name"`
	TakenAt   time.Time `json:"taken_at"`
}

// transition describes one row of the machine: the prompt asked while in a
// state, the assignment performed on the next utterance, and the state that
// follows.
type transition struct {
	prompt string
	assign func(o *CoffeeOrder, text string)
	next   State
}

// Slot values are the verbatim lower-cased utterance. Nothing is validated;
// whatever the user says lands in the slot, and there is no way to correct a
// slot once filled. That fragility is inherited behavior, kept visible here
// rather than hidden in field ordering.
var transitions = map[State]transition{
	StateDrink: {
		prompt: "What type of drink would you like?",
		assign: func(o *CoffeeOrder, text string) { o.DrinkType = text },
		next:   StateSize,
	},
	StateSize: {
		prompt: "What size would you prefer? Small, medium, or large?",
		assign: func(o *CoffeeOrder, text string) { o.Size = text },
		next:   StateMilk,
	},
	StateMilk: {
		prompt: "What kind of milk would you like?",
		assign: func(o *CoffeeOrder, text string) { o.Milk = text },
		next:   StateExtras,
	},
	StateExtras: {
		prompt: "Any extras like sugar, whipped cream, or caramel?",
		assign: func(o *CoffeeOrder, text string) {
			// "no thanks", "nothing", plain "no" — all read as a decline
			if strings.Contains(text, "no") {
				o.Extras = []string{}
			} else {
				o.Extras = []string{text}
			}
		},
		next: StateName,
	},
	StateName: {
		prompt: "May I have your name for the order?",
		assign: func(o *CoffeeOrder, text string) { o.Name = text },
		next:   StateDone,
	},
}

// Machine collects one coffee order per session. There is no reset; a new
// session gets a new machine.
type Machine struct {
	state State
	order CoffeeOrder
}

func NewMachine() *Machine {
	return &Machine{state: StateDrink}
}

func (m *Machine) State() State       { return m.state }
func (m *Machine) Done() bool         { return m.state == StateDone }
func (m *Machine) Order() CoffeeOrder { return m.order }

// Prompt returns the question for the slot currently awaited, or "" once the
// order is complete.
func (m *Machine) Prompt() string {
	tr, ok := transitions[m.state]
	if !ok {
		return ""
	}
	return tr.prompt
}

// Advance feeds one user utterance into the machine. The text is lower-cased
// and assigned verbatim to the awaited slot, then the machine moves to the
// next state. The returned reply is either the next question or, on
// completion, the order summary.
func (m *Machine) Advance(utterance string) (reply string, done bool) {
	if m.state == StateDone {
		return m.Summary(), true
	}

	text := strings.ToLower(strings.TrimSpace(utterance))
	tr := transitions[m.state]
	tr.assign(&m.order, text)

	log.Info("slot filled", "slot", m.state.String(), "value", text)
	m.state = tr.next

	if m.state == StateDone {
		m.order.TakenAt = time.Now().UTC()
		return m.Summary(), true
	}
	return m.Prompt(), false
}

// Summary builds the confirmation sentence for a completed order.
func (m *Machine) Summary() string {
	s := fmt.Sprintf("Order confirmed. A %s %s with %s milk",
		m.order.Size, m.order.DrinkType, m.order.Milk)
	if len(m.order.Extras) > 0 {
		s += " and extras: " + strings.Join(m.order.Extras, ", ")
	}
	s += fmt.Sprintf(" for %s.", m.order.Name)
	return s
}
