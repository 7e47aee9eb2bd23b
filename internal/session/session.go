// Package session runs the turn loop for one voice conversation: capture an
// utterance, transcribe it, hand the text to the agent, speak the reply.
// Recognition, reasoning and synthesis sit behind interfaces; the session
// only sequences them, one turn at a time.
package session

import (
	"context"
	"fmt"
	log "log/slog"

	"github.com/google/uuid"

	"shoptalk/internal/bus"
)

// Listener captures one utterance of microphone PCM.
type Listener interface {
	RecordUtterance() ([]float32, error)
}

// Recognizer turns PCM into text.
type Recognizer interface {
	Transcribe(ctx context.Context, pcm []float32) (string, error)
}

// Speaker voices a reply.
type Speaker interface {
	Speak(text string) error
}

// Responder is the agent behavior: user utterance text in, reply text out.
type Responder interface {
	Respond(ctx context.Context, utterance string) (string, error)
}

// ResponderFunc adapts a function to the Responder interface.
type ResponderFunc func(ctx context.Context, utterance string) (string, error)

func (f ResponderFunc) Respond(ctx context.Context, utterance string) (string, error) {
	return f(ctx, utterance)
}

// Metrics counts what happened during the session; logged at shutdown the
// same way the usage summary callback would.
type Metrics struct {
	Utterances int
	Replies    int
	Failures   int
}

type Config struct {
	ID         string // generated when empty
	Agent      string // "commerce" or "barista", for logs
	Listen     Listener
	Recognize  Recognizer
	Speak      Speaker
	Respond    Responder
	Greeting   string // spoken once at start, optional
	OnListen   func() // hook before the mic opens (earcon, ducking)
	OnCaptured func() // hook after the mic closes
}

type Session struct {
	cfg     Config
	metrics Metrics
	greeted bool
}

func New(cfg Config) *Session {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	return &Session{cfg: cfg}
}

func (s *Session) ID() string { return s.cfg.ID }

// Greet speaks the greeting once, if one is configured.
func (s *Session) Greet() {
	if s.greeted || s.cfg.Greeting == "" {
		return
	}
	s.greeted = true
	if err := s.cfg.Speak.Speak(s.cfg.Greeting); err != nil {
		log.Error("failed to speak greeting", "err", err)
	}
}

// HandleTurn runs one full voice turn: record, transcribe, respond, speak.
// A failed turn is logged and counted, not fatal; the next trigger starts
// fresh.
func (s *Session) HandleTurn(ctx context.Context) {
	if s.cfg.OnListen != nil {
		s.cfg.OnListen()
	}

	pcm, err := s.cfg.Listen.RecordUtterance()
	if s.cfg.OnCaptured != nil {
		s.cfg.OnCaptured()
	}
	if err != nil {
		log.Error("failed to record", "session", s.cfg.ID, "err", err)
		s.metrics.Failures++
		return
	}
	log.Info("recorded utterance", "session", s.cfg.ID, "samples", len(pcm))

	text, err := s.cfg.Recognize.Transcribe(ctx, pcm)
	if err != nil {
		log.Error("failed to transcribe", "session", s.cfg.ID, "err", err)
		s.metrics.Failures++
		return
	}
	log.Info("transcribed", "session", s.cfg.ID, "text", text)

	if _, err := s.HandleUtterance(ctx, text); err != nil {
		log.Error("turn failed", "session", s.cfg.ID, "err", err)
	}
}

// HandleUtterance feeds one transcribed utterance to the agent and speaks
// the reply. This is the path shared by mic, replay and room-bus input.
func (s *Session) HandleUtterance(ctx context.Context, text string) (string, error) {
	s.metrics.Utterances++

	reply, err := s.cfg.Respond.Respond(ctx, text)
	if err != nil {
		s.metrics.Failures++
		return "", fmt.Errorf("agent response: %w", err)
	}

	s.metrics.Replies++
	if err := s.cfg.Speak.Speak(reply); err != nil {
		log.Error("failed to speak reply", "session", s.cfg.ID, "err", err)
	}
	return reply, nil
}

// RunBus serves utterances arriving over the room hub instead of the
// microphone, routing each reply back to the sender.
func (s *Session) RunBus(ctx context.Context, b *bus.Bus) error {
	s.Greet()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := b.Read()
		if err != nil {
			return err
		}
		if msg.Kind != bus.KindUtterance {
			continue
		}

		reply, err := s.HandleUtterance(ctx, msg.Content)
		if err != nil {
			log.Error("bus turn failed", "session", s.cfg.ID, "from", msg.From, "err", err)
			continue
		}
		if err := b.Say(msg.From, reply); err != nil {
			log.Error("failed to send reply", "session", s.cfg.ID, "err", err)
		}
	}
}

func (s *Session) Metrics() Metrics { return s.metrics }

// LogSummary emits the end-of-session usage line.
func (s *Session) LogSummary() {
	log.Info("session summary",
		"session", s.cfg.ID, "agent", s.cfg.Agent,
		"utterances", s.metrics.Utterances,
		"replies", s.metrics.Replies,
		"failures", s.metrics.Failures)
}
