// Package daemon wires one agent into a running voice daemon: microphone,
// transcriber, speaker, earcons, ducking, the push-to-talk socket, and the
// alternative replay and room-bus input modes.
package daemon

import (
	"context"
	log "log/slog"
	"sync"
	"time"

	"shoptalk/internal/audio"
	"shoptalk/internal/bus"
	"shoptalk/internal/ipc"
	"shoptalk/internal/notify"
	"shoptalk/internal/session"
	"shoptalk/internal/tts"
	"shoptalk/pkg/stt"
)

type Config struct {
	Agent     string // "commerce" or "barista"
	ModelPath string // whisper model
	Earcon    string // optional mp3 chime
	STTPrompt string // vocabulary hint for the transcriber
	Greeting  string
	Respond   session.Responder
}

// Run starts the agent and blocks until the context is canceled or the
// input source is exhausted. Exactly one input mode is active: the room bus
// when busURL is set, the replay fixtures when given, else the microphone.
func Run(ctx context.Context, cfg Config, busURL string, replayFiles []string) error {
	if busURL != "" {
		return runBus(ctx, cfg, busURL)
	}

	tr, err := stt.NewTranscriber(cfg.ModelPath)
	if err != nil {
		return err
	}
	defer tr.Close()
	log.Debug("Loaded whisper model", "path", cfg.ModelPath)

	rec := whisperRecognizer{tr: tr, prompt: cfg.STTPrompt}

	if len(replayFiles) > 0 {
		sess := session.New(session.Config{
			Agent:     cfg.Agent,
			Recognize: rec,
			Speak:     espeakSpeaker{},
			Respond:   cfg.Respond,
			Greeting:  cfg.Greeting,
		})
		defer sess.LogSummary()
		return sess.RunReplay(ctx, replayFiles)
	}

	return runMic(ctx, cfg, rec)
}

func runBus(ctx context.Context, cfg Config, busURL string) error {
	b, err := bus.Dial(busURL, cfg.Agent)
	if err != nil {
		return err
	}
	defer b.Close()

	// replies travel back over the room, nothing is voiced locally
	sess := session.New(session.Config{
		Agent:   cfg.Agent,
		Speak:   silentSpeaker{},
		Respond: cfg.Respond,
	})
	defer sess.LogSummary()
	return sess.RunBus(ctx, b)
}

func runMic(ctx context.Context, cfg Config, rec whisperRecognizer) error {
	mic := audio.NewRecorder()
	if err := mic.Init(); err != nil {
		return err
	}
	defer mic.Close()
	log.Debug("Loaded recorder")

	ducker := audio.NewDucker([]string{"shoptalk"}, 20)

	sess := session.New(session.Config{
		Agent:     cfg.Agent,
		Listen:    mic,
		Recognize: rec,
		Speak:     espeakSpeaker{},
		Respond:   cfg.Respond,
		Greeting:  cfg.Greeting,
		OnListen: func() {
			if cfg.Earcon != "" {
				if err := notify.Chime(cfg.Earcon); err != nil {
					log.Warn("Earcon failed", "err", err)
				}
			}
			notify.Desktop("Listening...")
			if err := ducker.Duck(ctx, 0.3, 150*time.Millisecond); err != nil {
				log.Warn("Ducking failed", "err", err)
			}
		},
		OnCaptured: func() {
			if err := ducker.Unduck(ctx, 150*time.Millisecond); err != nil {
				log.Warn("Unducking failed", "err", err)
			}
		},
	})
	defer sess.LogSummary()

	turns := make(chan struct{}, 1)
	stopCh := make(chan struct{})
	var stopOnce sync.Once
	if err := ipc.StartServer(func(msg ipc.ControlMessage) {
		switch msg.Cmd {
		case ipc.CmdTrigger:
			select {
			case turns <- struct{}{}:
			default:
				log.Warn("Turn already queued, ignoring trigger")
			}
		case ipc.CmdStop:
			stopOnce.Do(func() { close(stopCh) })
		default:
			log.Warn("Unknown command", "cmd", msg.Cmd)
		}
	}); err != nil {
		return err
	}

	log.Info("Boot up - successful", "agent", cfg.Agent, "socket", ipc.SocketPath)
	sess.Greet()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-turns:
			sess.HandleTurn(ctx)
		}
	}
}

// whisperRecognizer adapts the transcriber to the session interface.
type whisperRecognizer struct {
	tr     *stt.Transcriber
	prompt string
}

func (r whisperRecognizer) Transcribe(ctx context.Context, pcm []float32) (string, error) {
	tctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	res, err := r.tr.TranscribePCM(tctx, pcm, stt.Options{
		Language:      "en",
		InitialPrompt: r.prompt,
	})
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

type espeakSpeaker struct{}

func (espeakSpeaker) Speak(text string) error { return tts.Speak(text) }

type silentSpeaker struct{}

func (silentSpeaker) Speak(string) error { return nil }
