package session

import (
	"context"
	"fmt"
	log "log/slog"

	"shoptalk/pkg/audioconv"
)

// replayCap bounds one fixture at two minutes of audio.
const replayCap = 120 * 16000

// RunReplay feeds pre-recorded utterance files through the normal
// transcribe-respond-speak path, standing in for a microphone.
func (s *Session) RunReplay(ctx context.Context, files []string) error {
	s.Greet()
	for _, path := range files {
		pcm, err := audioconv.DecodeFile(ctx, path, audioconv.Options{MaxSamples: replayCap})
		if err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}

		text, err := s.cfg.Recognize.Transcribe(ctx, pcm)
		if err != nil {
			return fmt.Errorf("transcribe %s: %w", path, err)
		}
		log.Info("replayed utterance", "file", path, "text", text)

		if _, err := s.HandleUtterance(ctx, text); err != nil {
			return err
		}
	}
	return nil
}
