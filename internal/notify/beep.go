// Package notify plays earcons and posts desktop notifications so the user
// can tell when the agent is listening without watching a terminal.
package notify

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// Chime plays one short mp3 earcon and blocks until it finishes.
func Chime(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open earcon: %w", err)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		return fmt.Errorf("decode earcon: %w", err)
	}
	defer streamer.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))
	<-done
	return nil
}

// Desktop posts a transient desktop notification. Failures are ignored;
// missing notify-send just means no popup.
func Desktop(summary string) {
	_ = exec.Command("notify-send", "-t", "2000", "shoptalk", summary).Run()
}
