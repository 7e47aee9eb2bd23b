package audio

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

var percentRe = regexp.MustCompile(`(\d+)\s*%`)

type sinkInput struct {
	ID      int
	Volume  int
	AppName string
}

type ramp struct {
	id       int
	from, to int
}

// Ducker fades down every other application's playback while the agent has
// the microphone open, then restores the previous volumes. Streams whose
// application.name is in selfNames (our own earcons and TTS) are left alone.
type Ducker struct {
	mu        sync.Mutex
	active    bool
	selfNames []string
	restore   map[int]int // sink-input id -> volume % before ducking
	floor     int         // lowest volume we push others down to
}

func NewDucker(selfNames []string, floor int) *Ducker {
	if floor < 0 {
		floor = 0
	}
	if floor > 150 {
		floor = 150
	}
	return &Ducker{
		selfNames: append([]string(nil), selfNames...),
		restore:   make(map[int]int),
		floor:     floor,
	}
}

// Duck lowers foreign streams to current*factor (not below the floor) over
// the given fade duration. A second call while ducked is a no-op.
func (d *Ducker) Duck(ctx context.Context, factor float64, fade time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active {
		return nil
	}

	streams, err := listSinkInputs(ctx)
	if err != nil {
		return fmt.Errorf("list sink inputs: %w", err)
	}

	d.restore = make(map[int]int)
	var ramps []ramp
	for _, s := range streams {
		if d.isSelf(s) {
			continue
		}
		target := float64(s.Volume) * factor
		if target < float64(d.floor) {
			target = float64(d.floor)
		}
		d.restore[s.ID] = s.Volume
		ramps = append(ramps, ramp{id: s.ID, from: s.Volume, to: int(math.Round(target))})
	}

	if err := runRamps(ctx, ramps, fade); err != nil {
		return err
	}
	d.active = true
	return nil
}

// Unduck fades foreign streams back to the volumes recorded by Duck.
// Streams that appeared while ducked are left as they are.
func (d *Ducker) Unduck(ctx context.Context, fade time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.active {
		return nil
	}

	streams, err := listSinkInputs(ctx)
	if err != nil {
		return fmt.Errorf("list sink inputs: %w", err)
	}

	var ramps []ramp
	for _, s := range streams {
		if d.isSelf(s) {
			continue
		}
		orig, ok := d.restore[s.ID]
		if !ok {
			continue
		}
		ramps = append(ramps, ramp{id: s.ID, from: s.Volume, to: orig})
	}

	if err := runRamps(ctx, ramps, fade); err != nil {
		return err
	}
	d.restore = make(map[int]int)
	d.active = false
	return nil
}

func (d *Ducker) isSelf(s sinkInput) bool {
	for _, name := range d.selfNames {
		if s.AppName == name {
			return true
		}
	}
	return false
}

// runRamps steps every target volume linearly from..to across the fade
// duration, roughly one pactl call per stream per 10ms step.
func runRamps(ctx context.Context, ramps []ramp, fade time.Duration) error {
	if len(ramps) == 0 {
		return nil
	}

	steps := 1
	if fade > 0 {
		const step = 10 * time.Millisecond
		if n := int(fade / step); n > 1 {
			steps = n
		}
	}

	for i := 1; i <= steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		frac := float64(i) / float64(steps)
		for _, r := range ramps {
			v := float64(r.from) + float64(r.to-r.from)*frac
			if err := setSinkInputVolume(ctx, r.id, int(math.Round(v))); err != nil {
				return fmt.Errorf("set volume id=%d: %w", r.id, err)
			}
		}
		if i < steps {
			time.Sleep(fade / time.Duration(steps))
		}
	}
	return nil
}

func listSinkInputs(ctx context.Context) ([]sinkInput, error) {
	out, err := exec.CommandContext(ctx, "pactl", "list", "sink-inputs").Output()
	if err != nil {
		return nil, fmt.Errorf("pactl list sink-inputs: %w", err)
	}

	blocks := strings.Split(string(out), "Sink Input #")
	var res []sinkInput
	for _, block := range blocks[1:] {
		newline := strings.IndexByte(block, '\n')
		if newline <= 0 {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(block[:newline]))
		if err != nil {
			continue
		}

		s := sinkInput{ID: id}
		for _, line := range strings.Split(block[newline+1:], "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "Volume:") && s.Volume == 0 {
				if m := percentRe.FindStringSubmatch(line); len(m) >= 2 {
					s.Volume, _ = strconv.Atoi(m[1])
				}
			}
			if strings.HasPrefix(line, "application.name =") && s.AppName == "" {
				if parts := strings.SplitN(line, "\"", 3); len(parts) >= 2 {
					s.AppName = parts[1]
				}
			}
		}
		if s.Volume == 0 && s.AppName == "" {
			continue
		}
		res = append(res, s)
	}
	return res, nil
}

func setSinkInputVolume(ctx context.Context, id, percent int) error {
	if percent < 0 {
		percent = 0
	}
	if percent > 150 {
		percent = 150
	}
	return exec.CommandContext(ctx, "pactl",
		"set-sink-input-volume", strconv.Itoa(id), fmt.Sprintf("%d%%", percent)).Run()
}
