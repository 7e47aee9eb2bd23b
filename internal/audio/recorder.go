package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/gordonklaus/portaudio"
)

// SampleRate is what the transcriber expects: mono 16 kHz float32.
const SampleRate = 16000

// Recorder captures microphone audio through portaudio. Init must be called
// once before recording and Close once on shutdown.
type Recorder struct{}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Init() error {
	return portaudio.Initialize()
}

func (r *Recorder) Close() {
	portaudio.Terminate()
}

// RecordUtterance records one user turn: it waits for speech to start, then
// stops after the trailing silence or the length cap. Endpointing is plain
// frame RMS against a threshold.
func (r *Recorder) RecordUtterance() ([]float32, error) {
	const (
		frameSize       = 320 // 20ms at 16 kHz
		frameMillis     = 20
		silenceThresh   = 0.015
		silenceTailMs   = 600
		maxLengthFrames = 15 * SampleRate / frameSize
	)

	buf := make([]float32, frameSize)
	out := make([]float32, 0, SampleRate*3)

	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, len(buf), buf)
	if err != nil {
		return nil, fmt.Errorf("open input stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("start input stream: %w", err)
	}
	defer stream.Stop()

	var (
		speaking      bool
		silenceFrames int
	)
	for i := 0; i < maxLengthFrames; i++ {
		if err := stream.Read(); err != nil {
			return nil, err
		}

		if frameRMS(buf) > silenceThresh {
			speaking = true
			silenceFrames = 0
			out = append(out, buf...)
			continue
		}
		if speaking {
			silenceFrames++
			if silenceFrames*frameMillis >= silenceTailMs {
				break
			}
			out = append(out, buf...)
		}
	}

	if len(out) == 0 {
		return nil, errors.New("no speech detected")
	}
	return out, nil
}

// RecordUntil records until the stop channel fires (a second push-to-talk
// trigger) or maxDur elapses.
func (r *Recorder) RecordUntil(stop <-chan struct{}, maxDur time.Duration) ([]float32, error) {
	const frameSize = 1024

	if maxDur <= 0 {
		maxDur = 15 * time.Second
	}

	buf := make([]float32, frameSize)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(SampleRate), len(buf), buf)
	if err != nil {
		return nil, fmt.Errorf("open input stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("start input stream: %w", err)
	}
	defer stream.Stop()

	deadline := time.Now().Add(maxDur)
	out := make([]float32, 0, int(float64(SampleRate)*maxDur.Seconds()))

	for time.Now().Before(deadline) {
		select {
		case <-stop:
			if len(out) == 0 {
				return nil, errors.New("no audio recorded")
			}
			return out, nil
		default:
		}

		if err := stream.Read(); err != nil {
			return nil, err
		}
		out = append(out, buf...)
	}

	if len(out) == 0 {
		return nil, errors.New("no audio recorded")
	}
	return out, nil
}

// DumpWAV writes captured PCM as a 16-bit mono wav file, for debugging
// endpointing and for building replay fixtures.
func DumpWAV(path string, pcm []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, SampleRate, 16, 1, 1)
	ints := make([]int, len(pcm))
	for i, s := range pcm {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		ints[i] = int(s * math.MaxInt16)
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: SampleRate},
		Data:           ints,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	return enc.Close()
}

func frameRMS(f []float32) float64 {
	var s float64
	for _, x := range f {
		s += float64(x * x)
	}
	return math.Sqrt(s / float64(len(f)))
}
