// Package audioconv decodes recorded utterance files (wav, mp3, ogg-vorbis,
// ogg-opus) into the mono 16 kHz float32 PCM the transcriber consumes. It
// backs the daemons' replay mode, where canned utterances stand in for a
// microphone.
package audioconv

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	popus "github.com/pekim/opus"
)

const targetRate = 16000

type Options struct {
	// MaxSamples caps the decoded length, guarding against feeding a whole
	// album to the transcriber by mistake. 0 means no cap.
	MaxSamples int
}

// DecodeFile reads one audio file and returns mono 16 kHz PCM. The format is
// picked by extension, falling back to sniffing the container magic.
func DecodeFile(_ context.Context, path string, opt Options) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return decodeWAV(f, opt)
	case ".mp3":
		return decodeMP3(f, opt)
	case ".ogg", ".oga":
		return decodeOgg(f, opt)
	}

	br := bufio.NewReader(f)
	magic, _ := br.Peek(4)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	switch string(magic) {
	case "RIFF":
		return decodeWAV(f, opt)
	case "OggS":
		return decodeOgg(f, opt)
	}
	return nil, fmt.Errorf("unsupported audio format: %s (wav/mp3/ogg supported)", path)
}

func decodeWAV(r io.ReadSeeker, opt Options) ([]float32, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.New("invalid wav")
	}
	pb, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}
	if pb == nil || len(pb.Data) == 0 {
		return nil, errors.New("empty wav")
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	x := intsToFloat32(pb.Data, bitDepth)

	channels, rate := 1, 44100
	if pb.Format != nil {
		if pb.Format.NumChannels > 0 {
			channels = pb.Format.NumChannels
		}
		if pb.Format.SampleRate > 0 {
			rate = pb.Format.SampleRate
		}
	}
	return finish(x, channels, rate, opt), nil
}

func decodeMP3(r io.Reader, opt Options) ([]float32, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, err
	}
	var raw bytes.Buffer
	if _, err := io.Copy(&raw, dec); err != nil {
		return nil, err
	}
	ints := make([]int16, raw.Len()/2)
	if err := binary.Read(bytes.NewReader(raw.Bytes()), binary.LittleEndian, &ints); err != nil {
		return nil, err
	}

	rate := dec.SampleRate()
	if rate <= 0 {
		rate = 44100
	}
	// go-mp3 always emits interleaved stereo
	return finish(int16sToFloat32(ints), 2, rate, opt), nil
}

// decodeOgg tries Vorbis first, then Opus on the rewound stream.
func decodeOgg(f *os.File, opt Options) ([]float32, error) {
	if x, err := decodeOggVorbis(f, opt); err == nil {
		return x, nil
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	x, err := decodeOggOpus(f, opt)
	if err != nil {
		return nil, fmt.Errorf("cannot decode ogg as Vorbis or Opus: %w", err)
	}
	return x, nil
}

func decodeOggVorbis(r io.Reader, opt Options) ([]float32, error) {
	pcm, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if format == nil || format.Channels <= 0 || format.SampleRate <= 0 {
		return nil, errors.New("invalid ogg/vorbis stream")
	}
	return finish(pcm, format.Channels, format.SampleRate, opt), nil
}

func decodeOggOpus(rs io.ReadSeeker, opt Options) ([]float32, error) {
	dec, err := popus.NewDecoder(rs)
	if err != nil {
		return nil, err
	}
	defer dec.Destroy()

	channels := dec.ChannelCount()
	if channels <= 0 {
		channels = 1
	}

	// opus always decodes at 48 kHz
	var pcm []float32
	buf := make([]int16, 48_000*channels/2)
	for {
		n, err := dec.Read(buf)
		if n > 0 {
			pcm = append(pcm, int16sToFloat32(buf[:n*channels])...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	if len(pcm) == 0 {
		return nil, errors.New("empty opus stream")
	}
	return finish(pcm, channels, 48000, opt), nil
}

// finish downmixes to mono, resamples to the target rate and applies the
// length cap.
func finish(x []float32, channels, rate int, opt Options) []float32 {
	if channels > 1 {
		x = downmix(x, channels)
	}
	if rate != targetRate {
		x = resample(x, rate, targetRate)
	}
	if opt.MaxSamples > 0 && len(x) > opt.MaxSamples {
		x = x[:opt.MaxSamples]
	}
	return x
}

func intsToFloat32(data []int, bitDepth int) []float32 {
	out := make([]float32, len(data))
	scale := 1.0 / float64(int64(1)<<(bitDepth-1))
	for i, v := range data {
		f := float64(v) * scale
		if f > 1 {
			f = 1
		} else if f < -1 {
			f = -1
		}
		out[i] = float32(f)
	}
	return out
}

func int16sToFloat32(data []int16) []float32 {
	out := make([]float32, len(data))
	for i, v := range data {
		out[i] = float32(v) / 32768
	}
	return out
}

func downmix(in []float32, channels int) []float32 {
	frames := len(in) / channels
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(in[i*channels+c])
		}
		out[i] = float32(sum / float64(channels))
	}
	return out
}

func resample(in []float32, inRate, outRate int) []float32 {
	if inRate == outRate || len(in) == 0 {
		return in
	}
	ratio := float64(outRate) / float64(inRate)
	n := int(math.Ceil(float64(len(in)) * ratio))
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		src := float64(i) / ratio
		i0 := int(src)
		if i0 >= len(in)-1 {
			out[i] = in[len(in)-1]
			continue
		}
		frac := float32(src - float64(i0))
		out[i] = in[i0]*(1-frac) + in[i0+1]*frac
	}
	return out
}
