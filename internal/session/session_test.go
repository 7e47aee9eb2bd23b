package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeListener struct {
	pcm []float32
	err error
}

func (f *fakeListener) RecordUtterance() ([]float32, error) { return f.pcm, f.err }

type fakeRecognizer struct {
	text string
	err  error
}

func (f *fakeRecognizer) Transcribe(context.Context, []float32) (string, error) {
	return f.text, f.err
}

type fakeSpeaker struct {
	spoken []string
}

func (f *fakeSpeaker) Speak(text string) error {
	f.spoken = append(f.spoken, text)
	return nil
}

func echoResponder() Responder {
	return ResponderFunc(func(_ context.Context, u string) (string, error) {
		return "you said " + u, nil
	})
}

func TestHandleUtterance(t *testing.T) {
	spk := &fakeSpeaker{}
	s := New(Config{Agent: "commerce", Speak: spk, Respond: echoResponder()})

	reply, err := s.HandleUtterance(context.Background(), "show me mugs")
	require.NoError(t, err)
	assert.Equal(t, "you said show me mugs", reply)
	assert.Equal(t, []string{"you said show me mugs"}, spk.spoken)

	m := s.Metrics()
	assert.Equal(t, 1, m.Utterances)
	assert.Equal(t, 1, m.Replies)
	assert.Equal(t, 0, m.Failures)
}

func TestHandleUtteranceResponderError(t *testing.T) {
	spk := &fakeSpeaker{}
	s := New(Config{
		Speak: spk,
		Respond: ResponderFunc(func(context.Context, string) (string, error) {
			return "", errors.New("boom")
		}),
	})

	_, err := s.HandleUtterance(context.Background(), "hi")
	require.Error(t, err)
	assert.Empty(t, spk.spoken)
	assert.Equal(t, 1, s.Metrics().Failures)
}

func TestHandleTurnFullPath(t *testing.T) {
	spk := &fakeSpeaker{}
	var listened, captured bool
	s := New(Config{
		Listen:     &fakeListener{pcm: make([]float32, 16000)},
		Recognize:  &fakeRecognizer{text: "any hoodies"},
		Speak:      spk,
		Respond:    echoResponder(),
		OnListen:   func() { listened = true },
		OnCaptured: func() { captured = true },
	})

	s.HandleTurn(context.Background())

	assert.True(t, listened)
	assert.True(t, captured)
	require.Len(t, spk.spoken, 1)
	assert.Equal(t, "you said any hoodies", spk.spoken[0])
}

func TestHandleTurnRecordFailureIsNotFatal(t *testing.T) {
	spk := &fakeSpeaker{}
	s := New(Config{
		Listen:    &fakeListener{err: errors.New("no mic")},
		Recognize: &fakeRecognizer{},
		Speak:     spk,
		Respond:   echoResponder(),
	})

	s.HandleTurn(context.Background())
	assert.Empty(t, spk.spoken)
	assert.Equal(t, 1, s.Metrics().Failures)
}

func TestGreetSpeaksOnce(t *testing.T) {
	spk := &fakeSpeaker{}
	s := New(Config{Speak: spk, Respond: echoResponder(), Greeting: "Welcome!"})

	s.Greet()
	s.Greet()
	assert.Equal(t, []string{"Welcome!"}, spk.spoken)
}

func TestSessionIDGenerated(t *testing.T) {
	s := New(Config{Respond: echoResponder(), Speak: &fakeSpeaker{}})
	assert.False(t, strings.TrimSpace(s.ID()) == "")
}
