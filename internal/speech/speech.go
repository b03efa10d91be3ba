// Package speech defines the boundary to the external audio
// collaborators: transcription, duration probing, speech input and
// speech output. The core never touches audio bytes beyond handing them
// to these interfaces.
package speech

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotSupported means no speech input backend is available.
	ErrNotSupported = errors.New("speech recognition not supported")
	// ErrAlreadyListening means a capture is already in flight.
	ErrAlreadyListening = errors.New("already listening")
	// ErrProcessingFailed is the generic training-pipeline failure for
	// transcription or metadata retrieval.
	ErrProcessingFailed = errors.New("failed to process audio file")
	// ErrInterrupted signals a cancelled speech output. Callers treat it
	// as normal completion, not as an error.
	ErrInterrupted = errors.New("speech output interrupted")
)

// RecognitionError is a transient capture failure with a backend code.
type RecognitionError struct {
	Code string
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("speech recognition error: %s", e.Code)
}

// AudioInput is one uploaded audio artifact.
type AudioInput struct {
	Filename string
	Data     []byte
}

// Transcriber converts an audio input into a transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, input AudioInput) (string, error)
}

// DurationProber reports the length of an audio input in seconds.
type DurationProber interface {
	Duration(ctx context.Context, input AudioInput) (float64, error)
}

// Recognizer captures one utterance from the live input device.
type Recognizer interface {
	Listen(ctx context.Context) (string, error)
}

// SpeakOptions tune speech output. Zero values mean backend defaults.
type SpeakOptions struct {
	Rate            float64
	Pitch           float64
	Volume          float64
	VoicePreference string
}

// Synthesizer speaks response text to the user.
type Synthesizer interface {
	Speak(ctx context.Context, text string, opts SpeakOptions) error
}

// Speak runs the synthesizer and downgrades an interruption to success.
func Speak(ctx context.Context, s Synthesizer, text string, opts SpeakOptions) error {
	err := s.Speak(ctx, text, opts)
	if errors.Is(err, ErrInterrupted) {
		return nil
	}
	return err
}

// FailureMessage maps a speech-input failure to user-facing text. Only
// ErrNotSupported gets distinct wording; every other failure is treated
// as transient.
func FailureMessage(err error) string {
	if errors.Is(err, ErrNotSupported) {
		return "Speech recognition is not supported here. Please use a recent version of Chrome or Edge, or type your question instead."
	}
	return "I'm having trouble hearing you. Could you please try again?"
}
