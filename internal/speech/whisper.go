package speech

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/insurebot/backend/pkg/logger"
	"github.com/insurebot/backend/pkg/retry"
	"github.com/insurebot/backend/pkg/utils"
)

// WhisperClient transcribes audio through the OpenAI audio API. One
// verbose transcription call yields both text and duration, so the
// duration for a just-transcribed input is answered from a small cache
// instead of a second API round trip.
type WhisperClient struct {
	client      *openai.Client
	model       string
	timeout     time.Duration
	retryConfig retry.Config

	mu        sync.Mutex
	durations map[string]float64
}

func NewWhisperClient(apiKey, model string, timeoutSec int) *WhisperClient {
	retryConfig := retry.Config{
		MaxAttempts:    3,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       5 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
		Logger:         logger.GetLogger(),
	}

	logger.Info("Whisper transcriber initialized", zap.String("model", model))

	return &WhisperClient{
		client:      openai.NewClient(apiKey),
		model:       model,
		timeout:     time.Duration(timeoutSec) * time.Second,
		retryConfig: retryConfig,
		durations:   make(map[string]float64),
	}
}

func (w *WhisperClient) Transcribe(ctx context.Context, input AudioInput) (string, error) {
	resp, err := w.transcribe(ctx, input)
	if err != nil {
		logger.Error("Transcription failed",
			zap.String("filename", input.Filename),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	w.mu.Lock()
	w.durations[w.cacheKey(input)] = resp.Duration
	w.mu.Unlock()

	return resp.Text, nil
}

func (w *WhisperClient) Duration(ctx context.Context, input AudioInput) (float64, error) {
	key := w.cacheKey(input)

	w.mu.Lock()
	duration, ok := w.durations[key]
	w.mu.Unlock()
	if ok {
		return duration, nil
	}

	resp, err := w.transcribe(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	w.mu.Lock()
	w.durations[key] = resp.Duration
	w.mu.Unlock()

	return resp.Duration, nil
}

func (w *WhisperClient) transcribe(ctx context.Context, input AudioInput) (openai.AudioResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	return retry.DoWithResult(ctx, w.retryConfig, func() (openai.AudioResponse, error) {
		return w.client.CreateTranscription(ctx, openai.AudioRequest{
			Model:    w.model,
			FilePath: input.Filename,
			Reader:   bytes.NewReader(input.Data),
			Format:   openai.AudioResponseFormatVerboseJSON,
		})
	})
}

func (w *WhisperClient) cacheKey(input AudioInput) string {
	return utils.HashString(input.Filename + ":" + fmt.Sprint(len(input.Data)))
}
