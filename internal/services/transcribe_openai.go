package services

import (
	"context"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAITranscriber submits the audio file to Whisper. No target language is
// forced, so the provider auto-detects it.
type OpenAITranscriber struct {
	client      *openai.Client
	model       string
	backoffBase time.Duration
}

func NewOpenAITranscriber(client *openai.Client, model string) *OpenAITranscriber {
	return &OpenAITranscriber{client: client, model: model, backoffBase: time.Second}
}

func (t *OpenAITranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	policy := retryPolicy{attempts: 3, base: t.backoffBase, retryable: isTransientNetworkError}

	var text string
	err := policy.do(ctx, func() error {
		resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
			Model:    t.model,
			FilePath: audioPath,
		})
		if err != nil {
			return err
		}
		text = resp.Text
		return nil
	})
	if err != nil {
		return "", &TranscriptionError{Message: "Erro ao transcrever áudio: " + err.Error(), Cause: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &TranscriptionError{Message: "Erro ao transcrever áudio: transcrição vazia"}
	}

	return text, nil
}
