package services

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
)

const geminiTranscribeInstruction = "Transcribe the provided audio verbatim. Return only the transcript text, without markdown, headers, or explanations."

// GeminiTranscriber sends the audio inline as base64 with a fixed
// transcription instruction.
type GeminiTranscriber struct {
	client      *genai.Client
	modelName   string
	backoffBase time.Duration
}

func NewGeminiTranscriber(client *genai.Client, modelName string) *GeminiTranscriber {
	return &GeminiTranscriber{client: client, modelName: modelName, backoffBase: 2 * time.Second}
}

func (t *GeminiTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return "", &TranscriptionError{Message: "Erro ao transcrever áudio: " + err.Error(), Cause: err}
	}
	if len(audio) == 0 {
		return "", &TranscriptionError{Message: "Erro ao transcrever áudio: arquivo de áudio vazio"}
	}

	model := t.client.GenerativeModel(t.modelName)

	policy := retryPolicy{attempts: 2, base: t.backoffBase, retryable: isRetryableProviderError}

	var text string
	err = policy.do(ctx, func() error {
		resp, err := model.GenerateContent(ctx,
			genai.Text(geminiTranscribeInstruction),
			genai.Blob{MIMEType: mimeTypeForAudio(audioPath), Data: audio},
		)
		if err != nil {
			return err
		}
		text = extractText(resp)
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
