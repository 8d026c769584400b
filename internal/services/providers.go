package services

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"receitas-backend/internal/config"
)

// BindProviders probes which credentials are configured and binds one
// concrete transcription provider and one extraction provider for the
// lifetime of the process. OpenAI is primary when both keys are present.
func BindProviders(ctx context.Context, cfg *config.Config) (TranscriptionProvider, ExtractionProvider, error) {
	if cfg.OpenAIAPIKey != "" {
		client := openai.NewClient(cfg.OpenAIAPIKey)
		return NewOpenAITranscriber(client, cfg.WhisperModel),
			NewOpenAIExtractor(client, cfg.ChatModel),
			nil
	}

	if cfg.GeminiAPIKey != "" {
		client, err := NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, nil, err
		}
		return NewGeminiTranscriber(client, cfg.GeminiTranscribeModel),
			NewGeminiExtractor(client, cfg.GeminiExtractModel),
			nil
	}

	return nil, nil, fmt.Errorf("no AI provider credentials configured")
}
