package services

import (
	"context"
	"log"

	openai "github.com/sashabaranov/go-openai"

	"receitas-backend/internal/models"
)

// OpenAIExtractor requests JSON through instruction text; the output passes
// through the fence-strip and repair parse since nothing constrains it.
type OpenAIExtractor struct {
	client *openai.Client
	model  string
}

func NewOpenAIExtractor(client *openai.Client, model string) *OpenAIExtractor {
	return &OpenAIExtractor{client: client, model: model}
}

func (e *OpenAIExtractor) Extract(ctx context.Context, in ExtractionInput) (*models.Recipe, error) {
	t := templateFor(in.Language)
	userPrompt := buildUserPrompt(t, in.Title, in.Description, in.Transcript)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: 0.3,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: t.system},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return nil, &ExtractionError{Message: "Erro ao processar receita: " + err.Error(), Cause: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, &ExtractionError{Message: "Resposta da IA inválida"}
	}

	raw := resp.Choices[0].Message.Content
	parsed, err := parseRecipeJSON(raw)
	if err != nil {
		// Raw output goes to the log for diagnosis, never to the caller.
		log.Printf("unparseable extraction output: %s", truncateForLog(raw, 500))
		return nil, &ExtractionError{Message: "Resposta da IA inválida", Cause: err}
	}

	return finalizeRecipe(parsed, in), nil
}
