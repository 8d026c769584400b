package services

import (
	"context"
	"log"
	"sync"

	"github.com/google/generative-ai-go/genai"

	"receitas-backend/internal/models"
)

var (
	recipeSchemaOnce sync.Once
	recipeSchema     *genai.Schema
)

// geminiRecipeSchema is the constrained-decoding schema for the recipe shape.
// It is static configuration: built once on first use, immutable afterwards.
func geminiRecipeSchema() *genai.Schema {
	recipeSchemaOnce.Do(func() {
		recipeSchema = &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"titulo": {Type: genai.TypeString},
				"ingredientes": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"item":      {Type: genai.TypeString},
							"categoria": {Type: genai.TypeString},
						},
						Required: []string{"item"},
					},
				},
				"modo_preparo": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"passo":     {Type: genai.TypeInteger},
							"instrucao": {Type: genai.TypeString},
						},
						Required: []string{"passo", "instrucao"},
					},
				},
				"tempo_preparo": {Type: genai.TypeString},
				"rendimento":    {Type: genai.TypeString},
			},
			Required: []string{"titulo", "ingredientes", "modo_preparo"},
		}
	})
	return recipeSchema
}

// GeminiExtractor uses schema-constrained JSON output, so the provider cannot
// emit anything outside the recipe shape. The repair parse still runs as a
// cheap second line.
type GeminiExtractor struct {
	client    *genai.Client
	modelName string
}

func NewGeminiExtractor(client *genai.Client, modelName string) *GeminiExtractor {
	return &GeminiExtractor{client: client, modelName: modelName}
}

func (e *GeminiExtractor) Extract(ctx context.Context, in ExtractionInput) (*models.Recipe, error) {
	t := templateFor(in.Language)

	model := e.client.GenerativeModel(e.modelName)
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = geminiRecipeSchema()
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(t.system)}}

	userPrompt := buildUserPrompt(t, in.Title, in.Description, in.Transcript)

	resp, err := model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return nil, &ExtractionError{Message: "Erro ao processar receita: " + err.Error(), Cause: err}
	}

	raw := extractText(resp)
	if raw == "" {
		return nil, &ExtractionError{Message: "Resposta da IA inválida"}
	}

	parsed, err := parseRecipeJSON(raw)
	if err != nil {
		log.Printf("unparseable extraction output: %s", truncateForLog(raw, 500))
		return nil, &ExtractionError{Message: "Resposta da IA inválida", Cause: err}
	}

	return finalizeRecipe(parsed, in), nil
}
