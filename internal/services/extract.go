package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"receitas-backend/internal/models"
)

// ExtractionInput is everything the extraction call needs. Description is
// expected to be already cleaned (emoji stripped, whitespace normalized).
type ExtractionInput struct {
	Title       string
	Description string
	Transcript  string
	Language    string
	VideoURL    string
}

// ExtractionProvider turns the combined title/description/transcript into a
// validated Recipe. Bound once at pipeline construction.
type ExtractionProvider interface {
	Extract(ctx context.Context, in ExtractionInput) (*models.Recipe, error)
}

// rawRecipe is the provider-facing JSON shape, before defaults and identity
// fields are applied.
type rawRecipe struct {
	Titulo       string               `json:"titulo"`
	Ingredientes []models.Ingrediente `json:"ingredientes"`
	ModoPreparo  []models.Passo       `json:"modo_preparo"`
	TempoPreparo string               `json:"tempo_preparo"`
	Rendimento   string               `json:"rendimento"`
}

// parseRecipeJSON strips Markdown code fences and parses; on failure it
// re-parses the first-{ to last-} substring before giving up.
func parseRecipeJSON(raw string) (*rawRecipe, error) {
	cleaned := stripCodeFences(raw)

	var recipe rawRecipe
	if err := json.Unmarshal([]byte(cleaned), &recipe); err == nil {
		return &recipe, nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &recipe); err == nil {
			return &recipe, nil
		}
	}

	return nil, fmt.Errorf("provider output is not valid recipe JSON")
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// finalizeRecipe applies language-appropriate defaults, renumbers steps
// densely from 1, and attaches the generated identity fields. The returned
// Recipe is never mutated afterwards.
func finalizeRecipe(raw *rawRecipe, in ExtractionInput) *models.Recipe {
	t := templateFor(in.Language)

	recipe := &models.Recipe{
		ID:           GenerateID(),
		Titulo:       raw.Titulo,
		Ingredientes: raw.Ingredientes,
		ModoPreparo:  raw.ModoPreparo,
		TempoPreparo: raw.TempoPreparo,
		Rendimento:   raw.Rendimento,
		VideoURL:     in.VideoURL,
		CreatedAt:    time.Now(),
		Idioma:       in.Language,
	}

	if recipe.Titulo == "" {
		recipe.Titulo = t.defaultTitle
	}
	if recipe.Ingredientes == nil {
		recipe.Ingredientes = []models.Ingrediente{}
	}
	if recipe.ModoPreparo == nil {
		recipe.ModoPreparo = []models.Passo{}
	}
	if recipe.TempoPreparo == "" {
		recipe.TempoPreparo = t.defaultValue
	}
	if recipe.Rendimento == "" {
		recipe.Rendimento = t.defaultValue
	}

	for i := range recipe.ModoPreparo {
		recipe.ModoPreparo[i].Passo = i + 1
	}

	return recipe
}
