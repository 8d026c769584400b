package services

import (
	"strings"
	"testing"

	"receitas-backend/internal/models"
)

func TestParseRecipeJSON(t *testing.T) {
	valid := `{"titulo":"Bolo de cenoura","ingredientes":[{"item":"3 cenouras","categoria":"legumes"}],"modo_preparo":[{"passo":1,"instrucao":"Bata tudo"}],"tempo_preparo":"40 minutos","rendimento":"8 porções"}`

	tests := []struct {
		name      string
		raw       string
		wantTitle string
		wantErr   bool
	}{
		{"bare json", valid, "Bolo de cenoura", false},
		{"json fence", "```json\n" + valid + "\n```", "Bolo de cenoura", false},
		{"plain fence", "```\n" + valid + "\n```", "Bolo de cenoura", false},
		{"prose around json", "Aqui está a receita: " + valid + " Bom apetite!", "Bolo de cenoura", false},
		{"not json at all", "desculpe, não consegui extrair a receita", "", true},
		{"truncated json", `{"titulo":"Bolo de cen`, "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRecipeJSON(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRecipeJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.Titulo != tt.wantTitle {
				t.Errorf("Titulo = %q, want %q", got.Titulo, tt.wantTitle)
			}
		})
	}
}

func TestFinalizeRecipe_Defaults(t *testing.T) {
	tests := []struct {
		name      string
		lang      string
		wantTitle string
		wantValue string
	}{
		{"portuguese defaults", "pt", "Receita sem título", "Não especificado"},
		{"english defaults", "en", "Untitled recipe", "Not specified"},
		{"spanish defaults", "es", "Receta sin título", "No especificado"},
		{"unknown falls back to portuguese", "fr", "Receita sem título", "Não especificado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipe := finalizeRecipe(&rawRecipe{}, ExtractionInput{
				Language: tt.lang,
				VideoURL: "https://youtu.be/abc123def45",
			})

			if recipe.Titulo != tt.wantTitle {
				t.Errorf("Titulo = %q, want %q", recipe.Titulo, tt.wantTitle)
			}
			if recipe.TempoPreparo != tt.wantValue {
				t.Errorf("TempoPreparo = %q, want %q", recipe.TempoPreparo, tt.wantValue)
			}
			if recipe.Rendimento != tt.wantValue {
				t.Errorf("Rendimento = %q, want %q", recipe.Rendimento, tt.wantValue)
			}
			if recipe.Ingredientes == nil {
				t.Error("Ingredientes should be an empty slice, not nil")
			}
			if recipe.ModoPreparo == nil {
				t.Error("ModoPreparo should be an empty slice, not nil")
			}
		})
	}
}

func TestFinalizeRecipe_Identity(t *testing.T) {
	in := ExtractionInput{
		Language: "pt",
		VideoURL: "https://www.tiktok.com/@chef/video/730123",
	}
	recipe := finalizeRecipe(&rawRecipe{Titulo: "Pão de queijo"}, in)

	if recipe.ID == "" {
		t.Error("ID should be generated")
	}
	if recipe.VideoURL != in.VideoURL {
		t.Errorf("VideoURL = %q, want %q", recipe.VideoURL, in.VideoURL)
	}
	if recipe.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if recipe.Idioma != "pt" {
		t.Errorf("Idioma = %q, want %q", recipe.Idioma, "pt")
	}
}

func TestFinalizeRecipe_RenumbersSteps(t *testing.T) {
	raw := &rawRecipe{
		Titulo: "Omelete",
		ModoPreparo: []models.Passo{
			{Passo: 3, Instrucao: "Bata os ovos"},
			{Passo: 3, Instrucao: "Aqueça a frigideira"},
			{Passo: 9, Instrucao: "Despeje e dobre"},
		},
	}

	recipe := finalizeRecipe(raw, ExtractionInput{Language: "pt"})

	for i, p := range recipe.ModoPreparo {
		if p.Passo != i+1 {
			t.Errorf("step %d: Passo = %d, want %d", i, p.Passo, i+1)
		}
	}
}

func TestBuildUserPrompt(t *testing.T) {
	tpl := templateFor("pt")

	t.Run("all sections", func(t *testing.T) {
		got := buildUserPrompt(tpl, "Bolo", "3 cenouras, 2 ovos", "misture tudo")
		for _, want := range []string{tpl.titleLabel, tpl.descriptionLabel, tpl.transcriptLabel, "Bolo", "3 cenouras, 2 ovos", "misture tudo"} {
			if !strings.Contains(got, want) {
				t.Errorf("prompt missing %q", want)
			}
		}
	})

	t.Run("empty title and description omitted", func(t *testing.T) {
		got := buildUserPrompt(tpl, "", "", "misture tudo")
		if strings.Contains(got, tpl.titleLabel) {
			t.Error("prompt should omit title section")
		}
		if strings.Contains(got, tpl.descriptionLabel) {
			t.Error("prompt should omit description section")
		}
		if !strings.Contains(got, tpl.transcriptLabel) {
			t.Error("prompt must always carry the transcript section")
		}
	})
}
