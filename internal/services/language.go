package services

import "strings"

// Curated signal words per language: function words plus cooking-measurement
// terms. Cheap and explainable beats maximally accurate here — the worst
// failure is extracting with the wrong locale's prompt, which degrades
// ingredient-language consistency, not parsing.
var languageSignals = map[string][]string{
	"en": {"the", "and", "with", "a", "until", "then", "cup", "cups", "tablespoon", "teaspoon", "flour", "oven", "mix", "add", "bake", "minutes", "recipe", "butter"},
	"pt": {"de", "e", "com", "uma", "até", "depois", "xícara", "xícaras", "colher", "colheres", "farinha", "forno", "misture", "adicione", "asse", "minutos", "receita", "manteiga"},
	"es": {"el", "la", "y", "con", "una", "hasta", "luego", "taza", "tazas", "cucharada", "cucharadita", "harina", "horno", "mezcla", "añade", "hornea", "receta", "mantequilla"},
}

// DetectLanguage classifies the transcript as pt, en, or es by counting
// whitespace-delimited token matches against the word lists. The language with
// the strictly highest count wins; ties and silence default to pt.
func DetectLanguage(transcript string) string {
	counts := map[string]int{"en": 0, "pt": 0, "es": 0}

	for _, token := range strings.Fields(strings.ToLower(transcript)) {
		token = strings.Trim(token, ".,;:!?()[]\"'")
		if token == "" {
			continue
		}
		for lang, words := range languageSignals {
			for _, w := range words {
				if token == w {
					counts[lang]++
					break
				}
			}
		}
	}

	best := "pt"
	if counts["en"] > counts["pt"] && counts["en"] > counts["es"] {
		best = "en"
	} else if counts["es"] > counts["pt"] && counts["es"] > counts["en"] {
		best = "es"
	}
	return best
}
