package services

import (
	"strings"
	"unicode"
)

// promptTemplate bundles everything locale-dependent about an extraction call.
// Extending to a new language means adding a table entry, not a branch.
type promptTemplate struct {
	system           string
	titleLabel       string
	descriptionLabel string
	transcriptLabel  string
	defaultTitle     string
	defaultValue     string
}

var promptTemplates = map[string]promptTemplate{
	"pt": {
		system: `Você é um assistente especializado em organizar receitas culinárias.

IMPORTANTE: Priorize as informações da DESCRIÇÃO/CAPTION DO VÍDEO para quantidades exatas de ingredientes,
pois muitos criadores de conteúdo não falam as quantidades no áudio, mas colocam na descrição do vídeo.
Use as quantidades EXATAMENTE como escritas na descrição. Nunca junte ingredientes distintos em um único
item e nunca substitua uma quantidade informada por "a gosto".

O áudio transcrito geralmente contém o modo de preparo e detalhes do processo culinário.

Analise TODAS as informações fornecidas (título, descrição e transcrição) e extraia em formato JSON estruturado.
Mantenha o idioma original do conteúdo; não traduza.
Retorne APENAS o JSON, sem texto adicional, sem markdown.

Formato esperado:
{
  "titulo": "Nome da receita",
  "ingredientes": [
    {"item": "2 xícaras de farinha", "categoria": "secos"},
    {"item": "3 ovos", "categoria": "proteínas"}
  ],
  "modo_preparo": [
    {"passo": 1, "instrucao": "Pré-aqueça o forno a 180°C"},
    {"passo": 2, "instrucao": "Misture os ingredientes secos"}
  ],
  "tempo_preparo": "30 minutos",
  "rendimento": "4 porções"
}

Se alguma informação não estiver disponível, use valores padrão razoáveis.`,
		titleLabel:       "TÍTULO DO VÍDEO",
		descriptionLabel: "DESCRIÇÃO/CAPTION DO VÍDEO (geralmente contém as quantidades exatas dos ingredientes)",
		transcriptLabel:  "ÁUDIO TRANSCRITO (geralmente contém o modo de preparo e detalhes do processo)",
		defaultTitle:     "Receita sem título",
		defaultValue:     "Não especificado",
	},
	"en": {
		system: `You are an assistant specialized in organizing cooking recipes.

IMPORTANT: Prioritize the VIDEO DESCRIPTION/CAPTION for exact ingredient quantities,
since creators often omit quantities in the audio but write them in the caption.
Use quantities EXACTLY as written in the description. Never merge distinct ingredients
into a single entry and never replace a stated quantity with "to taste".

The transcribed audio usually contains the preparation steps and process details.

Analyze ALL the provided information (title, description and transcript) and extract it as structured JSON.
Keep the content's original language; do not translate.
Return ONLY the JSON, with no extra text and no markdown.

Expected format:
{
  "titulo": "Recipe name",
  "ingredientes": [
    {"item": "2 cups of flour", "categoria": "dry"},
    {"item": "3 eggs", "categoria": "protein"}
  ],
  "modo_preparo": [
    {"passo": 1, "instrucao": "Preheat the oven to 180°C"},
    {"passo": 2, "instrucao": "Mix the dry ingredients"}
  ],
  "tempo_preparo": "30 minutes",
  "rendimento": "4 servings"
}

If some information is unavailable, use reasonable defaults.`,
		titleLabel:       "VIDEO TITLE",
		descriptionLabel: "VIDEO DESCRIPTION/CAPTION (usually contains the exact ingredient quantities)",
		transcriptLabel:  "TRANSCRIBED AUDIO (usually contains the preparation steps and process details)",
		defaultTitle:     "Untitled recipe",
		defaultValue:     "Not specified",
	},
	"es": {
		system: `Eres un asistente especializado en organizar recetas de cocina.

IMPORTANTE: Prioriza la DESCRIPCIÓN/CAPTION DEL VÍDEO para las cantidades exactas de ingredientes,
ya que muchos creadores no dicen las cantidades en el audio pero las escriben en la descripción.
Usa las cantidades EXACTAMENTE como aparecen en la descripción. Nunca juntes ingredientes distintos
en una sola entrada y nunca sustituyas una cantidad indicada por "al gusto".

El audio transcrito suele contener el modo de preparación y los detalles del proceso.

Analiza TODA la información proporcionada (título, descripción y transcripción) y extráela en formato JSON estructurado.
Mantén el idioma original del contenido; no traduzcas.
Devuelve SOLO el JSON, sin texto adicional, sin markdown.

Formato esperado:
{
  "titulo": "Nombre de la receta",
  "ingredientes": [
    {"item": "2 tazas de harina", "categoria": "secos"},
    {"item": "3 huevos", "categoria": "proteínas"}
  ],
  "modo_preparo": [
    {"passo": 1, "instrucao": "Precalienta el horno a 180°C"},
    {"passo": 2, "instrucao": "Mezcla los ingredientes secos"}
  ],
  "tempo_preparo": "30 minutos",
  "rendimento": "4 porciones"
}

Si falta alguna información, usa valores por defecto razonables.`,
		titleLabel:       "TÍTULO DEL VÍDEO",
		descriptionLabel: "DESCRIPCIÓN/CAPTION DEL VÍDEO (suele contener las cantidades exactas de los ingredientes)",
		transcriptLabel:  "AUDIO TRANSCRITO (suele contener el modo de preparación y los detalles del proceso)",
		defaultTitle:     "Receta sin título",
		defaultValue:     "No especificado",
	},
}

// templateFor returns the locale template for the detected language,
// defaulting to Portuguese.
func templateFor(lang string) promptTemplate {
	if t, ok := promptTemplates[lang]; ok {
		return t
	}
	return promptTemplates["pt"]
}

// buildUserPrompt assembles the combined prompt: title, then the description
// block (the authoritative source for exact quantities), then the transcript.
func buildUserPrompt(t promptTemplate, title, description, transcript string) string {
	var b strings.Builder

	if title != "" {
		b.WriteString(t.titleLabel)
		b.WriteString(": ")
		b.WriteString(title)
		b.WriteString("\n\n")
	}
	if description != "" {
		b.WriteString(t.descriptionLabel)
		b.WriteString(":\n")
		b.WriteString(description)
		b.WriteString("\n\n")
	}
	b.WriteString(t.transcriptLabel)
	b.WriteString(":\n")
	b.WriteString(transcript)

	return b.String()
}

// CleanDescription strips emoji and normalizes whitespace so caption noise
// does not leak into the prompt.
func CleanDescription(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isEmojiRune(r) {
			continue
		}
		b.WriteRune(r)
	}

	fields := strings.Fields(b.String())
	return strings.Join(fields, " ")
}

func isEmojiRune(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, emoticons, symbols
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators
		return true
	case r == 0xFE0F || r == 0x200D: // variation selector, ZWJ
		return true
	case unicode.Is(unicode.So, r):
		return true
	}
	return false
}
