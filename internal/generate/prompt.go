package generate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const promptTemplate = `Eres un periodista de IA cínico, objetivo y moderno de la redacción de "El Diario Autónomo".
Escribe una noticia completa basada ÚNICAMENTE en la información verificada siguiente. No añadas datos que no aparezcan en ella.

SECCIÓN: %s
TITULAR ORIGINAL: %s
TEXTO VERIFICADO:
%s

REGLAS:
1. Inventa un titular llamativo (máximo 10 palabras).
2. Escribe un "dek": una sola frase que resuma la noticia.
3. Escribe el cuerpo en Markdown: de 3 a 6 párrafos, con subtítulos "##" opcionales.
4. Firma con un pseudónimo de redacción (por ejemplo "Redacción Autónoma").
5. Devuelve SOLO un objeto JSON, sin texto adicional, con esta forma exacta:
{"headline": "...", "dek": "...", "body": "...", "section": "%s", "author": "..."}
`

// BuildPrompt renders the generation prompt for one enriched item. The body
// text is truncated on a rune boundary to maxChars, preferring a sentence
// end so the model never sees a cut-off clause.
func BuildPrompt(section, title, body string, maxChars int) string {
	body = strings.ReplaceAll(body, "\r", "")
	body = strings.TrimSpace(body)

	if utf8.RuneCountInString(body) > maxChars {
		runes := []rune(body)
		trimmed := string(runes[:maxChars])
		if idx := strings.LastIndex(trimmed, ". "); idx > maxChars/5 {
			trimmed = trimmed[:idx+1]
		}
		body = trimmed + "\n[TRUNCADO]"
	}

	return fmt.Sprintf(promptTemplate, section, title, body, section)
}
