package risk

import (
	"fmt"
	"strings"

	"mindline/internal/models"
)

// BuildContextualPrompt renders the Spanish analysis prompt sent to the
// contextual collaborator. It includes the raw text, the keywords that fired
// with their context windows, and the full configured catalog so the model
// can judge severity against the institution's own vocabulary.
func BuildContextualPrompt(text string, detected []models.DetectedKeyword, catalog []models.KeywordRule, appointmentURL string) string {
	var b strings.Builder

	b.WriteString("Eres un psicólogo especializado en detección temprana de problemas de salud mental.\n\n")

	b.WriteString("TEXTO DEL USUARIO:\n")
	fmt.Fprintf(&b, "%q\n\n", text)

	b.WriteString("PALABRAS CLAVE DETECTADAS (con sus pesos):\n")
	if len(detected) == 0 {
		b.WriteString("- ninguna\n")
	}
	for _, kw := range detected {
		ctx := strings.Join(kw.ContextWindow, " ")
		fmt.Fprintf(&b, "- %q (%s, peso: %d) - Contexto: %q\n", kw.Phrase, kw.Category, kw.Weight, ctx)
	}
	b.WriteString("\n")

	b.WriteString("LISTA COMPLETA DE PALABRAS CLAVE CONFIGURADAS:\n")
	for _, rule := range catalog {
		fmt.Fprintf(&b, "- %s (%s, peso: %d)\n", rule.Phrase, rule.Category, rule.Weight)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "PLATAFORMA DE CITAS DISPONIBLE: %s\n\n", appointmentURL)

	b.WriteString(`Por favor analiza:
1. El contexto emocional del mensaje
2. La severidad basada en las palabras clave detectadas y sus pesos
3. El nivel de riesgo (bajo, medio, alto, crítico)
4. Si recomendar cita profesional (para riesgo alto o moderado)
5. Recomendaciones específicas

Responde en formato JSON:
{
    "riskAssessment": {
        "level": "bajo|medio|alto|critico",
        "score": 0-100,
        "confidence": 0.0-1.0,
        "needsAppointment": true|false
    },
    "emotionalContext": "descripción del contexto emocional",
    "keyConcerns": ["lista de preocupaciones principales"],
    "recommendations": ["lista de recomendaciones"],
    "urgency": "baja|media|alta|inmediata"
}
`)

	return b.String()
}
