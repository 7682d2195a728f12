package tui

import (
	"fmt"
	"time"
)

const (
	roleUser      = "user"
	roleAssistant = "assistant"
)

const (
	chatRequestTimeout = 120 * time.Second
	defaultEndpoint    = "http://localhost:8000"
)

// quick questions offered with tab
var suggestions = []string{
	"¿Cómo se hace el locro?",
	"Receta de empanadas salteñas",
	"¿Qué es el charqui?",
	"Hola, ¿quién sos?",
	"Postres de la zona de Cuyo",
}

// caption rendered under an assistant reply
func formatCaption(msg ChatMessage) string {
	if msg.Intent == "" {
		return ""
	}

	caption := fmt.Sprintf("Intención: %s", msg.Intent)
	if !msg.Verified {
		caption += " | sin verificar"
	}

	return caption
}
