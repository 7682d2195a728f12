package chat

// pregunta must be present; an empty string is still a question and is classified as off-topic
type ChatRequest struct {
	Pregunta *string `json:"pregunta" binding:"required"`
}

type ChatResponse struct {
	Respuesta             string `json:"respuesta"`
	IntencionDetectada    string `json:"intencion_detectada"`
	EsRespuestaVerificada bool   `json:"es_respuesta_verificada"`
}
