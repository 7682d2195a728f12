package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// returned when the server cannot be reached at all
var ErrConnection = errors.New("no se pudo conectar con el servidor")

// manages HTTP requests to the chat REST API
type ChatClient struct {
	endpoint   string
	httpClient *http.Client
}

// creates a chat client. an empty endpoint falls back to CHEFBOT_API_ENDPOINT, then localhost.
func NewChatClient(endpoint string) *ChatClient {
	if endpoint == "" {
		endpoint = os.Getenv("CHEFBOT_API_ENDPOINT")
	}

	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	return &ChatClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: chatRequestTimeout,
		},
	}
}

// sends a question to POST /chat
func (c *ChatClient) Ask(ctx context.Context, question string) (*ChatResponseMsg, error) {
	payloadBytes, err := json.Marshal(chatRequest{Pregunta: question})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/chat", bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp chatErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
			return nil, fmt.Errorf("error %d: %s", resp.StatusCode, errResp.Message)
		}

		return nil, fmt.Errorf("error %d: no pude conectar con la cocina", resp.StatusCode)
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &ChatResponseMsg{
		question: question,
		answer:   result.Respuesta,
		intent:   result.IntencionDetectada,
		verified: result.EsRespuestaVerificada,
	}, nil
}

// returns a tea.Cmd that asks the question in the background
func (c *ChatClient) AskCmd(question string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatRequestTimeout)
		defer cancel()

		resp, err := c.Ask(ctx, question)
		if err != nil {
			return ChatErrorMsg{question: question, err: err}
		}

		return *resp
	}
}

// REST API request/response types

type chatRequest struct {
	Pregunta string `json:"pregunta"`
}

type chatResponse struct {
	Respuesta             string `json:"respuesta"`
	IntencionDetectada    string `json:"intencion_detectada"`
	EsRespuestaVerificada bool   `json:"es_respuesta_verificada"`
}

type chatErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
