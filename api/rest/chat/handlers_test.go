package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	agentcore "codeberg.org/chefbot/server/internal/agent"
	"codeberg.org/chefbot/server/internal/errors"
	"codeberg.org/chefbot/server/internal/llm"
)

type fakeOrchestrator struct {
	result   *agentcore.Result
	err      error
	question string
	calls    int
	deadline bool
}

func (f *fakeOrchestrator) Orchestrate(ctx context.Context, question string) (*agentcore.Result, error) {
	f.question = question
	f.calls++
	_, f.deadline = ctx.Deadline()

	return f.result, f.err
}

func newRouter(orch Orchestrator) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	RegisterRoutes(r, orch, time.Minute)
	RegisterRoutes(r.Group("/api/v1"), orch, time.Minute)

	return r
}

func postChat(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	return w
}

func TestChatHandlerSuccess(t *testing.T) {
	orch := &fakeOrchestrator{result: &agentcore.Result{
		Response: "El locro se cocina a fuego lento.",
		Intent:   agentcore.IntentSearch,
		Verified: true,
	}}
	r := newRouter(orch)

	for _, path := range []string{"/chat", "/api/v1/chat"} {
		t.Run(path, func(t *testing.T) {
			w := postChat(r, path, `{"pregunta":"¿Cómo se hace el locro?"}`)
			require.Equal(t, http.StatusOK, w.Code)

			var resp ChatResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

			assert.Equal(t, ChatResponse{
				Respuesta:             "El locro se cocina a fuego lento.",
				IntencionDetectada:    "Consulta gastronómica",
				EsRespuestaVerificada: true,
			}, resp)
			assert.Equal(t, "¿Cómo se hace el locro?", orch.question)
			assert.True(t, orch.deadline, "orchestration must run under a timeout")
		})
	}
}

func TestChatHandlerWireFields(t *testing.T) {
	orch := &fakeOrchestrator{result: &agentcore.Result{
		Response: agentcore.RefusalAnswer,
		Intent:   agentcore.IntentOffTopic,
		Verified: true,
	}}

	w := postChat(newRouter(orch), "/chat", `{"pregunta":"¿Quién ganó el mundial?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))

	assert.Equal(t, map[string]any{
		"respuesta":               agentcore.RefusalAnswer,
		"intencion_detectada":     "Fuera de tema",
		"es_respuesta_verificada": true,
	}, raw)
}

func TestChatHandlerMissingPregunta(t *testing.T) {
	orch := &fakeOrchestrator{}

	for _, body := range []string{`{}`, `{"pregunta":null}`, `not json`} {
		w := postChat(newRouter(orch), "/chat", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	assert.Zero(t, orch.calls)
}

func TestChatHandlerEmptyPreguntaReachesAgent(t *testing.T) {
	orch := &fakeOrchestrator{result: &agentcore.Result{
		Response: agentcore.RefusalAnswer,
		Intent:   agentcore.IntentOffTopic,
		Verified: true,
	}}

	w := postChat(newRouter(orch), "/chat", `{"pregunta":""}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1, orch.calls)
	assert.Empty(t, orch.question)
	assert.Contains(t, w.Body.String(), "Fuera de tema")
}

func TestChatHandlerInternalError(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	orch := &fakeOrchestrator{err: fmt.Errorf("failed to classify question: %w: claude: 529 overloaded", llm.ErrInvocation)}

	w := postChat(newRouter(orch), "/chat", `{"pregunta":"Hola"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp errors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, errors.CodeServerError, resp.Error)
	assert.Equal(t, internalErrorMessage, resp.Message)
	assert.NotContains(t, w.Body.String(), "overloaded")
}
