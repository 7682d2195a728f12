package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"codeberg.org/chefbot/server/internal/agent"
	"codeberg.org/chefbot/server/internal/config"
	"codeberg.org/chefbot/server/internal/llm"
	"codeberg.org/chefbot/server/internal/retriever"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// index that is never reachable
type downDB struct{}

func (downDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func (downDB) Ping(context.Context) error { return errors.New("dial tcp: connection refused") }

type staticEmbedder struct{}

func (staticEmbedder) GenerateEmbedding(context.Context, string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (staticEmbedder) GenerateEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	return make([][]float32, len(texts)), nil
}

// fast port that classifies by keyword
type keywordGenerator struct{}

func (keywordGenerator) GenerateText(_ context.Context, req llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
	prompt := req.Messages[0].Content

	switch {
	case !strings.Contains(prompt, "Clasifica la siguiente frase"):
		return &llm.TextGenerationResponse{Text: "¡Hola! ¿Qué cocinamos?"}, nil
	case strings.Contains(prompt, "Usuario: Hola"):
		return &llm.TextGenerationResponse{Text: "SALUDO"}, nil
	case strings.Contains(prompt, "locro"):
		return &llm.TextGenerationResponse{Text: "BUSQUEDA"}, nil
	default:
		return &llm.TextGenerationResponse{Text: "OFF_TOPIC"}, nil
	}
}

func (keywordGenerator) Model() string { return "keyword" }

func newTestServer(t *testing.T, rateLimit string) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ports := &llm.Ports{Fast: keywordGenerator{}, Capable: keywordGenerator{}, Embedder: staticEmbedder{}}
	ret := retriever.NewClientWithConfig(downDB{}, staticEmbedder{}, retriever.Config{TopK: 3})

	server := &Server{
		config: &config.Config{
			Environment: "development",
			ChatTimeout: 5 * time.Second,
			RateLimit:   rateLimit,
		},
		services: &Services{
			Agent:     agent.New(ret, ports, ret.TopK()),
			Ports:     ports,
			Retriever: ret,
		},
	}

	router, err := NewRouter(server)
	require.NoError(t, err)

	server.router = router

	return server
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	return w
}

func TestRoutesGreetingAndRefusal(t *testing.T) {
	srv := newTestServer(t, "100-M")

	w := do(srv.router, http.MethodPost, "/chat", `{"pregunta":"Hola"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"respuesta":"¡Hola! ¿Qué cocinamos?","intencion_detectada":"Saludo","es_respuesta_verificada":true}`, w.Body.String())

	w = do(srv.router, http.MethodPost, "/api/v1/chat", `{"pregunta":"¿Quién ganó el mundial?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, agent.RefusalAnswer, resp["respuesta"])
	assert.Equal(t, "Fuera de tema", resp["intencion_detectada"])
}

func TestRoutesEmptyQuestionIsRefused(t *testing.T) {
	srv := newTestServer(t, "100-M")

	w := do(srv.router, http.MethodPost, "/chat", `{"pregunta":""}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, agent.RefusalAnswer, resp["respuesta"])
	assert.Equal(t, "Fuera de tema", resp["intencion_detectada"])

	assert.Equal(t, http.StatusBadRequest, do(srv.router, http.MethodPost, "/chat", `{}`).Code)
}

func TestRoutesSearchWithIndexDownIs500(t *testing.T) {
	srv := newTestServer(t, "100-M")

	w := do(srv.router, http.MethodPost, "/chat", `{"pregunta":"¿Cómo se hace el locro?"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRoutesReadyReflectsIndex(t *testing.T) {
	srv := newTestServer(t, "100-M")

	assert.Equal(t, http.StatusOK, do(srv.router, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, do(srv.router, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(srv.router, http.MethodGet, "/ready", "").Code)
}

func TestRoutesRateLimitSharedAcrossAliases(t *testing.T) {
	srv := newTestServer(t, "2-M")

	assert.Equal(t, http.StatusOK, do(srv.router, http.MethodPost, "/chat", `{"pregunta":"Hola"}`).Code)
	assert.Equal(t, http.StatusOK, do(srv.router, http.MethodPost, "/api/v1/chat", `{"pregunta":"Hola"}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(srv.router, http.MethodPost, "/chat", `{"pregunta":"Hola"}`).Code)

	// health is not limited
	assert.Equal(t, http.StatusOK, do(srv.router, http.MethodGet, "/health", "").Code)
}

func TestRoutesRequestID(t *testing.T) {
	srv := newTestServer(t, "100-M")

	w := do(srv.router, http.MethodGet, "/health", "")
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")

	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestNewRouterRejectsBadRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	_, err := NewRouter(&Server{
		config:   &config.Config{RateLimit: "lots"},
		services: &Services{},
	})
	require.Error(t, err)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://chefbot.example"}))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://chefbot.example")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "https://chefbot.example", w.Header().Get("Access-Control-Allow-Origin"))
}
