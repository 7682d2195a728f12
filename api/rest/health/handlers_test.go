package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func serve(t *testing.T, path string, h gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET(path, h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	return w
}

func TestHandler(t *testing.T) {
	w := serve(t, "/health", Handler)
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "chefbot", resp.Service)
}

func TestRootHandler(t *testing.T) {
	w := serve(t, "/", RootHandler)
	require.Equal(t, http.StatusOK, w.Code)

	var resp RootResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "online", resp.Status)
	assert.NotEmpty(t, resp.Mensaje)
}

func TestReadyHandler(t *testing.T) {
	ok := serve(t, "/ready", ReadyHandler(pingerFunc(func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)

		return nil
	})))
	assert.Equal(t, http.StatusOK, ok.Code)

	down := serve(t, "/ready", ReadyHandler(pingerFunc(func(context.Context) error {
		return errors.New("connection refused")
	})))
	assert.Equal(t, http.StatusServiceUnavailable, down.Code)
}
