package chat

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	agentcore "codeberg.org/chefbot/server/internal/agent"
	"codeberg.org/chefbot/server/internal/errors"
	"codeberg.org/chefbot/server/internal/logger"
)

// message returned with every 500 from the chat endpoint
const internalErrorMessage = "Error interno al procesar la pregunta"

// the part of the agent the handler needs
type Orchestrator interface {
	Orchestrate(ctx context.Context, question string) (*agentcore.Result, error)
}

// ChatHandler godoc
// @Summary Ask ChefBot a question
// @Description Classifies the question and answers from the cookbook when it is a recipe query
// @Tags chat
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Question"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /chat [post]
func ChatHandler(orchestrator Orchestrator, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		ctx := c.Request.Context()

		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)

			defer cancel()
		}

		start := time.Now()

		result, err := orchestrator.Orchestrate(ctx, *req.Pregunta)
		if err != nil {
			errors.InternalError(c, internalErrorMessage, err)
			return
		}

		logger.FromContext(ctx).Infow("question answered",
			"intent", result.Intent.String(),
			"verified", result.Verified,
			"duration_ms", time.Since(start).Milliseconds(),
		)

		c.JSON(http.StatusOK, ChatResponse{
			Respuesta:             result.Response,
			IntencionDetectada:    result.Intent.Label(),
			EsRespuestaVerificada: result.Verified,
		})
	}
}
