package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/chefbot/server/internal/errors"
)

const (
	serviceName    = "chefbot"
	serviceVersion = "1.0.0"
	readyTimeout   = 3 * time.Second
)

// returns the server health status
func Handler(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Status:  "healthy",
		Service: serviceName,
		Version: serviceVersion,
	})
}

// service root, kept for clients that probe GET /
func RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Status:  "online",
		Mensaje: "ChefBot API funcionando. Enviá tu pregunta con POST /chat.",
	})
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}

// reports 200 only when the index answers a ping
func ReadyHandler(index Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		if err := index.Ping(ctx); err != nil {
			errors.Unavailable(c, "recipe index unreachable", err)
			return
		}

		c.JSON(http.StatusOK, Response{
			Status:  "ready",
			Service: serviceName,
			Version: serviceVersion,
		})
	}
}
