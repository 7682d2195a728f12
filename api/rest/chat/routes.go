package chat

import (
	"time"

	"github.com/gin-gonic/gin"
)

// mounts POST /chat on router; extra middleware (rate limiting) runs first
func RegisterRoutes(router gin.IRoutes, orchestrator Orchestrator, timeout time.Duration, middleware ...gin.HandlerFunc) {
	handlers := make([]gin.HandlerFunc, 0, len(middleware)+1)
	handlers = append(handlers, middleware...)
	handlers = append(handlers, ChatHandler(orchestrator, timeout))

	router.POST("/chat", handlers...)
}
