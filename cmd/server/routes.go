package main

import (
	"fmt"

	"codeberg.org/chefbot/server/api/rest/chat"
	"codeberg.org/chefbot/server/api/rest/health"
	"github.com/gin-gonic/gin"
)

// builds the engine with middleware and all API routes
func NewRouter(server *Server) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(), CORSMiddleware(server.config.CORSAllowedOrigins))

	// one limiter shared by both chat paths so the alias is not a bypass
	chatLimit, err := RateLimitMiddleware(server.config.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to configure rate limit: %w", err)
	}

	router.GET("/", health.RootHandler)
	router.GET("/health", health.Handler)
	router.GET("/ready", health.ReadyHandler(server.services.Retriever))

	chat.RegisterRoutes(router, server.services.Agent, server.config.ChatTimeout, chatLimit)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		chat.RegisterRoutes(v1, server.services.Agent, server.config.ChatTimeout, chatLimit)
	}

	return router, nil
}
