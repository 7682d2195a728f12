package main

import (
	"codeberg.org/chefbot/server/internal/agent"
	"codeberg.org/chefbot/server/internal/config"
	"codeberg.org/chefbot/server/internal/llm"
	"codeberg.org/chefbot/server/internal/retriever"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db       *pgxpool.Pool
	config   *config.Config
	services *Services
	router   *gin.Engine
}

// holds all external service clients (model ports, retriever, agent)
type Services struct {
	Agent     *agent.Agent
	Ports     *llm.Ports
	Retriever *retriever.Client
}
