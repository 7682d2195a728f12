package main

import (
	"context"
	"fmt"

	"codeberg.org/chefbot/server/internal/agent"
	"codeberg.org/chefbot/server/internal/llm"
	"codeberg.org/chefbot/server/internal/logger"
	"codeberg.org/chefbot/server/internal/retriever"
)

// creates and configures all service clients
func InitializeServices(ctx context.Context, db retriever.Querier) (*Services, error) {
	ports, err := llm.NewPorts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create model ports: %w", err)
	}

	retrieverClient := retriever.NewClient(db, ports.Embedder)
	agentClient := agent.New(retrieverClient, ports, retrieverClient.TopK())

	logger.Info("services initialized",
		"fast_model", ports.Fast.Model(),
		"capable_model", ports.Capable.Model(),
		"top_k", retrieverClient.TopK(),
	)

	return &Services{
		Agent:     agentClient,
		Ports:     ports,
		Retriever: retrieverClient,
	}, nil
}
