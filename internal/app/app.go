package app

import (
	"context"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/doctrina/internal/common"
	"github.com/ternarybob/doctrina/internal/handlers"
	"github.com/ternarybob/doctrina/internal/interfaces"
	"github.com/ternarybob/doctrina/internal/services/knowledge"
	"github.com/ternarybob/doctrina/internal/services/mcp"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Services
	KnowledgeService interfaces.KnowledgeService
	ToolService      *mcp.KnowledgeToolService

	// HTTP handlers
	APIHandler   *handlers.APIHandler
	QueryHandler *handlers.QueryHandler
	MCPHandler   *handlers.MCPHandler
}

// New wires the application: config and logger in, services and handlers
// out. The Bedrock client resolves credentials from the default AWS chain.
func New(ctx context.Context, config *common.Config, logger arbor.ILogger) (*App, error) {
	knowledgeService, err := knowledge.NewService(ctx, &config.Bedrock, logger)
	if err != nil {
		return nil, err
	}

	toolService := mcp.NewKnowledgeToolService(knowledgeService, logger)

	return &App{
		Config:           config,
		Logger:           logger,
		KnowledgeService: knowledgeService,
		ToolService:      toolService,
		APIHandler:       handlers.NewAPIHandler(config, logger),
		QueryHandler:     handlers.NewQueryHandler(knowledgeService, logger),
		MCPHandler:       handlers.NewMCPHandler(toolService, logger),
	}, nil
}
