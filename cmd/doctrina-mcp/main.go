package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"

	"github.com/ternarybob/doctrina/internal/common"
	"github.com/ternarybob/doctrina/internal/services/knowledge"
)

func main() {
	// Load configuration
	configPath := os.Getenv("DOCTRINA_CONFIG")
	if configPath == "" {
		configPath = "doctrina.toml"
	}
	if _, err := os.Stat(configPath); err != nil {
		// No config file present - run on defaults plus env overrides
		configPath = ""
	}

	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Minimal logger for the MCP server (console only, no file output)
	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString("warn") // Minimal logging to avoid cluttering MCP stdio

	// Initialize knowledge service (Bedrock Knowledge Base client)
	knowledgeService, err := knowledge.NewService(context.Background(), &config.Bedrock, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize knowledge service")
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		"doctrina",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	// Register the documentation query tool
	mcpServer.AddTool(createQueryStrandsDocsTool(), handleQueryStrandsDocs(knowledgeService, logger))

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
