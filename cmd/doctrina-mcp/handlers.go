package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/doctrina/internal/interfaces"
)

// handleQueryStrandsDocs implements the query_strands_docs tool. The
// knowledge service converts every failure (empty input, credentials,
// permissions, service errors) into displayable text, so the handler
// always returns a text result and never a protocol error.
func handleQueryStrandsDocs(knowledgeService interfaces.KnowledgeService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		// Empty or missing query is handled inside the service: it
		// short-circuits with a prompt message before any remote call
		query := request.GetString("query", "")

		text := knowledgeService.Execute(ctx, query)

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(text),
			},
		}, nil
	}
}
