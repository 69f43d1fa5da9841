package main

import (
	"github.com/mark3labs/mcp-go/mcp"

	doctrinamcp "github.com/ternarybob/doctrina/internal/services/mcp"
)

// createQueryStrandsDocsTool returns the query_strands_docs tool definition
func createQueryStrandsDocsTool() mcp.Tool {
	return mcp.NewTool(doctrinamcp.QueryToolName,
		mcp.WithDescription(doctrinamcp.QueryToolDescription),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The question or topic to search for in the documentation"),
		),
	)
}
