package mcp

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/doctrina/internal/interfaces"
)

// QueryToolName is the single operation exposed by this server
const QueryToolName = "query_strands_docs"

// QueryToolDescription is the human-readable description published with
// the capability descriptor
const QueryToolDescription = "Query AWS Strands Agent documentation using Bedrock Knowledge Base"

// KnowledgeToolService implements the MCP tool surface for documentation
// queries. It owns the static capability declaration and dispatches tool
// calls to the knowledge service.
type KnowledgeToolService struct {
	knowledge interfaces.KnowledgeService
	logger    arbor.ILogger
}

// NewKnowledgeToolService creates a new MCP knowledge tool service
func NewKnowledgeToolService(knowledge interfaces.KnowledgeService, logger arbor.ILogger) *KnowledgeToolService {
	return &KnowledgeToolService{
		knowledge: knowledge,
		logger:    logger,
	}
}

// ListTools returns the static tool declaration. No inputs, no failure
// modes - the descriptor is identical on every call.
func (s *KnowledgeToolService) ListTools(ctx context.Context) (*ToolList, error) {
	s.logger.Debug().Msg("Listing MCP tools")

	return &ToolList{
		Tools: []Tool{
			{
				Name:        QueryToolName,
				Description: QueryToolDescription,
				InputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"query": map[string]interface{}{
							"type":        "string",
							"description": "The question or topic to search for in the documentation",
						},
					},
					"required": []string{"query"},
				},
			},
		},
	}, nil
}

// CallTool executes a tool call. The knowledge service converts every
// failure into displayable text, so the result is always a single text
// content block; only an unknown tool name is a protocol-level error.
func (s *KnowledgeToolService) CallTool(ctx context.Context, name string, args map[string]interface{}) (*ToolResult, error) {
	if name != QueryToolName {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}

	query, _ := args["query"].(string)
	text := s.knowledge.Execute(ctx, query)

	return &ToolResult{
		Content: []ContentBlock{
			{Type: "text", Text: text},
		},
	}, nil
}
