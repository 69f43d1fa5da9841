package interfaces

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"

	"github.com/ternarybob/doctrina/internal/models"
)

// RetrieveAndGenerateAPI is the subset of the Bedrock Agent Runtime
// client consumed by the knowledge service. Declared here so tests can
// substitute a mock for the AWS client.
type RetrieveAndGenerateAPI interface {
	RetrieveAndGenerate(ctx context.Context, params *bedrockagentruntime.RetrieveAndGenerateInput, optFns ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.RetrieveAndGenerateOutput, error)
}

// KnowledgeService answers documentation queries against a managed
// knowledge base. This interface abstracts the Bedrock implementation
// so transports (stdio MCP, HTTP) and tests share one contract.
type KnowledgeService interface {
	// Execute runs the full query pipeline: validate, retrieve-and-generate,
	// format. It never returns an error - every failure path is converted
	// to a user-facing message so the transport always has content to send.
	Execute(ctx context.Context, query string) string

	// Query performs the raw retrieve-and-generate call and extracts the
	// answer text and citation list from the response.
	Query(ctx context.Context, query string) (*models.RetrievalResult, error)
}
