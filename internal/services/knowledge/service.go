package knowledge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/doctrina/internal/common"
	"github.com/ternarybob/doctrina/internal/interfaces"
	"github.com/ternarybob/doctrina/internal/models"
)

// Service answers documentation queries through the Bedrock Knowledge
// Base retrieve-and-generate API. It holds no mutable state; the
// underlying client is safe for concurrent use, so a single instance
// serves all transports.
type Service struct {
	client          interfaces.RetrieveAndGenerateAPI
	knowledgeBaseID string
	modelARN        string
	timeout         time.Duration
	logger          arbor.ILogger
}

// NewService creates a knowledge service backed by the Bedrock Agent
// Runtime client, resolving AWS credentials from the default chain.
func NewService(ctx context.Context, bedrockConfig *common.BedrockConfig, logger arbor.ILogger) (*Service, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(bedrockConfig.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return NewServiceWithClient(bedrockagentruntime.NewFromConfig(awsCfg), bedrockConfig, logger)
}

// NewServiceWithClient creates a knowledge service with an injected
// retrieve-and-generate client.
func NewServiceWithClient(client interfaces.RetrieveAndGenerateAPI, bedrockConfig *common.BedrockConfig, logger arbor.ILogger) (*Service, error) {
	if bedrockConfig.KnowledgeBaseID == "" {
		return nil, fmt.Errorf("knowledge base ID is required (set bedrock.knowledge_base_id in config or DOCTRINA_BEDROCK_KNOWLEDGE_BASE_ID)")
	}
	if bedrockConfig.ModelARN == "" {
		return nil, fmt.Errorf("model ARN is required (set bedrock.model_arn in config or DOCTRINA_BEDROCK_MODEL_ARN)")
	}

	timeout := 2 * time.Minute
	if bedrockConfig.Timeout != "" {
		parsed, err := time.ParseDuration(bedrockConfig.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout duration '%s': %w", bedrockConfig.Timeout, err)
		}
		timeout = parsed
	}

	service := &Service{
		client:          client,
		knowledgeBaseID: bedrockConfig.KnowledgeBaseID,
		modelARN:        bedrockConfig.ModelARN,
		timeout:         timeout,
		logger:          logger,
	}

	logger.Debug().
		Str("knowledge_base_id", bedrockConfig.KnowledgeBaseID).
		Str("region", bedrockConfig.Region).
		Dur("timeout", timeout).
		Msg("Knowledge service initialized")

	return service, nil
}

// Execute runs the full query pipeline and always returns a displayable
// string. Empty or whitespace-only queries short-circuit before any
// remote call is made; remote failures are classified and rendered as
// fixed messages. Nothing above this method ever observes an error.
func (s *Service) Execute(ctx context.Context, query string) string {
	if strings.TrimSpace(query) == "" {
		return EmptyQueryMessage
	}

	requestID := common.NewRequestID()
	start := time.Now()

	s.logger.Debug().
		Str("request_id", requestID).
		Int("query_length", len(query)).
		Msg("Querying knowledge base")

	result, err := s.Query(ctx, query)
	if err != nil {
		kind := Classify(err)
		s.logger.Warn().
			Err(err).
			Str("request_id", requestID).
			Str("error_code", kind.Code).
			Dur("duration", time.Since(start)).
			Msg("Knowledge base query failed")
		return kind.DisplayText()
	}

	s.logger.Info().
		Str("request_id", requestID).
		Int("citations", len(result.Citations)).
		Dur("duration", time.Since(start)).
		Msg("Knowledge base query complete")

	return FormatResponse(query, result)
}

// Query invokes retrieve-and-generate and extracts the generated answer
// and citation list. The remote call suspends for the duration of the
// network round trip, bounded by the configured timeout.
func (s *Service) Query(ctx context.Context, query string) (*models.RetrievalResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	output, err := s.client.RetrieveAndGenerate(ctx, &bedrockagentruntime.RetrieveAndGenerateInput{
		Input: &types.RetrieveAndGenerateInput{
			Text: aws.String(query),
		},
		RetrieveAndGenerateConfiguration: &types.RetrieveAndGenerateConfiguration{
			Type: types.RetrieveAndGenerateTypeKnowledgeBase,
			KnowledgeBaseConfiguration: &types.KnowledgeBaseRetrieveAndGenerateConfiguration{
				KnowledgeBaseId: aws.String(s.knowledgeBaseID),
				ModelArn:        aws.String(s.modelARN),
			},
		},
	})
	if err != nil {
		return nil, err
	}

	result := &models.RetrievalResult{}
	if output.Output != nil {
		result.Answer = aws.ToString(output.Output.Text)
	}

	for _, citation := range output.Citations {
		for _, ref := range citation.RetrievedReferences {
			var uri string
			if ref.Location != nil && ref.Location.S3Location != nil {
				uri = aws.ToString(ref.Location.S3Location.Uri)
			}
			result.Citations = append(result.Citations, models.Citation{SourceURI: uri})
		}
	}

	return result, nil
}
