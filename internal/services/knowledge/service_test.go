package knowledge

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/doctrina/internal/common"
)

// mockRetrieveClient records calls and returns a canned response
type mockRetrieveClient struct {
	calls     int
	lastInput *bedrockagentruntime.RetrieveAndGenerateInput
	output    *bedrockagentruntime.RetrieveAndGenerateOutput
	err       error
}

func (m *mockRetrieveClient) RetrieveAndGenerate(ctx context.Context, params *bedrockagentruntime.RetrieveAndGenerateInput, optFns ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.RetrieveAndGenerateOutput, error) {
	m.calls++
	m.lastInput = params
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

func newTestService(t *testing.T, client *mockRetrieveClient) *Service {
	t.Helper()

	service, err := NewServiceWithClient(client, &common.BedrockConfig{
		KnowledgeBaseID: "KB12345678",
		Region:          "us-west-2",
		ModelARN:        "arn:aws:bedrock:us-west-2::foundation-model/anthropic.claude-3-sonnet-20240229-v1:0",
		Timeout:         "30s",
	}, arbor.NewLogger())
	require.NoError(t, err)

	return service
}

func successOutput(answer string, uris ...*string) *bedrockagentruntime.RetrieveAndGenerateOutput {
	output := &bedrockagentruntime.RetrieveAndGenerateOutput{
		Output: &types.RetrieveAndGenerateOutput{Text: aws.String(answer)},
	}
	for _, uri := range uris {
		ref := types.RetrievedReference{}
		if uri != nil {
			ref.Location = &types.RetrievalResultLocation{
				S3Location: &types.RetrievalResultS3Location{Uri: uri},
			}
		}
		output.Citations = append(output.Citations, types.Citation{
			RetrievedReferences: []types.RetrievedReference{ref},
		})
	}
	return output
}

func TestExecute_EmptyQuerySkipsRemoteCall(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"Empty string", ""},
		{"Whitespace only", "   \t\n  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockRetrieveClient{}
			service := newTestService(t, client)

			text := service.Execute(context.Background(), tt.query)

			assert.Equal(t, EmptyQueryMessage, text)
			assert.Equal(t, 0, client.calls, "empty input must not reach the remote service")
		})
	}
}

func TestExecute_SuccessWithoutCitations(t *testing.T) {
	client := &mockRetrieveClient{output: successOutput("X")}
	service := newTestService(t, client)

	text := service.Execute(context.Background(), "Q")

	assert.Equal(t, "**Query**: Q\n\n**Answer**: X", text)
	assert.Equal(t, 1, client.calls)
}

func TestExecute_SuccessWithCitations(t *testing.T) {
	client := &mockRetrieveClient{output: successOutput("X", aws.String("s3://bucket/doc.md"))}
	service := newTestService(t, client)

	text := service.Execute(context.Background(), "Q")

	assert.Contains(t, text, "**Sources**:\n1. s3://bucket/doc.md")
}

func TestExecute_CitationWithoutURI(t *testing.T) {
	client := &mockRetrieveClient{output: successOutput("X", nil)}
	service := newTestService(t, client)

	text := service.Execute(context.Background(), "Q")

	assert.Contains(t, text, "1. Unknown source")
}

func TestExecute_ErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Missing credentials",
			err:      &smithy.GenericAPIError{Code: "UnrecognizedClientException", Message: "security token invalid"},
			expected: "❌ AWS credentials not found. Please configure AWS CLI with 'aws configure' or set environment variables.",
		},
		{
			name:     "Access denied",
			err:      &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "not authorized"},
			expected: "❌ Access denied. Please ensure your AWS credentials have bedrock:RetrieveAndGenerate permissions.",
		},
		{
			name:     "Service error embeds the code",
			err:      &smithy.GenericAPIError{Code: "ValidationException", Message: "knowledge base not found"},
			expected: "❌ AWS error (ValidationException): knowledge base not found",
		},
		{
			name:     "Unclassified failure embeds the description",
			err:      errors.New("connection reset by peer"),
			expected: "❌ Unexpected error: connection reset by peer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockRetrieveClient{err: tt.err}
			service := newTestService(t, client)

			text := service.Execute(context.Background(), "Q")

			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestQuery_RequestCarriesConfiguration(t *testing.T) {
	client := &mockRetrieveClient{output: successOutput("X")}
	service := newTestService(t, client)

	_, err := service.Query(context.Background(), "how do I install strands")
	require.NoError(t, err)

	require.NotNil(t, client.lastInput)
	assert.Equal(t, "how do I install strands", aws.ToString(client.lastInput.Input.Text))

	cfg := client.lastInput.RetrieveAndGenerateConfiguration
	require.NotNil(t, cfg)
	assert.Equal(t, types.RetrieveAndGenerateTypeKnowledgeBase, cfg.Type)
	assert.Equal(t, "KB12345678", aws.ToString(cfg.KnowledgeBaseConfiguration.KnowledgeBaseId))
	assert.Equal(t, "arn:aws:bedrock:us-west-2::foundation-model/anthropic.claude-3-sonnet-20240229-v1:0", aws.ToString(cfg.KnowledgeBaseConfiguration.ModelArn))
}

func TestNewServiceWithClient_Validation(t *testing.T) {
	logger := arbor.NewLogger()

	_, err := NewServiceWithClient(&mockRetrieveClient{}, &common.BedrockConfig{
		Region:   "us-west-2",
		ModelARN: "arn:aws:bedrock:us-west-2::foundation-model/x",
	}, logger)
	assert.Error(t, err, "missing knowledge base ID must be rejected")

	_, err = NewServiceWithClient(&mockRetrieveClient{}, &common.BedrockConfig{
		KnowledgeBaseID: "KB12345678",
		Region:          "us-west-2",
		ModelARN:        "arn:aws:bedrock:us-west-2::foundation-model/x",
		Timeout:         "not-a-duration",
	}, logger)
	assert.Error(t, err, "invalid timeout must be rejected")
}
