package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/doctrina/internal/models"
	"github.com/ternarybob/doctrina/internal/services/mcp"
)

// fakeKnowledgeService returns canned text for every query
type fakeKnowledgeService struct {
	text string
}

func (f *fakeKnowledgeService) Execute(ctx context.Context, query string) string {
	return f.text
}

func (f *fakeKnowledgeService) Query(ctx context.Context, query string) (*models.RetrievalResult, error) {
	return &models.RetrievalResult{Answer: f.text}, nil
}

func newTestMCPHandler(text string) *MCPHandler {
	logger := arbor.NewLogger()
	service := mcp.NewKnowledgeToolService(&fakeKnowledgeService{text: text}, logger)
	return NewMCPHandler(service, logger)
}

func doRPC(t *testing.T, handler *MCPHandler, body string) (*httptest.ResponseRecorder, *mcp.JSONRPCResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.HandleRPC(rec, req)

	if rec.Body.Len() == 0 {
		return rec, nil
	}

	var resp mcp.JSONRPCResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, &resp
}

func initializeSession(t *testing.T, handler *MCPHandler) {
	t.Helper()

	_, resp := doRPC(t, handler, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)
	require.Nil(t, resp.Error)

	rec, _ := doRPC(t, handler, `{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
}

func TestHandleRPC_RejectsToolsBeforeInitialize(t *testing.T) {
	handler := newTestMCPHandler("answer")

	rec, resp := doRPC(t, handler, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, mcp.InvalidRequest, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "not initialized")
}

func TestHandleRPC_InitializeLifecycle(t *testing.T) {
	handler := newTestMCPHandler("answer")

	// initialize
	rec, resp := doRPC(t, handler, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, mcp.ProtocolVersion, result["protocolVersion"])
	serverInfo, ok := result["serverInfo"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "doctrina", serverInfo["name"])

	// double initialize is rejected
	_, resp = doRPC(t, handler, `{"jsonrpc":"2.0","id":2,"method":"initialize","params":{}}`)
	require.NotNil(t, resp.Error)

	// acknowledge
	rec, _ = doRPC(t, handler, `{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	// now tools/list succeeds
	_, resp = doRPC(t, handler, `{"jsonrpc":"2.0","id":3,"method":"tools/list"}`)
	require.Nil(t, resp.Error)
}

func TestHandleRPC_ListTools(t *testing.T) {
	handler := newTestMCPHandler("answer")
	initializeSession(t, handler)

	_, resp := doRPC(t, handler, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	tools, ok := result["tools"].([]interface{})
	require.True(t, ok)
	require.Len(t, tools, 1)

	tool := tools[0].(map[string]interface{})
	assert.Equal(t, "query_strands_docs", tool["name"])
}

func TestHandleRPC_CallTool(t *testing.T) {
	handler := newTestMCPHandler("**Query**: Q\n\n**Answer**: X")
	initializeSession(t, handler)

	_, resp := doRPC(t, handler, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"query_strands_docs","arguments":{"query":"Q"}}}`)
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	content, ok := result["content"].([]interface{})
	require.True(t, ok)
	require.Len(t, content, 1)

	block := content[0].(map[string]interface{})
	assert.Equal(t, "text", block["type"])
	assert.Equal(t, "**Query**: Q\n\n**Answer**: X", block["text"])
}

func TestHandleRPC_CallUnknownTool(t *testing.T) {
	handler := newTestMCPHandler("answer")
	initializeSession(t, handler)

	rec, resp := doRPC(t, handler, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"no_such_tool"}}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, mcp.InternalError, resp.Error.Code)
}

func TestHandleRPC_ProtocolErrors(t *testing.T) {
	handler := newTestMCPHandler("answer")

	// invalid JSON
	rec, resp := doRPC(t, handler, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, mcp.ParseError, resp.Error.Code)

	// wrong JSON-RPC version
	_, resp = doRPC(t, handler, `{"jsonrpc":"1.0","id":1,"method":"tools/list"}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, mcp.InvalidRequest, resp.Error.Code)

	// unknown method
	_, resp = doRPC(t, handler, `{"jsonrpc":"2.0","id":1,"method":"resources/list"}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, mcp.MethodNotFound, resp.Error.Code)

	// GET is not allowed
	req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
	getRec := httptest.NewRecorder()
	handler.HandleRPC(getRec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, getRec.Code)
}

func TestHandleRPC_Shutdown(t *testing.T) {
	handler := newTestMCPHandler("answer")
	initializeSession(t, handler)

	_, resp := doRPC(t, handler, `{"jsonrpc":"2.0","id":9,"method":"shutdown"}`)
	require.Nil(t, resp.Error)

	// no further requests accepted
	_, resp = doRPC(t, handler, `{"jsonrpc":"2.0","id":10,"method":"tools/list"}`)
	require.NotNil(t, resp.Error)
}
