package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/doctrina/internal/common"
)

func newTestAPIHandler() *APIHandler {
	config := common.NewDefaultConfig()
	config.Bedrock.KnowledgeBaseID = "KB12345678"
	return NewAPIHandler(config, arbor.NewLogger())
}

func TestHealthHandler(t *testing.T) {
	handler := newTestAPIHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.HealthHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestStatusHandler(t *testing.T) {
	handler := newTestAPIHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	handler.StatusHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "KB12345678", resp["knowledge_base_id"])
	assert.Equal(t, "us-west-2", resp["region"])
}

func TestVersionHandler_MethodNotAllowed(t *testing.T) {
	handler := newTestAPIHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/version", nil)
	rec := httptest.NewRecorder()
	handler.VersionHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
