package handlers

import (
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/doctrina/internal/common"
)

// APIHandler serves the system endpoints: health, version and status
type APIHandler struct {
	config    *common.Config
	logger    arbor.ILogger
	startedAt time.Time
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(config *common.Config, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		config:    config,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version":    common.GetVersion(),
		"build":      common.GetBuild(),
		"git_commit": common.GetGitCommit(),
	})
}

// HealthHandler returns health check status
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// StatusHandler handles GET /api/status
func (h *APIHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version":           common.GetVersion(),
		"environment":       h.config.Environment,
		"knowledge_base_id": h.config.Bedrock.KnowledgeBaseID,
		"region":            h.config.Bedrock.Region,
		"model_arn":         h.config.Bedrock.ModelARN,
		"uptime_seconds":    int(time.Since(h.startedAt).Seconds()),
	})
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}
