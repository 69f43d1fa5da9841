package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/doctrina/internal/interfaces"
)

// QueryHandler serves POST /api/query, the plain-HTTP rendition of the
// documentation query operation
type QueryHandler struct {
	knowledge interfaces.KnowledgeService
	logger    arbor.ILogger
}

// NewQueryHandler creates a new QueryHandler
func NewQueryHandler(knowledge interfaces.KnowledgeService, logger arbor.ILogger) *QueryHandler {
	return &QueryHandler{
		knowledge: knowledge,
		logger:    logger,
	}
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Query    string `json:"query"`
	Response string `json:"response"`
}

// QueryDocsHandler handles POST /api/query. The knowledge service never
// surfaces an error, so the response is always 200 with displayable text
// (empty-input and remote failures included).
func (h *QueryHandler) QueryDocsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	defer r.Body.Close()

	text := h.knowledge.Execute(r.Context(), req.Query)

	WriteJSON(w, http.StatusOK, queryResponse{
		Query:    req.Query,
		Response: text,
	})
}
