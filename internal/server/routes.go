package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - documentation queries
	mux.HandleFunc("/api/query", s.app.QueryHandler.QueryDocsHandler)

	// API routes - system
	mux.HandleFunc("/api/status", s.app.APIHandler.StatusHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// Catch-all for unknown API paths
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	// MCP (Model Context Protocol) endpoints
	mux.HandleFunc("/mcp", s.app.MCPHandler.HandleRPC)
	mux.HandleFunc("/mcp/info", s.app.MCPHandler.InfoHandler)

	return mux
}
