package api

import (
	"net/http"
)

// handleHealth responds with 200 OK to indicate the service is running
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{
		"coingecko_quotes": "unknown",
		"coingecko_search": "unknown",
	}

	if s.quotesService.Healthy() {
		services["coingecko_quotes"] = "up"
	}
	if s.searchService.Healthy() {
		services["coingecko_search"] = "up"
	}

	s.sendJSONResponse(w, map[string]interface{}{
		"status":   "ok",
		"services": services,
	})
}
