package api

import (
	"net/http"
)

// handleSearch responds with ranked coin suggestions for the query.
// Search never fails outward: upstream trouble shows up as an empty list.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	results := s.searchService.SearchCoins(r.Context(), query)

	s.sendJSONResponse(w, results)
}
