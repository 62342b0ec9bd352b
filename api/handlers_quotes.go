package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// handleQuotes responds with current quotes for the requested asset ids,
// keyed by the ids exactly as passed in
func (s *Server) handleQuotes(w http.ResponseWriter, r *http.Request) {
	ids := splitParamLowercase(r.URL.Query().Get("ids"))
	if len(ids) == 0 {
		http.Error(w, "ids parameter is required", http.StatusBadRequest)
		return
	}

	quotes, err := s.quotesService.GetQuotes(r.Context(), ids)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	s.sendJSONResponse(w, quotes)
}

// handleQuote responds with the quote for a single asset id;
// 404 when the upstream does not list the asset
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	quote, found, err := s.quotesService.GetQuote(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	if !found {
		http.Error(w, "asset not found", http.StatusNotFound)
		return
	}

	s.sendJSONResponse(w, quote)
}

// handleWatchlistQuotes responds with the most recently refreshed quotes
// for the tracked watchlist
func (s *Server) handleWatchlistQuotes(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, s.quotesService.LatestQuotes())
}
