package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type watchlistAddRequest struct {
	ID string `json:"id"`
}

// handleWatchlistGet responds with the tracked asset ids in insertion order
func (s *Server) handleWatchlistGet(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, s.watchlistService.IDs())
}

// handleWatchlistAdd adds an asset id to the watchlist
func (s *Server) handleWatchlistAdd(w http.ResponseWriter, r *http.Request) {
	var req watchlistAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		http.Error(w, "body must be a JSON object with a non-empty id", http.StatusBadRequest)
		return
	}

	added, err := s.watchlistService.Add(req.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !added {
		http.Error(w, "asset already tracked", http.StatusConflict)
		return
	}

	w.WriteHeader(http.StatusCreated)
	s.sendJSONResponse(w, s.watchlistService.IDs())
}

// handleWatchlistRemove removes an asset id from the watchlist
func (s *Server) handleWatchlistRemove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	removed, err := s.watchlistService.Remove(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "asset not tracked", http.StatusNotFound)
		return
	}

	s.sendJSONResponse(w, s.watchlistService.IDs())
}
