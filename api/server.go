package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coinwatch/market-core/coingecko_quotes"
	"github.com/coinwatch/market-core/coingecko_search"
	"github.com/coinwatch/market-core/watchlist"
)

type Server struct {
	port             string
	quotesService    *coingecko_quotes.Service
	searchService    *coingecko_search.Service
	watchlistService *watchlist.Service
	updater          *coingecko_quotes.PeriodicUpdater
	server           *http.Server
}

// New creates the HTTP server serving the watchlist UI backend
func New(port string, quotesService *coingecko_quotes.Service, searchService *coingecko_search.Service,
	watchlistService *watchlist.Service, updater *coingecko_quotes.PeriodicUpdater) *Server {
	return &Server{
		port:             port,
		quotesService:    quotesService,
		searchService:    searchService,
		watchlistService: watchlistService,
		updater:          updater,
	}
}

// Start implements core.Interface
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    ":" + s.port,
		Handler: s.newRouter(),
	}

	log.Printf("Server starting at http://localhost:%s", s.port)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}

func (s *Server) newRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/api/v1/quotes", s.handleQuotes).Methods("GET")
	router.HandleFunc("/api/v1/quotes/{id}", s.handleQuote).Methods("GET")
	router.HandleFunc("/api/v1/search", s.handleSearch).Methods("GET")

	router.HandleFunc("/api/v1/watchlist", s.handleWatchlistGet).Methods("GET")
	router.HandleFunc("/api/v1/watchlist", s.handleWatchlistAdd).Methods("POST")
	router.HandleFunc("/api/v1/watchlist/quotes", s.handleWatchlistQuotes).Methods("GET")
	router.HandleFunc("/api/v1/watchlist/{id}", s.handleWatchlistRemove).Methods("DELETE")

	router.HandleFunc("/api/v1/ws", s.handleWebSocket)

	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}
}
