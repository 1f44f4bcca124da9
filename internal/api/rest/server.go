package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/courtsight/courtside/internal/cache"
	"github.com/courtsight/courtside/internal/export"
	"github.com/courtsight/courtside/internal/importer"
	"github.com/courtsight/courtside/internal/store"
)

// Server represents the REST API server.
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server. The cache, import service and
// exporter may be nil; the affected routes then report the feature as
// unavailable.
func NewServer(port string, db *store.Database, redisCache *cache.RedisCache, importSvc *importer.Service, exporter *export.Exporter, defaultSeason string) *Server {
	handler := NewHandler(db, redisCache, exporter, defaultSeason)
	importHandler := NewImportHandler(importSvc)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Teams
	api.HandleFunc("/teams", handler.GetTeams).Methods("GET")
	api.HandleFunc("/teams/search", handler.SearchTeams).Methods("GET")
	api.HandleFunc("/teams/{teamID}", handler.GetTeam).Methods("GET")
	api.HandleFunc("/teams/{teamID}/roster", handler.GetTeamRoster).Methods("GET")
	api.HandleFunc("/teams/{teamID}/stats", handler.GetTeamStats).Methods("GET")
	api.HandleFunc("/teams/{teamID}/gamelog", handler.GetTeamGameLog).Methods("GET")
	api.HandleFunc("/teams/{teamID}/trend", handler.GetTeamFormTrend).Methods("GET")

	// Players
	api.HandleFunc("/players/search", handler.SearchPlayers).Methods("GET")
	api.HandleFunc("/players/{playerID}", handler.GetPlayer).Methods("GET")

	// Games
	api.HandleFunc("/games", handler.GetGames).Methods("GET")
	api.HandleFunc("/games/head-to-head", handler.GetHeadToHead).Methods("GET")
	api.HandleFunc("/games/{gameID}", handler.GetGame).Methods("GET")

	// Derived statistics
	api.HandleFunc("/stats/teams", handler.GetTeamMetrics).Methods("GET")
	api.HandleFunc("/stats/rankings", handler.GetTeamRankings).Methods("GET")
	api.HandleFunc("/stats/league", handler.GetLeagueOverview).Methods("GET")
	api.HandleFunc("/stats/seasons", handler.GetSeasons).Methods("GET")

	// Import operations
	api.HandleFunc("/imports", importHandler.HandleImportRequest).Methods("POST")
	api.HandleFunc("/imports/status", importHandler.HandleImportStatus).Methods("GET")

	// CSV export
	api.HandleFunc("/export", handler.ExportDatasets).Methods("POST")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
