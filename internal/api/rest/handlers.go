package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/courtsight/courtside/internal/cache"
	"github.com/courtsight/courtside/internal/export"
	"github.com/courtsight/courtside/internal/service"
	"github.com/courtsight/courtside/internal/store"
	"github.com/courtsight/courtside/internal/store/repository"
)

// Handler contains dependencies for HTTP handlers.
type Handler struct {
	db               *store.Database
	cache            *cache.RedisCache
	gamesService     *service.GamesService
	playersService   *service.PlayersService
	statsService     *service.StatsService
	searchService    *service.SearchService
	analyticsService *service.AnalyticsService
	exporter         *export.Exporter
	defaultSeason    string
}

// NewHandler creates a new handler.
func NewHandler(db *store.Database, redisCache *cache.RedisCache, exporter *export.Exporter, defaultSeason string) *Handler {
	return &Handler{
		db:               db,
		cache:            redisCache,
		gamesService:     service.NewGamesService(db),
		playersService:   service.NewPlayersService(db),
		statsService:     service.NewStatsService(db, redisCache),
		searchService:    service.NewSearchService(db),
		analyticsService: service.NewAnalyticsService(db),
		exporter:         exporter,
		defaultSeason:    defaultSeason,
	}
}

// HealthCheck reports service health including its dependencies.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	checks := map[string]string{}

	if err := h.db.HealthCheck(); err != nil {
		status = "degraded"
		checks["database"] = err.Error()
	} else {
		checks["database"] = "ok"
	}

	if h.cache != nil {
		if err := h.cache.HealthCheck(r.Context()); err != nil {
			status = "degraded"
			checks["cache"] = err.Error()
		} else {
			checks["cache"] = "ok"
		}
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, map[string]interface{}{
		"status":  status,
		"service": "courtside",
		"checks":  checks,
	})
}

// season reads the season query parameter, falling back to the configured
// current season. "all" clears the filter.
func (h *Handler) season(r *http.Request) string {
	season := r.URL.Query().Get("season")
	if season == "" {
		return h.defaultSeason
	}
	if season == "all" {
		return ""
	}
	return season
}

// GetTeams returns all teams.
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teamRepo := repository.NewTeamRepository(h.db)
	teams, err := teamRepo.GetAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch teams", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"teams": teams})
}

// GetTeam returns a specific team by ID.
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt(w, r, "teamID", "Invalid team ID")
	if !ok {
		return
	}

	teamRepo := repository.NewTeamRepository(h.db)
	team, err := teamRepo.GetByID(r.Context(), teamID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Team not found", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"team": team})
}

// GetTeamRoster returns a team's current roster.
func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt(w, r, "teamID", "Invalid team ID")
	if !ok {
		return
	}

	roster, err := h.playersService.GetTeamRoster(r.Context(), teamID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch team roster", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"roster": roster})
}

// GetTeamStats returns a team's aggregated season row with metrics.
func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt(w, r, "teamID", "Invalid team ID")
	if !ok {
		return
	}

	stats, err := h.statsService.GetTeamStats(r.Context(), teamID, h.season(r))
	if err != nil {
		respondError(w, http.StatusNotFound, "Team stats not found", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// GetTeamGameLog returns a team's games from its own perspective.
func (h *Handler) GetTeamGameLog(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt(w, r, "teamID", "Invalid team ID")
	if !ok {
		return
	}

	log, err := h.gamesService.GetTeamGameLog(r.Context(), teamID, h.season(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch game log", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": log,
		"count": len(log),
	})
}

// GetTeamFormTrend returns the fitted margin trend over recent games.
func (h *Handler) GetTeamFormTrend(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathInt(w, r, "teamID", "Invalid team ID")
	if !ok {
		return
	}

	window := 10 // default
	if windowStr := r.URL.Query().Get("games"); windowStr != "" {
		if g, err := strconv.Atoi(windowStr); err == nil && g > 0 && g <= 82 {
			window = g
		}
	}

	trend, err := h.analyticsService.GetTeamFormTrend(r.Context(), teamID, h.season(r), window)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to calculate form trend", err)
		return
	}

	respondJSON(w, http.StatusOK, trend)
}

// SearchTeams searches teams and returns cards with season records.
func (h *Handler) SearchTeams(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Missing query parameter 'q'", nil)
		return
	}

	cards, err := h.searchService.SearchTeams(r.Context(), query, h.season(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to search teams", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"results": cards})
}

// GetPlayer returns a player by ID.
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathInt(w, r, "playerID", "Invalid player ID")
	if !ok {
		return
	}

	player, err := h.playersService.GetPlayer(r.Context(), playerID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Player not found", err)
		return
	}

	respondJSON(w, http.StatusOK, player)
}

// SearchPlayers searches for players by name.
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Missing query parameter 'q'", nil)
		return
	}

	cards, err := h.searchService.SearchPlayers(r.Context(), query)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to search players", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"results": cards})
}

// GetGames returns the stored games for a season, oldest first.
func (h *Handler) GetGames(w http.ResponseWriter, r *http.Request) {
	gameRepo := repository.NewGameRepository(h.db)

	var games []*store.GameRecord
	var err error
	if season := h.season(r); season != "" {
		games, err = gameRepo.ListBySeason(r.Context(), season)
	} else {
		games, err = gameRepo.ListAll(r.Context())
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch games", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": games,
		"count": len(games),
	})
}

// GetGame returns a specific game by ID.
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathInt(w, r, "gameID", "Invalid game ID")
	if !ok {
		return
	}

	game, err := h.gamesService.GetGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

// GetHeadToHead returns the meetings between two teams.
func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	teamA, err := strconv.Atoi(r.URL.Query().Get("team_a"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing or invalid 'team_a'", err)
		return
	}
	teamB, err := strconv.Atoi(r.URL.Query().Get("team_b"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing or invalid 'team_b'", err)
		return
	}

	h2h, err := h.gamesService.GetHeadToHead(r.Context(), teamA, teamB, h.season(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch head-to-head", err)
		return
	}

	respondJSON(w, http.StatusOK, h2h)
}

// GetTeamMetrics returns every team-season row with metrics for a season.
func (h *Handler) GetTeamMetrics(w http.ResponseWriter, r *http.Request) {
	rows, err := h.statsService.GetTeamMetrics(r.Context(), h.season(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute team metrics", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"teams": rows,
		"count": len(rows),
	})
}

// GetTeamRankings returns per-metric and overall ranks for a season.
func (h *Handler) GetTeamRankings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.statsService.GetTeamRankings(r.Context(), h.season(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute rankings", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"rankings": rows,
		"count":    len(rows),
	})
}

// GetLeagueOverview returns league-wide averages per season.
func (h *Handler) GetLeagueOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.statsService.GetLeagueOverview(r.Context(), h.season(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute league overview", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"seasons": overview})
}

// GetSeasons lists the stored seasons.
func (h *Handler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.statsService.Seasons(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list seasons", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"seasons": seasons})
}

// ExportDatasets computes the derived datasets for a season and writes them
// as CSV files.
func (h *Handler) ExportDatasets(w http.ResponseWriter, r *http.Request) {
	if h.exporter == nil {
		respondError(w, http.StatusServiceUnavailable, "Export is not configured", nil)
		return
	}

	data, err := h.statsService.ComputeDatasets(r.Context(), h.season(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute datasets", err)
		return
	}

	var files []string
	for _, write := range []func() (string, error){
		func() (string, error) { return h.exporter.WriteTeams(data.Teams.Rows, data.Season) },
		func() (string, error) { return h.exporter.WritePlayers(data.Players.Rows, data.Season) },
		func() (string, error) { return h.exporter.WriteGames(data.Games.Rows, data.Season) },
		func() (string, error) { return h.exporter.WriteTeamStats(data.TeamStats.Rows, data.Season) },
		func() (string, error) { return h.exporter.WriteTeamMetrics(data.TeamMetrics.Rows, data.Season) },
		func() (string, error) { return h.exporter.WriteTeamRankings(data.TeamRankings.Rows, data.Season) },
		func() (string, error) { return h.exporter.WriteLeagueOverview(data.Overview, data.Season) },
	} {
		path, err := write()
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to write export file", err)
			return
		}
		files = append(files, path)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"files": files,
	})
}

// pathInt parses an integer path variable, responding with a 400 on failure.
func pathInt(w http.ResponseWriter, r *http.Request, name, errMsg string) (int, bool) {
	value, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		respondError(w, http.StatusBadRequest, errMsg, err)
		return 0, false
	}
	return value, true
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
