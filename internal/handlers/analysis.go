package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/unq-dapp-grupoM/futbol-api/internal/auth"
	"github.com/unq-dapp-grupoM/futbol-api/internal/database"
	"github.com/unq-dapp-grupoM/futbol-api/internal/models"
	"github.com/unq-dapp-grupoM/futbol-api/internal/scraper"
	"github.com/unq-dapp-grupoM/futbol-api/pkg/errors"
)

// AnalysisHandler proxies performance analysis requests to the scraper
// service and records each successful query in the audit log.
type AnalysisHandler struct {
	scraper *scraper.Client
	history *historyRecorder
	logger  *zap.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(client *scraper.Client, repo database.Repository, users *auth.Service, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		scraper: client,
		history: &historyRecorder{repo: repo, users: users, logger: logger},
		logger:  logger,
	}
}

// playerNameVar extracts and sanitizes the playerName path variable.
func playerNameVar(r *http.Request) string {
	name := mux.Vars(r)["playerName"]
	name = strings.ReplaceAll(name, "\n", "_")
	name = strings.ReplaceAll(name, "\r", "_")
	return name
}

// HandleMetrics handles GET /api/analysis/{playerName}/metrics
// @Summary     Get player performance metrics
// @Tags        analysis
// @Produce     application/json
// @Param       playerName path string true "Name of the player"
// @Success     200 {object} object
// @Failure     404 {object} map[string]string
// @Router      /api/analysis/{playerName}/metrics [get]
func (h *AnalysisHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	playerName := playerNameVar(r)

	metrics, err := h.scraper.PerformanceMetrics(r.Context(), playerName)
	if err != nil {
		sendError(w, err)
		return
	}

	h.history.record(r.Context(), playerName, models.QueryPerformance)
	writeRaw(w, metrics)
}

// HandlePrediction handles GET /api/analysis/{playerName}/prediction
// @Summary     Get performance prediction for the next match
// @Tags        analysis
// @Produce     application/json
// @Param       playerName path  string true "Name of the player"
// @Param       opponent   query string true "Opponent team name"
// @Param       isHome     query bool   true "Whether the player plays at home"
// @Param       position   query string true "Player position"
// @Success     200 {object} object
// @Failure     400 {object} map[string]string
// @Router      /api/analysis/{playerName}/prediction [get]
func (h *AnalysisHandler) HandlePrediction(w http.ResponseWriter, r *http.Request) {
	playerName := playerNameVar(r)

	opponent := r.URL.Query().Get("opponent")
	position := r.URL.Query().Get("position")
	if opponent == "" || position == "" {
		sendError(w, errors.WithMessage(errors.ErrInvalidRequest,
			"Query parameters 'opponent' and 'position' are required"))
		return
	}
	isHome, err := strconv.ParseBool(r.URL.Query().Get("isHome"))
	if err != nil {
		sendError(w, errors.WithMessage(errors.ErrInvalidRequest,
			"Query parameter 'isHome' must be true or false"))
		return
	}

	prediction, err := h.scraper.Prediction(r.Context(), playerName, opponent, isHome, position)
	if err != nil {
		sendError(w, err)
		return
	}

	h.history.record(r.Context(), playerName, models.QueryPrediction)
	writeRaw(w, prediction)
}

// HandleConvertData handles POST /api/analysis/{playerName}/convert-data
// @Summary     Convert scraped player data to the analysis format
// @Tags        analysis
// @Produce     application/json
// @Param       playerName path string true "Name of the player"
// @Success     200 {object} object
// @Router      /api/analysis/{playerName}/convert-data [post]
func (h *AnalysisHandler) HandleConvertData(w http.ResponseWriter, r *http.Request) {
	playerName := playerNameVar(r)

	result, err := h.scraper.ConvertData(r.Context(), playerName)
	if err != nil {
		sendError(w, err)
		return
	}

	writeRaw(w, result)
}

// HandleComparison handles GET /api/analysis/{playerName}/comparison
// @Summary     Get comparative analysis across periods
// @Tags        analysis
// @Produce     application/json
// @Param       playerName path string true "Name of the player"
// @Success     200 {object} object
// @Router      /api/analysis/{playerName}/comparison [get]
func (h *AnalysisHandler) HandleComparison(w http.ResponseWriter, r *http.Request) {
	playerName := playerNameVar(r)

	analysis, err := h.scraper.Comparison(r.Context(), playerName)
	if err != nil {
		sendError(w, err)
		return
	}

	h.history.record(r.Context(), playerName, models.QueryComparison)
	writeRaw(w, analysis)
}

func writeRaw(w http.ResponseWriter, payload json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}
