package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/unq-dapp-grupoM/futbol-api/internal/scraper"
	"github.com/unq-dapp-grupoM/futbol-api/pkg/errors"
)

// TeamHandler proxies team lookups to the scraper service
type TeamHandler struct {
	scraper *scraper.Client
	logger  *zap.Logger
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(client *scraper.Client, logger *zap.Logger) *TeamHandler {
	return &TeamHandler{
		scraper: client,
		logger:  logger,
	}
}

// HandleTeam handles GET /api/team?teamName=...
// @Summary     Search a team by name
// @Description Looks a team up through the scraper service and returns its details
// @Tags        teams
// @Produce     application/json
// @Param       teamName query string true "Name of the team"
// @Success     200 {object} object
// @Failure     404 {object} map[string]string
// @Failure     503 {object} map[string]string
// @Router      /api/team [get]
func (h *TeamHandler) HandleTeam(w http.ResponseWriter, r *http.Request) {
	teamName := r.URL.Query().Get("teamName")
	if teamName == "" {
		sendError(w, errors.WithMessage(errors.ErrInvalidRequest,
			"Query parameter 'teamName' is required"))
		return
	}

	h.logger.Info("Requesting team info from scraper service", zap.String("team", teamName))

	team, err := h.scraper.SearchTeam(r.Context(), teamName)
	if err != nil {
		sendError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(team)
}

// HandleFutureMatches handles GET /api/futureMatches?teamName=...
// @Summary     Get upcoming matches for a team
// @Tags        teams
// @Produce     application/json
// @Param       teamName query string true "Name of the team"
// @Success     200 {array}  object
// @Failure     404 {object} map[string]string
// @Failure     503 {object} map[string]string
// @Router      /api/futureMatches [get]
func (h *TeamHandler) HandleFutureMatches(w http.ResponseWriter, r *http.Request) {
	teamName := r.URL.Query().Get("teamName")
	if teamName == "" {
		sendError(w, errors.WithMessage(errors.ErrInvalidRequest,
			"Query parameter 'teamName' is required"))
		return
	}

	h.logger.Info("Requesting future matches from scraper service", zap.String("team", teamName))

	matches, err := h.scraper.FutureMatches(r.Context(), teamName)
	if err != nil {
		sendError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(matches)
}
