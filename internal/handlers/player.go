package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/unq-dapp-grupoM/futbol-api/internal/auth"
	"github.com/unq-dapp-grupoM/futbol-api/internal/database"
	"github.com/unq-dapp-grupoM/futbol-api/internal/models"
	"github.com/unq-dapp-grupoM/futbol-api/internal/scraper"
	"github.com/unq-dapp-grupoM/futbol-api/pkg/errors"
)

// PlayerHandler proxies player lookups to the scraper service
type PlayerHandler struct {
	scraper *scraper.Client
	history *historyRecorder
	logger  *zap.Logger
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(client *scraper.Client, repo database.Repository, users *auth.Service, logger *zap.Logger) *PlayerHandler {
	return &PlayerHandler{
		scraper: client,
		history: &historyRecorder{repo: repo, users: users, logger: logger},
		logger:  logger,
	}
}

// HandlePlayer handles GET /api/player?playerName=...
// @Summary     Search a player by name
// @Description Looks a player up through the scraper service and returns its details
// @Tags        players
// @Produce     application/json
// @Param       playerName query string true "Name of the player"
// @Success     200 {object} object
// @Failure     404 {object} map[string]string
// @Failure     503 {object} map[string]string
// @Router      /api/player [get]
func (h *PlayerHandler) HandlePlayer(w http.ResponseWriter, r *http.Request) {
	playerName := r.URL.Query().Get("playerName")
	if playerName == "" {
		sendError(w, errors.WithMessage(errors.ErrInvalidRequest,
			"Query parameter 'playerName' is required"))
		return
	}

	h.logger.Info("Requesting player info from scraper service", zap.String("player", playerName))

	player, err := h.scraper.SearchPlayer(r.Context(), playerName)
	if err != nil {
		sendError(w, err)
		return
	}

	h.history.record(r.Context(), playerName, models.QueryPlayerInfo)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(player)
}
