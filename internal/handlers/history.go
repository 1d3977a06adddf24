package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/unq-dapp-grupoM/futbol-api/internal/auth"
	"github.com/unq-dapp-grupoM/futbol-api/internal/database"
	"github.com/unq-dapp-grupoM/futbol-api/internal/models"
	"github.com/unq-dapp-grupoM/futbol-api/pkg/errors"
)

// historyRecorder appends audit records for successful analytics queries.
// Only user principals are recorded; service callers have no user ID.
type historyRecorder struct {
	repo   database.Repository
	users  *auth.Service
	logger *zap.Logger
}

func (rec *historyRecorder) record(ctx context.Context, playerName string, queryType models.QueryType) {
	principal := auth.PrincipalFrom(ctx)
	if principal.Kind != auth.User {
		return
	}

	user, err := rec.users.ResolveSubject(ctx, principal.Subject)
	if err != nil || user == nil {
		rec.logger.Warn("Could not resolve user for query history",
			zap.String("subject", principal.Subject), zap.Error(err))
		return
	}

	entry := &models.QueryHistory{
		UserID:     user.ID,
		PlayerName: playerName,
		QueryType:  queryType,
		QueryDate:  models.APIDate(time.Now()),
	}
	if err := rec.repo.SaveQuery(ctx, entry); err != nil {
		rec.logger.Error("Failed to save query history", zap.Error(err))
		return
	}
	rec.logger.Info("Saved query history",
		zap.String("type", string(queryType)),
		zap.String("player", playerName),
		zap.Int64("user_id", user.ID))
}

// HistoryHandler serves the query-history lookup endpoint
type HistoryHandler struct {
	repo   database.Repository
	logger *zap.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(repo database.Repository, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		repo:   repo,
		logger: logger,
	}
}

// HandleHistory handles GET /api/history?date=dd/MM/yyyy&playerName=...
// @Summary     Get query history
// @Description Returns performance, prediction and comparison queries recorded for a date and player
// @Tags        history
// @Produce     application/json
// @Param       date       query string true "Date of the query (dd/MM/yyyy)"
// @Param       playerName query string true "Name of the player"
// @Success     200 {array}  models.QueryHistory
// @Failure     400 {object} map[string]string
// @Router      /api/history [get]
func (h *HistoryHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	playerName := r.URL.Query().Get("playerName")
	rawDate := r.URL.Query().Get("date")
	if playerName == "" || rawDate == "" {
		sendError(w, errors.WithMessage(errors.ErrInvalidRequest,
			"Query parameters 'date' and 'playerName' are required"))
		return
	}

	date, err := models.ParseAPIDate(rawDate)
	if err != nil {
		sendError(w, errors.WithMessage(errors.ErrInvalidRequest,
			"Parameter 'date' must use the dd/MM/yyyy format"))
		return
	}

	entries, err := h.repo.GetHistoryByDateAndPlayer(r.Context(), date, playerName)
	if err != nil {
		sendError(w, errors.Wrap(err, errors.ErrInternalServer))
		return
	}
	if entries == nil {
		entries = []models.QueryHistory{}
	}

	sendJSON(w, http.StatusOK, entries)
}
