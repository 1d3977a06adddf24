package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/unq-dapp-grupoM/futbol-api/internal/cache"
	"github.com/unq-dapp-grupoM/futbol-api/internal/models"
	"github.com/unq-dapp-grupoM/futbol-api/pkg/errors"
)

// InternalHandler serves the /api/v1/internal endpoints, reachable only with
// the service API key.
type InternalHandler struct {
	cache      *cache.Cache
	scraperURL string
	logger     *zap.Logger
}

// NewInternalHandler creates a new internal handler
func NewInternalHandler(c *cache.Cache, scraperURL string, logger *zap.Logger) *InternalHandler {
	return &InternalHandler{
		cache:      c,
		scraperURL: scraperURL,
		logger:     logger,
	}
}

// HandleStatus handles GET /api/v1/internal/status
// @Summary     Service status for internal callers
// @Tags        internal
// @Produce     application/json
// @Success     200 {object} models.StatusResponse
// @Router      /api/v1/internal/status [get]
func (h *InternalHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, models.StatusResponse{
		Status:     "ok",
		ScraperURL: h.scraperURL,
		CacheReady: h.cache.Enabled(),
	})
}

// HandlePurgeCache handles DELETE /api/v1/internal/cache
// @Summary     Purge the scraper response cache
// @Tags        internal
// @Produce     application/json
// @Success     200 {object} models.MessageResponse
// @Router      /api/v1/internal/cache [delete]
func (h *InternalHandler) HandlePurgeCache(w http.ResponseWriter, r *http.Request) {
	purged, err := h.cache.PurgeScrapes(r.Context())
	if err != nil {
		sendError(w, errors.Wrap(err, errors.ErrInternalServer))
		return
	}

	h.logger.Info("Purged scraper cache", zap.Int64("keys", purged))
	sendJSON(w, http.StatusOK, models.MessageResponse{Message: "Scraper cache purged"})
}
