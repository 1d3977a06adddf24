package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/unq-dapp-grupoM/futbol-api/internal/auth"
	"github.com/unq-dapp-grupoM/futbol-api/internal/models"
	"github.com/unq-dapp-grupoM/futbol-api/pkg/errors"
)

// AuthHandler handles registration and login requests
type AuthHandler struct {
	service *auth.Service
	logger  *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// HandleRegister handles POST /api/auth/register
// @Summary     Register a new user
// @Description Creates an account with the default USER role
// @Tags        auth
// @Accept      application/json
// @Produce     application/json
// @Param       request body     models.RegisterRequest true "Registration request"
// @Success     200     {object} models.MessageResponse
// @Failure     400     {object} map[string]string
// @Router      /api/auth/register [post]
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, errors.Wrap(err, errors.ErrInvalidRequest))
		return
	}

	message, err := h.service.Register(r.Context(), req)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, models.MessageResponse{Message: message})
}

// HandleLogin handles POST /api/auth/login
// @Summary     Authenticate a user
// @Description Verifies credentials and returns a bearer token
// @Tags        auth
// @Accept      application/json
// @Produce     application/json
// @Param       request body     models.AuthenticationRequest true "Login request"
// @Success     200     {object} models.AuthenticationResponse
// @Failure     403     {object} map[string]string
// @Router      /api/auth/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.AuthenticationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, errors.Wrap(err, errors.ErrInvalidRequest))
		return
	}

	token, err := h.service.Authenticate(r.Context(), req)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, models.AuthenticationResponse{Token: token})
}
