package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/unq-dapp-grupoM/futbol-api/pkg/errors"
)

// WriteError renders a ServiceError as the standard JSON error body.
func WriteError(w http.ResponseWriter, serviceErr *errors.ServiceError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(serviceErr.Status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             serviceErr.Code,
		"error_description": serviceErr.Message,
	})
}
