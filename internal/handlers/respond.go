package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/unq-dapp-grupoM/futbol-api/pkg/errors"
)

func sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sendError maps an error to the standard JSON error body. Unclassified
// errors become 500.
func sendError(w http.ResponseWriter, err error) {
	var serviceErr *errors.ServiceError
	if !stderrors.As(err, &serviceErr) {
		serviceErr = errors.Wrap(err, errors.ErrInternalServer)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(serviceErr.Status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":             serviceErr.Code,
		"error_description": serviceErr.Message,
	})
}
