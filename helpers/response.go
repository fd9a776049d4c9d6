package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	"devtinder_server/services"
)

// WriteJSONResponse writes a JSON body with the given status code
func WriteJSONResponse(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a JSON error body in the {"message": ...} shape
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSONResponse(w, status, map[string]string{"message": message})
}

// WriteDomainError maps a service error onto the HTTP taxonomy:
// 400 validation / bad transition input, 401 bad credentials,
// 403 forbidden, 404 not found, 409 conflict, 500 everything else.
func WriteDomainError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, services.ErrValidation):
		WriteError(w, http.StatusBadRequest, "validation failed")
	case errors.Is(err, services.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrForbidden):
		WriteError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, services.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Not Found")
	case errors.Is(err, services.ErrEmailTaken):
		WriteError(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, services.ErrConflict):
		WriteError(w, http.StatusConflict, "Connection request already exists")
	case errors.Is(err, services.ErrInvalidOperation):
		WriteError(w, http.StatusBadRequest, "Operation not allowed in the current state")
	default:
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
