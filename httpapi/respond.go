package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentflow/application"
	"rentflow/auth"
	"rentflow/store"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// errorBody is the JSON envelope for every failed request. Fields is only set
// for draft validation failures so the form can surface each message in place.
type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// writeError translates domain errors into HTTP responses. Every failure path
// produces a visible message; nothing is swallowed.
func writeError(w http.ResponseWriter, err error) {
	var verr *application.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error:  "Please fix the errors in the form",
			Fields: verr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Invalid email or password."})
	case errors.Is(err, auth.ErrWeakPassword):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, auth.ErrDuplicateEmail):
		writeJSON(w, http.StatusConflict, errorBody{Error: "This email is already registered."})
	case errors.Is(err, auth.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: store.UserMessage(store.ErrNotFound)})
	case errors.Is(err, application.ErrPropertyNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Property not found"})
	case errors.Is(err, application.ErrInvalidDecision):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, application.ErrNotPending):
		writeJSON(w, http.StatusConflict, errorBody{Error: "This application has already been decided."})
	case errors.Is(err, store.ErrPermissionDenied):
		writeJSON(w, http.StatusForbidden, errorBody{Error: store.UserMessage(err)})
	case errors.Is(err, store.ErrUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: store.UserMessage(err)})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: store.UserMessage(err)})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: store.UserMessage(err)})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body."})
		return false
	}
	return true
}
