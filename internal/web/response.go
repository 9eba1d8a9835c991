package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/me/civicflow/internal/access"
	"github.com/me/civicflow/internal/api"
	"github.com/me/civicflow/pkg/model"
)

// respondOK writes a success envelope for the requested view.
func respondOK(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, http.StatusOK, model.NewResponse(RequestIDFromContext(r.Context()), r.URL.Path, data))
}

// respondError writes an error envelope.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	apiErr := &model.APIError{Status: status, Message: message}
	writeJSON(w, status, model.NewErrorResponse(RequestIDFromContext(r.Context()), apiErr))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// fail maps a console error onto the response. An expired or missing
// session sends the browser back to the login view.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		fe *api.FetchError
		ce *api.CredentialError
		ve *model.ValidationError
	)
	switch {
	case errors.Is(err, api.ErrAuthExpired), errors.Is(err, api.ErrNotAuthenticated):
		http.Redirect(w, r, access.PathLogin, http.StatusSeeOther)
	case errors.As(err, &ce):
		respondError(w, r, http.StatusUnauthorized, ce.Message)
	case errors.As(err, &ve):
		respondError(w, r, http.StatusBadRequest, ve.Error())
	case errors.As(err, &fe):
		status := http.StatusBadGateway
		if fe.Status == http.StatusNotFound || fe.Status == http.StatusForbidden || fe.Status == http.StatusBadRequest {
			status = fe.Status
		}
		respondError(w, r, status, fe.Message)
	case r.Context().Err() != nil:
		s.logger.Debug("request canceled", "path", r.URL.Path)
	default:
		s.logger.Error("view failed", "path", r.URL.Path, "error", err)
		respondError(w, r, http.StatusInternalServerError, err.Error())
	}
}
