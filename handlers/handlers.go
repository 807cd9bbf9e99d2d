// munui/handlers/handlers.go

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"munui/config"
	"munui/database"
	"munui/models"
)

// App is an interface that defines the dependencies our handlers need.
type App interface {
	DB() *database.DatabaseService
	RateLimiter() *models.RateLimiter
	Logger() *slog.Logger
	PublicDir() string
}

// MakeHandler adapts an App-aware handler function to http.HandlerFunc.
func MakeHandler(app App, fn func(http.ResponseWriter, *http.Request, App)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn(w, r, app)
	}
}

// respondJSON sends a JSON response with a given status code.
func respondJSON(w http.ResponseWriter, status int, payload interface{}, app App) {
	response, err := json.Marshal(payload)
	if err != nil {
		app.Logger().Error("Failed to marshal JSON payload", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte(`{"error":"Failed to marshal JSON response"}`)); werr != nil {
			app.Logger().Error("Failed to write internal server error response", "error", werr)
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(response); err != nil {
		app.Logger().Error("Failed to write JSON response", "error", err)
	}
}

// respondError maps the store's error taxonomy onto HTTP statuses:
// validation 400, auth 401, not-found and referential 404, everything
// else 500.
func respondError(w http.ResponseWriter, err error, app App) {
	var (
		verr *models.ValidationError
		aerr *models.AuthError
		nerr *models.NotFoundError
		rerr *models.ReferentialError
	)
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Msg}, app)
	case errors.As(err, &aerr):
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": aerr.Msg}, app)
	case errors.As(err, &nerr):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": nerr.Msg}, app)
	case errors.As(err, &rerr):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": rerr.Msg}, app)
	default:
		app.Logger().Error("Store operation failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "데이터베이스 오류"}, app)
	}
}

// decodeJSON reads a JSON request body into dst, enforcing the body size cap.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}
