package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	domainadmins "github.com/preston-bernstein/game-library-service/internal/domain/admins"
	domaingames "github.com/preston-bernstein/game-library-service/internal/domain/games"
	"github.com/preston-bernstein/game-library-service/internal/http/requestutil"
	"github.com/preston-bernstein/game-library-service/internal/logging"
	"github.com/preston-bernstein/game-library-service/internal/uploads"
)

const (
	msgGameNotFound = "Game not found"
	msgInvalidCreds = "Invalid credentials"
	msgInternal     = "Internal server error"
	msgInvalidBody  = "Invalid request body"
	msgInvalidForm  = "Invalid form data"
	msgNotReady     = "store unavailable"
	msgShuttingDown = "shutting down"
)

// badRequests holds the response text for client errors reported as 400.
var badRequests = []struct {
	err error
	msg string
}{
	{uploads.ErrMissingFile, "Game image is required"},
	{uploads.ErrNotImage, "Only image files are allowed!"},
	{uploads.ErrTooLarge, "File too large"},
	{domainadmins.ErrPasswordRequired, "Password is required"},
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := requestutil.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	body := map[string]string{"message": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeServiceError maps service and upload errors onto status codes. Unknown
// errors are logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if ve, ok := domaingames.AsValidationError(err); ok {
		writeError(w, r, http.StatusBadRequest, ve.Error(), logger)
		return
	}
	for _, br := range badRequests {
		if errors.Is(err, br.err) {
			writeError(w, r, http.StatusBadRequest, br.msg, logger)
			return
		}
	}
	switch {
	case errors.Is(err, domaingames.ErrNotFound):
		writeError(w, r, http.StatusNotFound, msgGameNotFound, logger)
	case errors.Is(err, domainadmins.ErrUnauthorized):
		writeError(w, r, http.StatusUnauthorized, msgInvalidCreds, logger)
	default:
		logging.Error(logger, "request failed", err, slog.String(logging.FieldPath, r.URL.Path))
		writeError(w, r, http.StatusInternalServerError, msgInternal, logger)
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
