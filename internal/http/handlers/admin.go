package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	domainadmins "github.com/preston-bernstein/game-library-service/internal/domain/admins"
	"github.com/preston-bernstein/game-library-service/internal/http/requestutil"
	"github.com/preston-bernstein/game-library-service/internal/logging"
)

const maxLoginBody = 4 << 10

// AdminService checks the admin credential.
type AdminService interface {
	Login(ctx context.Context, password string) (bool, error)
}

// AdminHandler exposes the admin login endpoint.
type AdminHandler struct {
	svc    AdminService
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(svc AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, logger: logger}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login compares the posted password with the stored admin hash.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)

	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLoginBody)).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, msgInvalidBody, logger)
		return
	}
	if req.Password == "" {
		writeServiceError(w, r, domainadmins.ErrPasswordRequired, logger)
		return
	}

	ok, err := h.svc.Login(r.Context(), req.Password)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	if !ok {
		logging.Warn(logger, "admin login rejected",
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeServiceError(w, r, domainadmins.ErrUnauthorized, logger)
		return
	}
	logging.Info(logger, "admin login succeeded")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}
