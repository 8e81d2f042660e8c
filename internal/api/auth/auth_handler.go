package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/horus-ai/internal/api"
)

type AuthHandler struct {
	authService AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login godoc
// @Summary      Issue an admin token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body LoginRequest true "Admin credentials"
// @Success      200 {object} TokenResponse
// @Failure      400 {object} map[string]interface{}
// @Failure      401 {object} map[string]interface{}
// @Router       /auth/token [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Login"))

	var req LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.ValidateStruct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		api.WriteJSONResponse(w, r, http.StatusOK, token)
	case errors.Is(err, ErrInvalidCredentials):
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, ErrAdminDisabled):
		api.ErrorResponse(w, r, http.StatusServiceUnavailable, "Admin login is not configured")
	default:
		l.ErrorContext(r.Context(), "Failed to issue token", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to issue token")
	}
}
