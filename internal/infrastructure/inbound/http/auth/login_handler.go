package auth_http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"blog-service/internal/domain/custom_errors"
	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
	"blog-service/internal/infrastructure/inbound/http/httputil"
)

type TokenIssuer interface {
	Issue(principal *model.Principal) (string, time.Time, error)
}

type LoginHandler struct {
	strategy Strategy
	issuer   TokenIssuer
	log      ports.Logger
}

func NewLoginHandler(strategy Strategy, issuer TokenIssuer, log ports.Logger) *LoginHandler {
	return &LoginHandler{strategy: strategy, issuer: issuer, log: log}
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	principal, err := h.strategy.Authenticate(r)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrInvalidInput):
			httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		case errors.Is(err, custom_errors.ErrUnauthenticated):
			httputil.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		default:
			h.log.Error("Login failed", slog.String("error", err.Error()))
			httputil.WriteError(w, http.StatusInternalServerError, "failed to log in")
		}
		return
	}

	token, expiresAt, err := h.issuer.Issue(principal)
	if err != nil {
		h.log.Error("Failed to issue token", slog.Int64("user_id", principal.UserID), slog.String("error", err.Error()))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	h.log.Debug("User logged in", slog.Int64("user_id", principal.UserID))
	httputil.WriteJSON(w, http.StatusCreated, LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}
