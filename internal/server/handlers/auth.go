package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/leeroy/internal/server/auth"
	"github.com/iudanet/leeroy/pkg/api"
)

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger *slog.Logger
	auth   *auth.Service
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		auth:   authService,
	}
}

// Authorize обрабатывает POST /authorize
// Авторизация пользователя по email и паролю, в ответе — пара токенов.
// Не находится в авторизованной зоне.
func (h *AuthHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode authorize request", slog.Any("error", err))
		sendError(h.logger, w, "BAD_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		sendError(h.logger, w, "BAD_REQUEST", "email and password are required", http.StatusBadRequest)
		return
	}

	userID, rej := h.auth.Authenticate(ctx, req.Email, req.Password)
	if rej != nil {
		h.logger.WarnContext(ctx, "authorization failed", slog.String("status", string(rej.Status)))
		sendRejection(h.logger, w, rej)
		return
	}

	accessToken, refreshToken, err := h.auth.IssueTokenPair(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token pair", slog.Any("error", err))
		sendError(h.logger, w, "INTERNAL_SERVER_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user authorized", slog.String("user_id", userID))

	resp := api.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Refresh обрабатывает POST /refresh
// Ротация пары токенов по действующему refresh-токену.
// Не находится в авторизованной зоне.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode refresh request", slog.Any("error", err))
		sendError(h.logger, w, "BAD_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	accessToken, refreshToken, rej := h.auth.Refresh(ctx, req.RefreshToken)
	if rej != nil {
		h.logger.WarnContext(ctx, "refresh failed", slog.String("status", string(rej.Status)))
		sendRejection(h.logger, w, rej)
		return
	}

	resp := api.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Logout обрабатывает DELETE /logout
// Инвалидация пары токенов по предъявленному access-токену.
// Для логаута принимается любой корректно подписанный access-токен,
// в том числе истекший, поэтому маршрут не закрыт auth middleware.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accessToken := r.Header.Get(AccessTokenHeader)

	if rej := h.auth.Logout(ctx, accessToken); rej != nil {
		h.logger.WarnContext(ctx, "logout failed", slog.String("status", string(rej.Status)))
		sendRejection(h.logger, w, rej)
		return
	}

	resp := api.LogoutResponse{Status: "Logout is completed"}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
