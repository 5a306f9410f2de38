package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/leeroy/internal/server/auth"
	"github.com/iudanet/leeroy/internal/server/handlers"
	"github.com/iudanet/leeroy/pkg/api"
)

// TokenValidator выполняет полную проверку access-токена.
// Реализуется ядром авторизации.
type TokenValidator interface {
	ValidateAccessToken(ctx context.Context, signed string) (*auth.Identity, *auth.Rejection)
}

// AuthMiddleware создает middleware проверки access-токена.
// Токен берется из заголовка Access-Token и проходит полную проверку
// ядра авторизации: подпись, запись в БД, отзыв, истечение. При отказе
// запрос обрывается с JSON {status, description} и кодом отказа;
// при успехе user_id и token_id кладутся в контекст запроса.
func AuthMiddleware(logger *slog.Logger, validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			signed := r.Header.Get(handlers.AccessTokenHeader)

			identity, rej := validator.ValidateAccessToken(ctx, signed)
			if rej != nil {
				logger.WarnContext(ctx, "access token rejected",
					slog.String("status", string(rej.Status)),
					slog.String("path", r.URL.Path))
				writeRejection(logger, w, rej)
				return
			}

			ctx = context.WithValue(ctx, handlers.UserIDKey, identity.UserID)
			ctx = context.WithValue(ctx, handlers.TokenIDKey, identity.TokenID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeRejection отправляет отказ ядра авторизации в формате {status, description}
func writeRejection(logger *slog.Logger, w http.ResponseWriter, rej *auth.Rejection) {
	resp := api.ErrorResponse{
		Status:      string(rej.Status),
		Description: rej.Description,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rej.HTTPStatus)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode rejection response", slog.Any("error", err))
	}
}
