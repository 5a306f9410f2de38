package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/leeroy/internal/server/auth"
	"github.com/iudanet/leeroy/pkg/api"
)

// AccessTokenHeader — заголовок, в котором клиенты передают access-токен
const AccessTokenHeader = "Access-Token"

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой в формате {status, description}
func sendError(logger *slog.Logger, w http.ResponseWriter, status, description string, statusCode int) {
	resp := api.ErrorResponse{
		Status:      status,
		Description: description,
	}
	sendJSON(logger, w, resp, statusCode)
}

// sendRejection отправляет классифицированный отказ ядра авторизации
func sendRejection(logger *slog.Logger, w http.ResponseWriter, rej *auth.Rejection) {
	sendError(logger, w, string(rej.Status), rej.Description, rej.HTTPStatus)
}
