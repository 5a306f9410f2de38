package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/iudanet/leeroy/internal/server/storage"
	"github.com/iudanet/leeroy/internal/server/users"
	"github.com/iudanet/leeroy/internal/validation"
	"github.com/iudanet/leeroy/pkg/api"
)

// UsersHandler обрабатывает запросы управления пользователями
type UsersHandler struct {
	logger *slog.Logger
	users  *users.Service
}

// NewUsersHandler создает новый handler для пользователей
func NewUsersHandler(logger *slog.Logger, usersService *users.Service) *UsersHandler {
	return &UsersHandler{
		logger: logger,
		users:  usersService,
	}
}

// Create обрабатывает POST /users
// Регистрация нового пользователя. Только для администраторов.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requesterID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "INTERNAL_SERVER_ERROR", "requester is not resolved", http.StatusInternalServerError)
		return
	}

	var req api.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode create user request", slog.Any("error", err))
		sendError(h.logger, w, "BAD_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validateCreateRequest(req); err != nil {
		h.logger.WarnContext(ctx, "invalid create user request", slog.Any("error", err))
		sendError(h.logger, w, "BAD_REQUEST", err.Error(), http.StatusBadRequest)
		return
	}

	userID, err := h.users.Create(ctx, requesterID, users.CreateParams{
		Email:      req.Email,
		Firstname:  req.Firstname,
		Middlename: req.Middlename,
		Surname:    req.Surname,
		Password:   req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotAdmin):
			sendError(h.logger, w, "FORBIDDEN", "Only administrators can create new users", http.StatusForbidden)
		case errors.Is(err, storage.ErrEmailTaken):
			sendError(h.logger, w, "EMAIL_IS_NOT_AVAILABLE",
				fmt.Sprintf("Email %s is not available for registration", req.Email), http.StatusConflict)
		default:
			h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
			sendError(h.logger, w, "INTERNAL_SERVER_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	resp := api.CreateUserResponse{
		Status: "User successfully created",
		UserID: userID,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Get обрабатывает GET /users/{user_id}
// Свои данные доступны каждому, чужие — только администраторам.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requesterID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "INTERNAL_SERVER_ERROR", "requester is not resolved", http.StatusInternalServerError)
		return
	}

	userID := r.PathValue("user_id")

	user, err := h.users.Get(ctx, requesterID, userID)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotAdmin):
			sendError(h.logger, w, "FORBIDDEN",
				"Only administrators can find information about another users", http.StatusForbidden)
		case errors.Is(err, storage.ErrUserNotFound):
			sendError(h.logger, w, "NOT_FOUND",
				fmt.Sprintf("User with id %s is not found", userID), http.StatusNotFound)
		default:
			h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
			sendError(h.logger, w, "INTERNAL_SERVER_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	resp := api.UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Firstname:  user.Firstname,
		Middlename: user.Middlename,
		Surname:    user.Surname,
		IsAdmin:    user.IsAdmin,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Update обрабатывает PATCH /users/{user_id}
// Изменение признака администратора. Только для администраторов.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requesterID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "INTERNAL_SERVER_ERROR", "requester is not resolved", http.StatusInternalServerError)
		return
	}

	userID := r.PathValue("user_id")

	var req api.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode update user request", slog.Any("error", err))
		sendError(h.logger, w, "BAD_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.users.SetAdmin(ctx, requesterID, userID, req.IsAdmin); err != nil {
		switch {
		case errors.Is(err, users.ErrNotAdmin):
			sendError(h.logger, w, "FORBIDDEN",
				"Only administrators can change user permissions", http.StatusForbidden)
		case errors.Is(err, users.ErrLastAdmin):
			sendError(h.logger, w, "LAST_ADMINISTRATOR",
				"The last administrator can not be demoted", http.StatusConflict)
		case errors.Is(err, storage.ErrUserNotFound):
			sendError(h.logger, w, "NOT_FOUND",
				fmt.Sprintf("User with id %s is not found", userID), http.StatusNotFound)
		default:
			h.logger.ErrorContext(ctx, "failed to update user", slog.Any("error", err))
			sendError(h.logger, w, "INTERNAL_SERVER_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	sendJSON(h.logger, w, api.StatusResponse{Status: "User successfully updated"}, http.StatusOK)
}

// Delete обрабатывает DELETE /users/{user_id}
// Удаление пользователя. Только для администраторов; администраторов
// удалять нельзя. Токены удаляемого пользователя удаляются каскадом.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requesterID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "INTERNAL_SERVER_ERROR", "requester is not resolved", http.StatusInternalServerError)
		return
	}

	userID := r.PathValue("user_id")

	if err := h.users.Delete(ctx, requesterID, userID); err != nil {
		switch {
		case errors.Is(err, users.ErrNotAdmin):
			sendError(h.logger, w, "FORBIDDEN", "Only administrators can delete users", http.StatusForbidden)
		case errors.Is(err, users.ErrAdminUndeletable):
			sendError(h.logger, w, "FORBIDDEN", "Administrator can not be deleted", http.StatusForbidden)
		case errors.Is(err, storage.ErrUserNotFound):
			sendError(h.logger, w, "NOT_FOUND",
				fmt.Sprintf("User with id %s is not found", userID), http.StatusNotFound)
		default:
			h.logger.ErrorContext(ctx, "failed to delete user", slog.Any("error", err))
			sendError(h.logger, w, "INTERNAL_SERVER_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	sendJSON(h.logger, w, api.StatusResponse{Status: "User successfully deleted"}, http.StatusOK)
}

// validateCreateRequest проверяет поля запроса регистрации
func (h *UsersHandler) validateCreateRequest(req api.CreateUserRequest) error {
	if err := validation.ValidateEmail(req.Email); err != nil {
		return err
	}
	if err := validation.ValidateName("firstname", req.Firstname); err != nil {
		return err
	}
	if req.Middlename != "" {
		if err := validation.ValidateName("middlename", req.Middlename); err != nil {
			return err
		}
	}
	if err := validation.ValidateName("surname", req.Surname); err != nil {
		return err
	}
	return validation.ValidatePassword(req.Password)
}
