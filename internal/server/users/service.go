// Package users реализует операции над учетными записями и единую
// проверку прав администратора, которой пользуются все закрытые операции.
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/leeroy/internal/models"
	"github.com/iudanet/leeroy/internal/server/storage"
)

// Ошибки уровня бизнес-логики
var (
	// ErrNotAdmin — запрашивающий не обладает правами администратора
	ErrNotAdmin = errors.New("requester is not an administrator")

	// ErrAdminUndeletable — администратора нельзя удалить
	ErrAdminUndeletable = errors.New("administrator can not be deleted")

	// ErrLastAdmin — нельзя снять права с последнего администратора
	ErrLastAdmin = errors.New("the last administrator can not be demoted")
)

// Service реализует операции над пользователями
type Service struct {
	logger *slog.Logger
	users  storage.UserStorage
}

// NewService создает сервис пользователей
func NewService(logger *slog.Logger, users storage.UserStorage) *Service {
	return &Service{
		logger: logger,
		users:  users,
	}
}

// CreateParams — данные для регистрации нового пользователя
type CreateParams struct {
	Email      string
	Firstname  string
	Middlename string
	Surname    string
	Password   string
	IsAdmin    bool
}

// RequireAdmin проверяет, что пользователь существует и является
// администратором. Единая точка проверки прав для всех закрытых операций.
func (s *Service) RequireAdmin(ctx context.Context, userID string) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// Владелец токена успел исчезнуть из БД — прав у него нет
			return ErrNotAdmin
		}
		return fmt.Errorf("failed to get requester: %w", err)
	}

	if !user.IsAdmin {
		return ErrNotAdmin
	}

	return nil
}

// Create регистрирует нового пользователя. Доступно только администраторам.
// Возвращает storage.ErrEmailTaken, если email уже занят; запись при этом
// не создается.
func (s *Service) Create(ctx context.Context, requesterID string, params CreateParams) (string, error) {
	if err := s.RequireAdmin(ctx, requesterID); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:             uuid.NewString(),
		Firstname:      params.Firstname,
		Middlename:     params.Middlename,
		Surname:        params.Surname,
		Email:          params.Email,
		HashedPassword: string(hash),
		IsAdmin:        params.IsAdmin,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "user created",
		slog.String("user_id", user.ID),
		slog.Bool("is_admin", user.IsAdmin))

	return user.ID, nil
}

// Get возвращает данные пользователя. Свои данные доступны каждому,
// чужие — только администраторам.
func (s *Service) Get(ctx context.Context, requesterID, userID string) (*models.User, error) {
	if requesterID != userID {
		if err := s.RequireAdmin(ctx, requesterID); err != nil {
			return nil, err
		}
	}

	return s.users.GetUserByID(ctx, userID)
}

// SetAdmin включает или снимает признак администратора.
// Снять признак с последнего администратора нельзя: возвращается
// ErrLastAdmin, и запись остается без изменений.
func (s *Service) SetAdmin(ctx context.Context, requesterID, userID string, isAdmin bool) error {
	if err := s.RequireAdmin(ctx, requesterID); err != nil {
		return err
	}

	target, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if target.IsAdmin && !isAdmin {
		admins, err := s.users.CountAdmins(ctx)
		if err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}

	if err := s.users.SetAdmin(ctx, userID, isAdmin); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "admin flag updated",
		slog.String("user_id", userID),
		slog.Bool("is_admin", isAdmin))

	return nil
}

// Delete удаляет пользователя. Администраторов удалять нельзя.
// Все записи токенов пользователя (обоих видов, независимо от статуса
// отзыва) удаляются каскадом.
func (s *Service) Delete(ctx context.Context, requesterID, userID string) error {
	if err := s.RequireAdmin(ctx, requesterID); err != nil {
		return err
	}

	target, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if target.IsAdmin {
		return ErrAdminUndeletable
	}

	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "user deleted", slog.String("user_id", userID))

	return nil
}

// BootstrapParams — данные администратора, создаваемого при первом запуске
type BootstrapParams struct {
	Email     string
	Password  string
	Firstname string
	Surname   string
}

// EnsureDefaultAdmin создает администратора по умолчанию, если пользователя
// с таким email еще нет. Вызывается один раз при старте сервера.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, params BootstrapParams) error {
	_, err := s.users.GetUserByEmail(ctx, params.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return fmt.Errorf("failed to check default admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	admin := &models.User{
		ID:             uuid.NewString(),
		Firstname:      params.Firstname,
		Surname:        params.Surname,
		Email:          params.Email,
		HashedPassword: string(hash),
		IsAdmin:        true,
	}

	if err := s.users.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	s.logger.InfoContext(ctx, "default administrator created",
		slog.String("user_id", admin.ID),
		slog.String("email", admin.Email))

	return nil
}
