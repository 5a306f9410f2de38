// Package auth реализует ядро авторизации: выпуск парных токенов, проверку
// access-токена, ротацию пары по refresh-токену и логаут.
//
// Каждая пара access/refresh выпускается в одной транзакции со взаимными
// ссылками pair_id и отзывается только целиком. Статус отзыва хранится в БД
// и является единственным источником правды: подписанная строка токена — лишь
// ссылка на запись.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/leeroy/internal/models"
	"github.com/iudanet/leeroy/internal/server/storage"
	"github.com/iudanet/leeroy/internal/server/token"
)

// Identity — результат успешной проверки access-токена
type Identity struct {
	UserID  string // владелец токена
	TokenID string // ID access-токена
}

// Service реализует ядро авторизации
type Service struct {
	logger     *slog.Logger
	codec      *token.Codec
	tokens     storage.TokenStorage
	users      storage.UserStorage
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewService создает ядро авторизации
func NewService(
	logger *slog.Logger,
	codec *token.Codec,
	tokens storage.TokenStorage,
	users storage.UserStorage,
	accessTTL, refreshTTL time.Duration,
) *Service {
	return &Service{
		logger:     logger,
		codec:      codec,
		tokens:     tokens,
		users:      users,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Authenticate проверяет пару email/пароль и возвращает ID пользователя.
// Оба случая — неизвестный email и неверный пароль — дают один и тот же отказ.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, *Rejection) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", rejectUnauthorized(email)
		}
		s.logger.ErrorContext(ctx, "failed to get user by email", slog.Any("error", err))
		return "", rejectInternal(fmt.Sprintf("Unhandled authorization exception. %v", err))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", rejectUnauthorized(email)
	}

	return user.ID, nil
}

// IssueTokenPair выпускает новую пару access/refresh токенов для пользователя.
// Оба токена получают одно issued_at, независимые TTL и взаимные pair_id;
// обе записи сохраняются в одной транзакции.
func (s *Service) IssueTokenPair(ctx context.Context, userID string) (accessToken, refreshToken string, err error) {
	issuedAt := time.Now().UTC()

	access, err := s.codec.IssueAt(userID, issuedAt, s.accessTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, err := s.codec.IssueAt(userID, issuedAt, s.refreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue refresh token: %w", err)
	}

	accessRecord := &models.Token{
		ID:        access.ID,
		Kind:      models.TokenKindAccess,
		UserID:    userID,
		IssuedAt:  access.IssuedAt,
		ExpiredAt: access.ExpiredAt,
		PairID:    refresh.ID,
	}
	refreshRecord := &models.Token{
		ID:        refresh.ID,
		Kind:      models.TokenKindRefresh,
		UserID:    userID,
		IssuedAt:  refresh.IssuedAt,
		ExpiredAt: refresh.ExpiredAt,
		PairID:    access.ID,
	}

	if err := s.tokens.SaveTokenPair(ctx, accessRecord, refreshRecord); err != nil {
		return "", "", fmt.Errorf("failed to save token pair: %w", err)
	}

	s.logger.InfoContext(ctx, "token pair issued",
		slog.String("user_id", userID),
		slog.String("access_token_id", access.ID),
		slog.String("refresh_token_id", refresh.ID))

	return access.SignedString, refresh.SignedString, nil
}

// ValidateAccessToken выполняет полную проверку access-токена.
//
// Порядок проверок фиксирован и обрывается на первом отказе: наличие токена,
// подпись, запись в БД, признак отзыва, истечение. Дешевые структурные
// проверки идут до обращения к хранилищу, проверка отзыва — до проверки
// истечения, чтобы отозванный, но не истекший токен давал отказ REVOKED.
func (s *Service) ValidateAccessToken(ctx context.Context, signed string) (*Identity, *Rejection) {
	// 1. Токен вообще передан?
	if signed == "" {
		return nil, rejectNotProvided(labelAccess)
	}

	// 2. Подпись и структура
	claims, err := s.codec.Decode(signed)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrBadSignature):
			return nil, rejectBadSignature(labelAccess)
		default:
			return nil, rejectMalformed(labelAccess)
		}
	}

	// 3. Запись в БД
	record, err := s.tokens.GetToken(ctx, models.TokenKindAccess, claims.ID)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return nil, rejectNotFound(labelAccess)
		}
		s.logger.ErrorContext(ctx, "failed to get access token record", slog.Any("error", err))
		return nil, rejectInternal(fmt.Sprintf("Unhandled token processing exception. %v", err))
	}

	// 4. Признак отзыва
	if record.Revoked {
		return nil, rejectRevoked(labelAccess)
	}

	// 5. Истечение — по expired_at из подписанного payload, не по записи в БД
	expired, err := s.codec.Expired(claims)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to check token expiration", slog.Any("error", err))
		return nil, rejectInternal(fmt.Sprintf("Unhandled token processing exception. %v", err))
	}
	if expired {
		return nil, rejectExpired(labelAccess)
	}

	return &Identity{UserID: claims.UserID, TokenID: claims.ID}, nil
}

// Refresh ротирует пару токенов по действующему refresh-токену.
//
// Политика rotate-on-use: refresh-токен одноразовый. Предъявленная пара
// отзывается условным обновлением (уже отозванный токен дает отказ REVOKED,
// поэтому из двух гонящихся ротаций выигрывает ровно одна), отзыв обоих
// токенов перечитывается из БД и только после подтверждения выпускается
// новая пара для того же владельца.
func (s *Service) Refresh(ctx context.Context, signed string) (accessToken, refreshToken string, rej *Rejection) {
	if signed == "" {
		return "", "", rejectNotProvided(labelRefresh)
	}

	// Автономные проверки (без обращения к БД)
	claims, err := s.codec.Decode(signed)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrBadSignature):
			return "", "", rejectBadSignature(labelRefresh)
		default:
			return "", "", rejectMalformed(labelRefresh)
		}
	}

	expired, err := s.codec.Expired(claims)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to check refresh token expiration", slog.Any("error", err))
		return "", "", rejectInternal(fmt.Sprintf("Unhandled token refreshing exception. %v", err))
	}
	if expired {
		return "", "", rejectExpired(labelRefresh)
	}

	// Проверки по данным хранилища
	record, err := s.tokens.GetToken(ctx, models.TokenKindRefresh, claims.ID)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return "", "", rejectNotFound(labelRefresh)
		}
		s.logger.ErrorContext(ctx, "failed to get refresh token record", slog.Any("error", err))
		return "", "", rejectInternal(fmt.Sprintf("Unhandled token refreshing exception. %v", err))
	}

	if record.Revoked {
		return "", "", rejectRevoked(labelRefresh)
	}

	// Отзыв предъявленной пары. Проигравшая гонку ротация получает
	// ErrTokenRevoked и уходит с отказом REVOKED, не выпуская токенов.
	if err := s.tokens.RevokePair(ctx, models.TokenKindRefresh, claims.ID); err != nil {
		if errors.Is(err, storage.ErrTokenRevoked) {
			return "", "", rejectRevoked(labelRefresh)
		}
		s.logger.ErrorContext(ctx, "failed to revoke token pair", slog.Any("error", err))
		return "", "", rejectInternal(fmt.Sprintf("Unhandled token refreshing exception. %v", err))
	}

	// Перечитываем обе записи и убеждаемся, что отзыв состоялся.
	// Новая пара не выпускается поверх частично отозванной.
	refreshRevoked, accessRevoked, err := s.confirmPairRevoked(ctx, models.TokenKindRefresh, claims.ID, record.PairID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to confirm pair revocation", slog.Any("error", err))
		return "", "", rejectInternal(fmt.Sprintf("Unhandled token refreshing exception. %v", err))
	}
	if !refreshRevoked || !accessRevoked {
		s.logger.ErrorContext(ctx, "token pair is not fully revoked after revocation",
			slog.Bool("access_revoked", accessRevoked),
			slog.Bool("refresh_revoked", refreshRevoked))
		return "", "", rejectInternal(fmt.Sprintf(
			"Unknown token refreshing exception. Access-Token revoked: %t, Refresh-Token revoked: %t.",
			accessRevoked, refreshRevoked))
	}

	newAccess, newRefresh, err := s.IssueTokenPair(ctx, record.UserID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to issue new token pair", slog.Any("error", err))
		return "", "", rejectInternal(fmt.Sprintf("Unhandled token refreshing exception. %v", err))
	}

	return newAccess, newRefresh, nil
}

// Logout отзывает пару по предъявленному access-токену.
//
// Полная валидация не выполняется: для логаута принимается любой корректно
// подписанный access-токен, в том числе уже истекший или отозванный
// (повторный логаут идемпотентен). После отзыва статус обоих токенов
// перечитывается из БД; неподтвержденный отзыв — внутренняя ошибка.
func (s *Service) Logout(ctx context.Context, signed string) *Rejection {
	if signed == "" {
		return rejectNotProvided(labelAccess)
	}

	claims, err := s.codec.Decode(signed)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrBadSignature):
			return rejectBadSignature(labelAccess)
		default:
			return rejectMalformed(labelAccess)
		}
	}

	record, err := s.tokens.GetToken(ctx, models.TokenKindAccess, claims.ID)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return rejectNotFound(labelAccess)
		}
		s.logger.ErrorContext(ctx, "failed to get access token record", slog.Any("error", err))
		return rejectInternal(fmt.Sprintf("Unhandled token revoking exception. %v", err))
	}

	err = s.tokens.RevokePair(ctx, models.TokenKindAccess, claims.ID)
	if err != nil && !errors.Is(err, storage.ErrTokenRevoked) {
		s.logger.ErrorContext(ctx, "failed to revoke token pair", slog.Any("error", err))
		return rejectInternal(fmt.Sprintf("Unhandled token revoking exception. %v", err))
	}

	accessRevoked, refreshRevoked, err := s.confirmPairRevoked(ctx, models.TokenKindAccess, claims.ID, record.PairID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to confirm pair revocation", slog.Any("error", err))
		return rejectInternal(fmt.Sprintf("Unhandled token revoking exception. %v", err))
	}
	if !accessRevoked || !refreshRevoked {
		s.logger.ErrorContext(ctx, "token pair is not fully revoked after logout",
			slog.Bool("access_revoked", accessRevoked),
			slog.Bool("refresh_revoked", refreshRevoked))
		return rejectInternal(fmt.Sprintf(
			"Unknown token revoking exception. Access-Token revoked: %t, Refresh-Token revoked: %t.",
			accessRevoked, refreshRevoked))
	}

	s.logger.InfoContext(ctx, "user logged out",
		slog.String("user_id", claims.UserID),
		slog.String("access_token_id", claims.ID))

	return nil
}

// confirmPairRevoked перечитывает обе записи пары и возвращает их признаки
// отзыва: сначала для токена вида kind с идентификатором id, затем для его
// парного токена pairID.
func (s *Service) confirmPairRevoked(
	ctx context.Context,
	kind models.TokenKind,
	id, pairID string,
) (presented, paired bool, err error) {
	presentedRecord, err := s.tokens.GetToken(ctx, kind, id)
	if err != nil {
		return false, false, fmt.Errorf("failed to reread %s token: %w", kind, err)
	}

	pairedRecord, err := s.tokens.GetToken(ctx, kind.Opposite(), pairID)
	if err != nil {
		return false, false, fmt.Errorf("failed to reread %s token: %w", kind.Opposite(), err)
	}

	return presentedRecord.Revoked, pairedRecord.Revoked, nil
}
