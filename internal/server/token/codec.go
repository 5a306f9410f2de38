// Package token реализует кодек авторизационных токенов: выпуск, проверку
// подписи и разбор claims. Подпись симметричная (HMAC-SHA256), секрет один
// на весь процесс и передается кодеку при создании.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrBadSignature indicates the token signature failed cryptographic verification
	ErrBadSignature = errors.New("token has incorrect signature")

	// ErrMalformed indicates any other structural decode failure
	ErrMalformed = errors.New("token is malformed or has incorrect format")
)

// Claims представляет полезную нагрузку подписанного токена.
// Времена передаются строками в формате RFC 3339 (UTC), как их выпускает Issue.
// Запись в БД, а не claims, является источником правды о статусе отзыва.
type Claims struct {
	ID        string `json:"id"`         // UUID токена
	UserID    string `json:"user_id"`    // владелец токена
	IssuedAt  string `json:"issued_at"`  // время выпуска
	ExpiredAt string `json:"expired_at"` // время истечения
}

// Стандартная валидация jwt (exp/iat/nbf) не используется: истечение
// проверяется ядром авторизации по claim expired_at.
func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) { return nil, nil }
func (c Claims) GetIssuedAt() (*jwt.NumericDate, error)       { return nil, nil }
func (c Claims) GetNotBefore() (*jwt.NumericDate, error)      { return nil, nil }
func (c Claims) GetIssuer() (string, error)                   { return "", nil }
func (c Claims) GetSubject() (string, error)                  { return c.UserID, nil }
func (c Claims) GetAudience() (jwt.ClaimStrings, error)       { return nil, nil }

// ExpiredTime разбирает claim expired_at
func (c Claims) ExpiredTime() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, c.ExpiredAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse expired_at: %w", err)
	}
	return t, nil
}

// IssuedTime разбирает claim issued_at
func (c Claims) IssuedTime() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, c.IssuedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse issued_at: %w", err)
	}
	return t, nil
}

// Issued описывает результат выпуска одного токена
type Issued struct {
	ID           string    // UUID токена
	SignedString string    // подписанная строка для клиента
	IssuedAt     time.Time // время выпуска (UTC)
	ExpiredAt    time.Time // время истечения (UTC)
}

// Codec подписывает и проверяет токены одним общим секретом
type Codec struct {
	secret []byte
}

// New creates a new token codec with the given process-wide secret
func New(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Issue выпускает новый подписанный токен для пользователя userID.
// issuedAt фиксируется на момент вызова, expiredAt = issuedAt + ttl.
func (c *Codec) Issue(userID string, ttl time.Duration) (*Issued, error) {
	issuedAt := time.Now().UTC()
	expiredAt := issuedAt.Add(ttl)

	claims := Claims{
		ID:        uuid.NewString(),
		UserID:    userID,
		IssuedAt:  issuedAt.Format(time.RFC3339Nano),
		ExpiredAt: expiredAt.Format(time.RFC3339Nano),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Issued{
		ID:           claims.ID,
		SignedString: signed,
		IssuedAt:     issuedAt,
		ExpiredAt:    expiredAt,
	}, nil
}

// IssueAt выпускает токен с заранее зафиксированным временем выпуска.
// Используется ядром авторизации, чтобы оба токена пары имели одно issued_at.
func (c *Codec) IssueAt(userID string, issuedAt time.Time, ttl time.Duration) (*Issued, error) {
	issuedAt = issuedAt.UTC()
	expiredAt := issuedAt.Add(ttl)

	claims := Claims{
		ID:        uuid.NewString(),
		UserID:    userID,
		IssuedAt:  issuedAt.Format(time.RFC3339Nano),
		ExpiredAt: expiredAt.Format(time.RFC3339Nano),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Issued{
		ID:           claims.ID,
		SignedString: signed,
		IssuedAt:     issuedAt,
		ExpiredAt:    expiredAt,
	}, nil
}

// Decode проверяет подпись и разбирает claims.
// Возвращает ErrBadSignature при криптографически неверной подписи
// и ErrMalformed при любой другой ошибке разбора.
func (c *Codec) Decode(signed string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (interface{}, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, fmt.Errorf("%w: %w", ErrBadSignature, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return claims, nil
}

// DecodeUnverified разбирает claims без проверки подписи.
// Применяется только для извлечения subject'а в диагностических целях,
// для решений о доверии не используется.
func (c *Codec) DecodeUnverified(signed string) (*Claims, error) {
	claims := &Claims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(signed, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return claims, nil
}

// Expired сообщает, истек ли токен на текущий момент.
// Сравнение строгое: токен, истекающий ровно сейчас, еще действителен.
func (c *Codec) Expired(claims *Claims) (bool, error) {
	expiredAt, err := claims.ExpiredTime()
	if err != nil {
		return false, err
	}
	return time.Now().UTC().After(expiredAt), nil
}
