package models

import "time"

// TokenKind различает access- и refresh-токены в хранилище
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Opposite возвращает вид парного токена
func (k TokenKind) Opposite() TokenKind {
	if k == TokenKindAccess {
		return TokenKindRefresh
	}
	return TokenKindAccess
}

// Token представляет запись о выпущенном токене.
// Подписанная строка токена в БД не хранится: запись ищется по ID из claims,
// а признак отзыва в БД является единственным источником правды.
type Token struct {
	ID        string    `json:"id"`         // UUID токена
	Kind      TokenKind `json:"kind"`       // access или refresh
	UserID    string    `json:"user_id"`    // владелец
	IssuedAt  time.Time `json:"issued_at"`  // время выпуска (UTC)
	ExpiredAt time.Time `json:"expired_at"` // время истечения (UTC)
	PairID    string    `json:"pair_id"`    // ID парного токена противоположного вида
	Revoked   bool      `json:"revoked"`    // признак отзыва
}
