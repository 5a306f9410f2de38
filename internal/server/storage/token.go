package storage

import (
	"context"

	"github.com/iudanet/leeroy/internal/models"
)

// TokenStorage defines interface for token pair persistence.
// Access- and refresh-токены хранятся записями одинаковой формы и всегда
// создаются и отзываются парой.
type TokenStorage interface {
	// SaveTokenPair inserts both records of a freshly issued pair in one
	// transaction. Either both records persist or neither does.
	SaveTokenPair(ctx context.Context, access, refresh *models.Token) error

	// GetToken retrieves a token record by kind and id
	// Returns ErrTokenNotFound if the record doesn't exist
	GetToken(ctx context.Context, kind models.TokenKind, id string) (*models.Token, error)

	// RevokePair marks the record (kind, id) and its paired record revoked
	// in one transaction. The presented record is flipped conditionally:
	// if it is already revoked, ErrTokenRevoked is returned and nothing
	// changes. Returns ErrTokenNotFound if the record doesn't exist.
	// This is the only entry point that performs revocation.
	RevokePair(ctx context.Context, kind models.TokenKind, id string) error

	// DeleteUserTokens deletes all token records of a user, both kinds,
	// regardless of revoked state. Returns number of deleted records.
	DeleteUserTokens(ctx context.Context, userID string) (int, error)
}
