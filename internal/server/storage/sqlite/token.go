package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/leeroy/internal/models"
	"github.com/iudanet/leeroy/internal/server/storage"
)

// SaveTokenPair inserts both records of a freshly issued pair in one transaction
func (s *Storage) SaveTokenPair(ctx context.Context, access, refresh *models.Token) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO tokens (id, kind, user_id, issued_at, expired_at, pair_id, revoked)
		VALUES (?, ?, ?, ?, ?, ?, 0)
	`

	for _, t := range []*models.Token{access, refresh} {
		if _, err := tx.ExecContext(ctx, query,
			t.ID,
			t.Kind,
			t.UserID,
			t.IssuedAt,
			t.ExpiredAt,
			t.PairID,
		); err != nil {
			return fmt.Errorf("failed to insert %s token: %w", t.Kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit token pair: %w", err)
	}

	return nil
}

// GetToken retrieves a token record by kind and id
func (s *Storage) GetToken(ctx context.Context, kind models.TokenKind, id string) (*models.Token, error) {
	query := `
		SELECT id, kind, user_id, issued_at, expired_at, pair_id, revoked
		FROM tokens
		WHERE kind = ? AND id = ?
	`

	t := &models.Token{}

	err := s.db.QueryRowContext(ctx, query, kind, id).Scan(
		&t.ID,
		&t.Kind,
		&t.UserID,
		&t.IssuedAt,
		&t.ExpiredAt,
		&t.PairID,
		&t.Revoked,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return t, nil
}

// RevokePair marks the record (kind, id) and its paired record revoked
// in one transaction. The presented record is flipped only if it is not
// revoked yet, so of two concurrent rotations exactly one wins.
func (s *Storage) RevokePair(ctx context.Context, kind models.TokenKind, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Находим парный токен
	var pairID string
	err = tx.QueryRowContext(ctx,
		`SELECT pair_id FROM tokens WHERE kind = ? AND id = ?`, kind, id,
	).Scan(&pairID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrTokenNotFound
		}
		return fmt.Errorf("failed to look up token pair: %w", err)
	}

	// Условный отзыв предъявленного токена: revoked переводится 0 -> 1
	// ровно один раз
	result, err := tx.ExecContext(ctx,
		`UPDATE tokens SET revoked = 1 WHERE kind = ? AND id = ? AND revoked = 0`, kind, id,
	)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrTokenRevoked
	}

	// Парный токен отзывается безусловно
	if _, err := tx.ExecContext(ctx,
		`UPDATE tokens SET revoked = 1 WHERE kind = ? AND id = ?`, kind.Opposite(), pairID,
	); err != nil {
		return fmt.Errorf("failed to revoke paired token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit revocation: %w", err)
	}

	return nil
}

// DeleteUserTokens deletes all token records of a user, both kinds,
// regardless of revoked state
func (s *Storage) DeleteUserTokens(ctx context.Context, userID string) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tokens WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}
