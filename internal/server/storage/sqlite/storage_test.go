package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/leeroy/internal/models"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	// Используем in-memory database для тестов
	storage, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = storage.Close()
	}

	return storage, cleanup
}

// createTestUser создает пользователя, на которого можно вешать токены
func createTestUser(t *testing.T, s *Storage, email string) *models.User {
	t.Helper()

	user := &models.User{
		ID:             uuid.New().String(),
		Firstname:      "Test",
		Surname:        "User",
		Email:          email,
		HashedPassword: "hashed-password",
	}
	require.NoError(t, s.CreateUser(context.Background(), user))

	return user
}

// createTestPair создает и сохраняет пару токенов для пользователя
func createTestPair(t *testing.T, s *Storage, userID string) (access, refresh *models.Token) {
	t.Helper()

	issuedAt := time.Now().UTC()

	access = &models.Token{
		ID:        uuid.New().String(),
		Kind:      models.TokenKindAccess,
		UserID:    userID,
		IssuedAt:  issuedAt,
		ExpiredAt: issuedAt.Add(time.Hour),
	}
	refresh = &models.Token{
		ID:        uuid.New().String(),
		Kind:      models.TokenKindRefresh,
		UserID:    userID,
		IssuedAt:  issuedAt,
		ExpiredAt: issuedAt.Add(30 * 24 * time.Hour),
	}
	access.PairID = refresh.ID
	refresh.PairID = access.ID

	require.NoError(t, s.SaveTokenPair(context.Background(), access, refresh))

	return access, refresh
}
