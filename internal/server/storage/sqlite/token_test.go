package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/leeroy/internal/models"
	"github.com/iudanet/leeroy/internal/server/storage"
)

func TestTokenStorage_SaveTokenPair(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, s, "pair@example.com")
	access, refresh := createTestPair(t, s, user.ID)

	// Обе записи читаются обратно со взаимными pair_id
	gotAccess, err := s.GetToken(ctx, models.TokenKindAccess, access.ID)
	require.NoError(t, err)
	assert.Equal(t, refresh.ID, gotAccess.PairID)
	assert.Equal(t, user.ID, gotAccess.UserID)
	assert.False(t, gotAccess.Revoked)

	gotRefresh, err := s.GetToken(ctx, models.TokenKindRefresh, refresh.ID)
	require.NoError(t, err)
	assert.Equal(t, access.ID, gotRefresh.PairID)
	assert.False(t, gotRefresh.Revoked)
}

func TestTokenStorage_SaveTokenPair_Atomic(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, s, "atomic@example.com")
	access, _ := createTestPair(t, s, user.ID)

	// Вторая пара с тем же access ID нарушает первичный ключ:
	// не должна сохраниться ни одна запись новой пары
	issuedAt := time.Now().UTC()
	dupAccess := &models.Token{
		ID:        access.ID, // конфликт
		Kind:      models.TokenKindAccess,
		UserID:    user.ID,
		IssuedAt:  issuedAt,
		ExpiredAt: issuedAt.Add(time.Hour),
	}
	newRefresh := &models.Token{
		ID:        uuid.New().String(),
		Kind:      models.TokenKindRefresh,
		UserID:    user.ID,
		IssuedAt:  issuedAt,
		ExpiredAt: issuedAt.Add(time.Hour),
	}
	dupAccess.PairID = newRefresh.ID
	newRefresh.PairID = dupAccess.ID

	err := s.SaveTokenPair(ctx, dupAccess, newRefresh)
	require.Error(t, err)

	// Refresh из неудавшейся пары не должен существовать
	_, err = s.GetToken(ctx, models.TokenKindRefresh, newRefresh.ID)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestTokenStorage_GetToken(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, s, "get@example.com")
	access, refresh := createTestPair(t, s, user.ID)

	tests := []struct {
		wantError error
		name      string
		kind      models.TokenKind
		id        string
	}{
		{
			name: "get existing access token",
			kind: models.TokenKindAccess,
			id:   access.ID,
		},
		{
			name: "get existing refresh token",
			kind: models.TokenKindRefresh,
			id:   refresh.ID,
		},
		{
			name:      "unknown id",
			kind:      models.TokenKindAccess,
			id:        uuid.New().String(),
			wantError: storage.ErrTokenNotFound,
		},
		{
			name:      "wrong kind for existing id",
			kind:      models.TokenKindRefresh,
			id:        access.ID,
			wantError: storage.ErrTokenNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.GetToken(ctx, tt.kind, tt.id)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.id, got.ID)
				assert.Equal(t, tt.kind, got.Kind)
			}
		})
	}
}

func TestTokenStorage_RevokePair(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, s, "revoke@example.com")
	access, refresh := createTestPair(t, s, user.ID)

	// Отзыв по refresh-токену отзывает оба токена пары
	err := s.RevokePair(ctx, models.TokenKindRefresh, refresh.ID)
	require.NoError(t, err)

	gotRefresh, err := s.GetToken(ctx, models.TokenKindRefresh, refresh.ID)
	require.NoError(t, err)
	assert.True(t, gotRefresh.Revoked)

	gotAccess, err := s.GetToken(ctx, models.TokenKindAccess, access.ID)
	require.NoError(t, err)
	assert.True(t, gotAccess.Revoked)
}

func TestTokenStorage_RevokePair_AlreadyRevoked(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, s, "cas@example.com")
	_, refresh := createTestPair(t, s, user.ID)

	// Первый отзыв выигрывает
	require.NoError(t, s.RevokePair(ctx, models.TokenKindRefresh, refresh.ID))

	// Повторный отзыв того же токена проигрывает условное обновление
	err := s.RevokePair(ctx, models.TokenKindRefresh, refresh.ID)
	assert.ErrorIs(t, err, storage.ErrTokenRevoked)
}

func TestTokenStorage_RevokePair_PartnerAlreadyRevoked(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, s, "partner@example.com")
	access, refresh := createTestPair(t, s, user.ID)

	// Пара отозвана через access-токен (логаут)
	require.NoError(t, s.RevokePair(ctx, models.TokenKindAccess, access.ID))

	// Попытка ротации по refresh-токену той же пары получает отказ
	err := s.RevokePair(ctx, models.TokenKindRefresh, refresh.ID)
	assert.ErrorIs(t, err, storage.ErrTokenRevoked)
}

func TestTokenStorage_RevokePair_NotFound(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	err := s.RevokePair(ctx, models.TokenKindAccess, uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestTokenStorage_DeleteUserTokens(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, s, "cleanupuser@example.com")
	other := createTestUser(t, s, "otheruser@example.com")

	// Две пары у первого пользователя (одна отозвана), одна у второго
	_, refresh1 := createTestPair(t, s, user.ID)
	createTestPair(t, s, user.ID)
	otherAccess, _ := createTestPair(t, s, other.ID)

	require.NoError(t, s.RevokePair(ctx, models.TokenKindRefresh, refresh1.ID))

	deleted, err := s.DeleteUserTokens(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, deleted)

	// Токены второго пользователя не тронуты
	got, err := s.GetToken(ctx, models.TokenKindAccess, otherAccess.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, got.UserID)
}

func TestTokenStorage_CascadeOnUserDelete(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, s, "cascade@example.com")
	access, refresh := createTestPair(t, s, user.ID)

	require.NoError(t, s.DeleteUser(ctx, user.ID))

	_, err := s.GetToken(ctx, models.TokenKindAccess, access.ID)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)

	_, err = s.GetToken(ctx, models.TokenKindRefresh, refresh.ID)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

func TestTokenStorage_TimestampsSurviveRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, s, "times@example.com")
	access, _ := createTestPair(t, s, user.ID)

	got, err := s.GetToken(ctx, models.TokenKindAccess, access.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, access.IssuedAt, got.IssuedAt, time.Second)
	assert.WithinDuration(t, access.ExpiredAt, got.ExpiredAt, time.Second)
}
