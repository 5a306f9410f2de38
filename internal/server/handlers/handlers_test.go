package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/leeroy/internal/server/auth"
	"github.com/iudanet/leeroy/internal/server/books"
	"github.com/iudanet/leeroy/internal/server/storage/sqlite"
	"github.com/iudanet/leeroy/internal/server/token"
	"github.com/iudanet/leeroy/internal/server/users"
	"github.com/iudanet/leeroy/pkg/api"
)

// testEnv — полный стек сервера поверх in-memory БД
type testEnv struct {
	auth    *AuthHandler
	users   *UsersHandler
	books   *BooksHandler
	authSvc *auth.Service
	adminID string
}

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "admin-password-1"
)

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	codec := token.New([]byte("handlers-test-secret"))

	usersService := users.NewService(logger, store)
	booksService := books.NewService(logger, store, usersService)
	authService := auth.NewService(logger, codec, store, store, time.Hour, 30*24*time.Hour)

	require.NoError(t, usersService.EnsureDefaultAdmin(ctx, users.BootstrapParams{
		Email:     testAdminEmail,
		Password:  testAdminPassword,
		Firstname: "Admin",
		Surname:   "Adminov",
	}))

	admin, err := store.GetUserByEmail(ctx, testAdminEmail)
	require.NoError(t, err)

	return &testEnv{
		auth:    NewAuthHandler(logger, authService),
		users:   NewUsersHandler(logger, usersService),
		books:   NewBooksHandler(logger, booksService),
		authSvc: authService,
		adminID: admin.ID,
	}
}

// doJSON выполняет запрос handler'ом и разбирает JSON-ответ в out
func doJSON(t *testing.T, handler http.HandlerFunc, req *http.Request, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	handler(rec, req)

	if out != nil {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}

	return rec
}

// decodeBody разбирает тело записанного ответа
func decodeBody(rec *httptest.ResponseRecorder, out interface{}) error {
	return json.NewDecoder(rec.Body).Decode(out)
}

// jsonBody кодирует значение в тело запроса
func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(data)
}

// asUser кладет identity в контекст запроса, как это делает auth middleware
func asUser(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), UserIDKey, userID)
	return req.WithContext(ctx)
}

// authorize выполняет авторизацию и возвращает пару токенов
func (e *testEnv) authorize(t *testing.T, email, password string) api.TokenPairResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/authorize",
		jsonBody(t, api.AuthRequest{Email: email, Password: password}))

	var resp api.TokenPairResponse
	rec := doJSON(t, e.auth.Authorize, req, &resp)
	require.Equal(t, http.StatusOK, rec.Code)

	return resp
}

// createUser регистрирует пользователя от имени администратора
func (e *testEnv) createUser(t *testing.T, email, password string) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/users", jsonBody(t, api.CreateUserRequest{
		Email:     email,
		Firstname: "Test",
		Surname:   "User",
		Password:  password,
	}))
	req = asUser(req, e.adminID)

	var resp api.CreateUserResponse
	rec := doJSON(t, e.users.Create, req, &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, resp.UserID)

	return resp.UserID
}
