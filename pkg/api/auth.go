package api

// AuthRequest представляет запрос на авторизацию по email и паролю
type AuthRequest struct {
	Email    string `json:"email"`    // email пользователя
	Password string `json:"password"` // пароль пользователя
}

// RefreshRequest представляет запрос на обновление пары токенов
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"` // действующий refresh-токен
}

// TokenPairResponse представляет ответ с парой авторизационных токенов
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`  // подписанный access-токен
	RefreshToken string `json:"refresh_token"` // подписанный refresh-токен
}

// LogoutResponse представляет ответ на успешный логаут
type LogoutResponse struct {
	Status string `json:"status"` // статусное сообщение
}

// ErrorResponse представляет ответ с ошибкой.
// Status — машиночитаемый тег (например TOKEN_REVOKED),
// Description — человекочитаемое описание.
type ErrorResponse struct {
	Status      string `json:"status"`
	Description string `json:"description"`
}
