package api

// CreateUserRequest представляет запрос на регистрацию нового пользователя
type CreateUserRequest struct {
	Email      string `json:"email"`                // желаемый email, должен быть свободен
	Firstname  string `json:"firstname"`            // имя
	Middlename string `json:"middlename,omitempty"` // отчество (опционально)
	Surname    string `json:"surname"`              // фамилия
	Password   string `json:"password"`             // пароль, 8-99 символов
}

// CreateUserResponse представляет ответ на успешную регистрацию
type CreateUserResponse struct {
	Status string `json:"status"`  // статусное сообщение
	UserID string `json:"user_id"` // UUID созданного пользователя
}

// UserResponse представляет данные пользователя без хеша пароля
type UserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Firstname  string `json:"firstname"`
	Middlename string `json:"middlename,omitempty"`
	Surname    string `json:"surname"`
	IsAdmin    bool   `json:"is_admin"`
}

// UpdateUserRequest представляет запрос на изменение признака администратора
type UpdateUserRequest struct {
	IsAdmin bool `json:"is_admin"`
}

// StatusResponse представляет ответ, содержащий только статусное сообщение
type StatusResponse struct {
	Status string `json:"status"`
}
