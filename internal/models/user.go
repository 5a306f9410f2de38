package models

// User представляет пользователя в системе
type User struct {
	ID             string `json:"id"`         // UUID пользователя
	Firstname      string `json:"firstname"`  // имя
	Middlename     string `json:"middlename"` // отчество (может быть пустым)
	Surname        string `json:"surname"`    // фамилия
	Email          string `json:"email"`      // уникальный email
	HashedPassword string `json:"-"`          // bcrypt хеш пароля, наружу не отдается
	IsAdmin        bool   `json:"is_admin"`   // признак прав администратора
}
