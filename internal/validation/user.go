package validation

import (
	"fmt"
	"regexp"
)

// EmailPattern определяет допустимый формат email.
// Упрощенная проверка: непустая локальная часть, @, домен с точкой.
var EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	// MinNameLen минимальная длина имени, отчества и фамилии
	MinNameLen = 1
	// MaxNameLen максимальная длина имени, отчества и фамилии
	MaxNameLen = 99
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 8
	// MaxPasswordLen максимальная длина пароля
	MaxPasswordLen = 99
)

// ValidateEmail проверяет, что email соответствует требованиям
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("email has invalid format")
	}

	return nil
}

// ValidateName проверяет имя, отчество или фамилию.
// Длина: 1-99 символов. field подставляется в текст ошибки.
func ValidateName(field, name string) error {
	if len(name) < MinNameLen {
		return fmt.Errorf("%s cannot be empty", field)
	}

	if len(name) > MaxNameLen {
		return fmt.Errorf("%s must not exceed %d characters", field, MaxNameLen)
	}

	return nil
}

// ValidatePassword проверяет минимальные требования к паролю.
// Длина: 8-99 символов.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", MaxPasswordLen)
	}

	return nil
}
