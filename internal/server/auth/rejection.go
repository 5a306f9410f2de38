package auth

import (
	"fmt"
	"net/http"
)

// Status — машиночитаемый тег отказа, попадает в поле status ответа
type Status string

const (
	StatusTokenNotProvided  Status = "TOKEN_NOT_PROVIDED"
	StatusTokenBadSignature Status = "TOKEN_BAD_SIGNATURE"
	StatusTokenMalformed    Status = "TOKEN_MALFORMED"
	StatusTokenExpired      Status = "TOKEN_EXPIRED"
	StatusTokenNotFound     Status = "TOKEN_NOT_FOUND"
	StatusTokenRevoked      Status = "TOKEN_REVOKED"
	StatusUnauthorized      Status = "UNAUTHORIZED"
	StatusInternalError     Status = "INTERNAL_SERVER_ERROR"
)

// Rejection — классифицированный отказ ядра авторизации.
// Все ожидаемые отказы возвращаются значением этого типа, а не ошибкой;
// HTTPStatus — подсказка транспортному слою.
type Rejection struct {
	Status      Status // машиночитаемый тег
	Description string // человекочитаемое описание
	HTTPStatus  int    // рекомендуемый HTTP-статус
}

// tokenLabel подставляется в описания отказов: Access-Token или Refresh-Token
type tokenLabel string

const (
	labelAccess  tokenLabel = "Access-Token"
	labelRefresh tokenLabel = "Refresh-Token"
)

func rejectNotProvided(label tokenLabel) *Rejection {
	return &Rejection{
		Status:      StatusTokenNotProvided,
		Description: fmt.Sprintf("%s is not provided", label),
		HTTPStatus:  http.StatusBadRequest,
	}
}

func rejectBadSignature(label tokenLabel) *Rejection {
	return &Rejection{
		Status:      StatusTokenBadSignature,
		Description: fmt.Sprintf("%s has incorrect signature", label),
		HTTPStatus:  http.StatusUnauthorized,
	}
}

func rejectMalformed(label tokenLabel) *Rejection {
	return &Rejection{
		Status:      StatusTokenMalformed,
		Description: fmt.Sprintf("%s is malformed or has incorrect format", label),
		HTTPStatus:  http.StatusBadRequest,
	}
}

func rejectExpired(label tokenLabel) *Rejection {
	return &Rejection{
		Status:      StatusTokenExpired,
		Description: fmt.Sprintf("Provided %s is expired", label),
		HTTPStatus:  http.StatusUnauthorized,
	}
}

func rejectNotFound(label tokenLabel) *Rejection {
	return &Rejection{
		Status:      StatusTokenNotFound,
		Description: fmt.Sprintf("%s data is not found in database", label),
		HTTPStatus:  http.StatusUnauthorized,
	}
}

func rejectRevoked(label tokenLabel) *Rejection {
	return &Rejection{
		Status:      StatusTokenRevoked,
		Description: fmt.Sprintf("%s is revoked", label),
		HTTPStatus:  http.StatusUnauthorized,
	}
}

func rejectUnauthorized(email string) *Rejection {
	// Намеренно одно описание на оба случая: не раскрываем,
	// существует ли пользователь с таким email
	return &Rejection{
		Status:      StatusUnauthorized,
		Description: fmt.Sprintf("User with email %s is not found or password is incorrect", email),
		HTTPStatus:  http.StatusUnauthorized,
	}
}

func rejectInternal(description string) *Rejection {
	return &Rejection{
		Status:      StatusInternalError,
		Description: description,
		HTTPStatus:  http.StatusInternalServerError,
	}
}
