package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates that a user with this email already exists
	ErrEmailTaken = errors.New("email is already taken")

	// ErrTokenNotFound indicates that token record was not found
	ErrTokenNotFound = errors.New("token not found")

	// ErrTokenRevoked indicates that the token record is already revoked.
	// RevokePair returns it when the conditional update does not flip the
	// revoked flag, so concurrent rotations of one token cannot both win.
	ErrTokenRevoked = errors.New("token is already revoked")

	// ErrBookNotFound indicates that book was not found in storage
	ErrBookNotFound = errors.New("book not found")

	// ErrISBNTaken indicates that a book with this ISBN already exists
	ErrISBNTaken = errors.New("isbn is already taken")
)
