package services

import (
	"errors"
	"fmt"
)

// Виды ошибок, по ним handlers выбирают HTTP статус
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("authentication error")
	ErrNotFound   = errors.New("not found")
	ErrRelay      = errors.New("prediction relay error")
	ErrServer     = errors.New("server error")
)

var (
	ErrInvalidEmail    = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrMissingFields   = fmt.Errorf("%w: username, email and password are required", ErrValidation)
	ErrNoFile          = fmt.Errorf("%w: no file received", ErrValidation)
	ErrUnsupportedFile = fmt.Errorf("%w: only csv files are accepted", ErrValidation)

	ErrUserExists = fmt.Errorf("%w: email or username already exists", ErrConflict)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrAuth)
	ErrMissingToken       = fmt.Errorf("%w: no token provided", ErrAuth)
	ErrInvalidToken       = fmt.Errorf("%w: invalid token", ErrAuth)
	ErrTokenExpired       = fmt.Errorf("%w: token expired", ErrAuth)
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrAuth)

	ErrProfileNotFound = fmt.Errorf("%w: user not found", ErrNotFound)
)
