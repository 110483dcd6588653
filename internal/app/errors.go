package app

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these to HTTP statuses with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrTooManyAttempts = errors.New("too many failed login attempts, try again later")
)

var (
	ErrInvalidInput        = fmt.Errorf("%w: missing required fields", ErrValidation)
	ErrEmailNickRequired   = fmt.Errorf("%w: email and nick are required", ErrValidation)
	ErrUserExists          = fmt.Errorf("%w: user already exists", ErrConflict)
	ErrUserNotFound        = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrInvalidCredential   = fmt.Errorf("%w: incorrect password", ErrUnauthorized)
	ErrSelfFollow          = fmt.Errorf("%w: cannot follow yourself", ErrValidation)
	ErrFollowExists        = fmt.Errorf("%w: already following this user", ErrConflict)
	ErrFollowTargetMissing = fmt.Errorf("%w: the user you are trying to follow does not exist", ErrNotFound)
	ErrFollowNotFound      = fmt.Errorf("%w: follow not found", ErrNotFound)
	ErrPublicationEmpty    = fmt.Errorf("%w: publication text is empty", ErrValidation)
	ErrPublicationNotFound = fmt.Errorf("%w: publication not found", ErrNotFound)
	ErrFileNotFound        = fmt.Errorf("%w: file not found", ErrNotFound)
)
