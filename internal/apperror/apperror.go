package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidEmail = errors.New("invalid email")
	ErrRepository   = errors.New("repository error")
)

// Kind identifies which of the three domain failures an AppError carries.
// The set is closed: a switch over Kind should list every constant below.
type Kind int

const (
	KindUserNotFound Kind = iota + 1
	KindInvalidEmail
	KindRepository
)

func (k Kind) String() string {
	switch k {
	case KindUserNotFound:
		return "user_not_found"
	case KindInvalidEmail:
		return "invalid_email"
	case KindRepository:
		return "repository_error"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

type AppError struct {
	Kind    Kind
	Err     error  // sentinel for errors.Is
	Message string // Human-readable error message
	ID      uint32 // Set for KindUserNotFound
	Email   string // Set for KindInvalidEmail
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func UserNotFound(id uint32) *AppError {
	return &AppError{
		Kind:    KindUserNotFound,
		Err:     ErrUserNotFound,
		Message: fmt.Sprintf("User with ID %d not found", id),
		ID:      id,
	}
}

func InvalidEmail(email string) *AppError {
	return &AppError{
		Kind:    KindInvalidEmail,
		Err:     ErrInvalidEmail,
		Message: fmt.Sprintf("Invalid email format: %s", email),
		Email:   email,
	}
}

// RepositoryFailure reports a capacity or other repository-level invariant
// violation.
func RepositoryFailure(message string) *AppError {
	return &AppError{
		Kind:    KindRepository,
		Err:     ErrRepository,
		Message: fmt.Sprintf("Repository error: %s", message),
	}
}

// KindOf walks the error chain and returns the Kind of the first AppError.
// ok is false for errors that are not domain errors (I/O failures, nil).
func KindOf(err error) (kind Kind, ok bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return 0, false
}
