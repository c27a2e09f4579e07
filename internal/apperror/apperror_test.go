package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "UserNotFound wraps ErrUserNotFound",
			err:       UserNotFound(7),
			target:    ErrUserNotFound,
			wantMatch: true,
		},
		{
			name:      "InvalidEmail wraps ErrInvalidEmail",
			err:       InvalidEmail("nope"),
			target:    ErrInvalidEmail,
			wantMatch: true,
		},
		{
			name:      "RepositoryFailure wraps ErrRepository",
			err:       RepositoryFailure("Maximum users reached"),
			target:    ErrRepository,
			wantMatch: true,
		},
		{
			name:      "UserNotFound does NOT match ErrInvalidEmail",
			err:       UserNotFound(7),
			target:    ErrInvalidEmail,
			wantMatch: false,
		},
		{
			name:      "wrapped InvalidEmail still matches",
			err:       fmt.Errorf("creating user: %w", InvalidEmail("nope")),
			target:    ErrInvalidEmail,
			wantMatch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "UserNotFound message includes id",
			err:         UserNotFound(999),
			wantMessage: "User with ID 999 not found",
		},
		{
			name:        "InvalidEmail message includes the text",
			err:         InvalidEmail("bob-at-example"),
			wantMessage: "Invalid email format: bob-at-example",
		},
		{
			name:        "RepositoryFailure prefixes the message",
			err:         RepositoryFailure("Maximum users reached"),
			wantMessage: "Repository error: Maximum users reached",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind Kind
		wantOK   bool
	}{
		{"not found", UserNotFound(1), KindUserNotFound, true},
		{"invalid email", InvalidEmail("x"), KindInvalidEmail, true},
		{"repository", RepositoryFailure("full"), KindRepository, true},
		{"wrapped", fmt.Errorf("outer: %w", UserNotFound(2)), KindUserNotFound, true},
		{"plain error", errors.New("disk on fire"), 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := KindOf(tt.err)
			if kind != tt.wantKind || ok != tt.wantOK {
				t.Errorf("KindOf(%v) = (%v, %v), want (%v, %v)", tt.err, kind, ok, tt.wantKind, tt.wantOK)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	err := UserNotFound(3)
	if unwrapped := err.Unwrap(); unwrapped != ErrUserNotFound {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrUserNotFound)
	}
}

func TestContextFields(t *testing.T) {
	if err := UserNotFound(42); err.ID != 42 {
		t.Errorf("ID = %d, want 42", err.ID)
	}
	if err := InvalidEmail("bad"); err.Email != "bad" {
		t.Errorf("Email = %q, want %q", err.Email, "bad")
	}
}

func TestKindString(t *testing.T) {
	if got := KindRepository.String(); got != "repository_error" {
		t.Errorf("String() = %q, want %q", got, "repository_error")
	}
	if got := Kind(9).String(); got != "kind(9)" {
		t.Errorf("String() = %q, want %q", got, "kind(9)")
	}
}
