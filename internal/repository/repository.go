// Package repository defines the storage port for users. Implementations
// live in the memory and sqlite subpackages.
package repository

import (
	"context"

	"github.com/sakif/userdir/internal/model"
)

// DefaultMaxUsers is the capacity applied when no limit is configured.
const DefaultMaxUsers = 1000

// UserRepository owns the users and hands out identities.
//
// Create and Save deliberately give different guarantees. Create checks
// capacity, then the email, then assigns the next ID. Save is a raw upsert
// at user.ID and checks neither; it exists for writing back a user that was
// already created (e.g. after UpdateStatus). Whether Save was meant to skip
// those checks is an open question, so the two stay separate.
type UserRepository interface {
	// Create validates and stores a new user, returning its ID.
	// Fails with apperror.KindRepository when full, apperror.KindInvalidEmail
	// when the email is rejected.
	Create(ctx context.Context, name, email string, age *uint8) (model.UserID, error)

	// Save inserts or replaces the user stored at user.ID. A nil user fails
	// with apperror.KindRepository.
	Save(ctx context.Context, user *model.User) error

	// FindByID returns a copy of the stored user, or apperror.KindUserNotFound.
	FindByID(ctx context.Context, id model.UserID) (*model.User, error)

	// FindAll returns a snapshot of every stored user. Callers must not rely
	// on the order.
	FindAll(ctx context.Context) ([]*model.User, error)

	// Delete removes the user, or fails with apperror.KindUserNotFound.
	Delete(ctx context.Context, id model.UserID) error

	// Count returns the number of stored users.
	Count(ctx context.Context) (int, error)
}
