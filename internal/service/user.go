// Package service contains the business logic layer of the application.
//
//	Driver (cmd/userdir) → UserService → repository.UserRepository
//
// UserService takes the repository as an interface, so the memory backend,
// the SQLite backend and the hand-written mock in user_test.go are all
// interchangeable.
//
// ERROR POLICY:
// Repository errors are returned exactly as received: no wrapping, no
// translation, no retries. Callers switch on apperror.KindOf.
//
// WHY A logging.Logger AND NOT *slog.Logger?
// The service only ever hands a level and a message over; it never reads
// anything back. A one-method interface says exactly that, and lets tests
// record entries without parsing handler output.
//
// WHY COMPUTE STATS FROM FindAll?
// One FindAll is one snapshot. Counting with several calls (Count, then a
// scan for adults) could mix two states of the directory if a Create lands
// in between.
package service

import (
	"context"
	"log/slog"

	"github.com/sakif/userdir/internal/logging"
	"github.com/sakif/userdir/internal/model"
	"github.com/sakif/userdir/internal/repository"
)

// Keys of the map returned by GetUserStats.
const (
	StatTotal  = "total"
	StatAdults = "adults"
	StatActive = "active"
	StatMinors = "minors"
)

// UserService handles business logic for the user directory.
type UserService struct {
	repo   repository.UserRepository
	logger logging.Logger
}

// NewUserService creates a UserService. Both arguments are required.
func NewUserService(repo repository.UserRepository, logger logging.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// GetUserStats counts users over a single FindAll snapshot.
// minors is total minus adults, so users of unknown age count as minors.
func (s *UserService) GetUserStats(ctx context.Context) (map[string]uint32, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Log(ctx, logging.LevelError, "failed to list users for stats",
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	var total, adults, active uint32
	for _, u := range users {
		total++
		if u.IsAdult() {
			adults++
		}
		if u.Status == model.StatusActive {
			active++
		}
	}

	s.logger.Log(ctx, logging.LevelDebug, "user stats computed",
		slog.Int("total", int(total)),
	)

	return map[string]uint32{
		StatTotal:  total,
		StatAdults: adults,
		StatActive: active,
		StatMinors: total - adults,
	}, nil
}

// CreateUser delegates to the repository's Create, which owns validation.
func (s *UserService) CreateUser(ctx context.Context, name, email string, age *uint8) (model.UserID, error) {
	id, err := s.repo.Create(ctx, name, email, age)
	if err != nil {
		s.logger.Log(ctx, logging.LevelWarn, "user not created",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return 0, err
	}

	s.logger.Log(ctx, logging.LevelInfo, "user created",
		slog.Uint64("id", uint64(id)),
		slog.String("name", name),
	)
	return id, nil
}

func (s *UserService) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.repo.FindAll(ctx)
}

// SaveUser writes the user back without validation; see
// repository.UserRepository for why Save skips the Create checks.
func (s *UserService) SaveUser(ctx context.Context, user *model.User) error {
	if err := s.repo.Save(ctx, user); err != nil {
		s.logger.Log(ctx, logging.LevelError, "failed to save user",
			slog.Uint64("id", uint64(user.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

// ChangeStatus loads the user, sets the status and saves it back.
func (s *UserService) ChangeStatus(ctx context.Context, id model.UserID, status model.Status) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.UpdateStatus(status)

	if err := s.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Log(ctx, logging.LevelInfo, "user status changed",
		slog.Uint64("id", uint64(id)),
		slog.String("status", status.String()),
	)
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id model.UserID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Log(ctx, logging.LevelInfo, "user deleted", slog.Uint64("id", uint64(id)))
	return nil
}
