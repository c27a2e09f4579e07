// Package memory implements repository.UserRepository with a map guarded by
// a mutex. Nothing survives the process.
//
// WHY sync.RWMutex AND NOT sync.Map?
// Create has to read the size, check it against the cap, insert, and bump
// the counter as one step. sync.Map can't make that atomic; a plain map
// under one lock can. Reads (FindByID, FindAll, Count) take the read lock so
// they can run side by side.
//
// WHY RETURN COPIES?
// Handing out the stored *model.User would let a caller change the
// directory without going through Save. Every read clones, and Save stores
// a clone, so the map is only ever touched under the lock.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/sakif/userdir/internal/apperror"
	"github.com/sakif/userdir/internal/model"
	"github.com/sakif/userdir/internal/repository"
)

// compile-time check that *Repository implements repository.UserRepository
var _ repository.UserRepository = (*Repository)(nil)

// Repository is an independently constructible store: every instance has its
// own map and its own ID counter.
type Repository struct {
	mu       sync.RWMutex
	users    map[model.UserID]*model.User
	nextID   model.UserID
	maxUsers int
	now      func() time.Time
}

// New returns an empty repository holding at most maxUsers users.
// A non-positive maxUsers falls back to repository.DefaultMaxUsers.
func New(maxUsers int) *Repository {
	if maxUsers <= 0 {
		maxUsers = repository.DefaultMaxUsers
	}
	return &Repository{
		users:    make(map[model.UserID]*model.User),
		nextID:   1,
		maxUsers: maxUsers,
		now:      time.Now,
	}
}

// Create checks the cap first, then the email. The counter only moves once
// the user is stored, so a rejected email doesn't burn an ID.
func (r *Repository) Create(_ context.Context, name, email string, age *uint8) (model.UserID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.users) >= r.maxUsers {
		return 0, apperror.RepositoryFailure("Maximum users reached")
	}

	id := r.nextID
	user, err := model.New(id, name, email, age, uint64(r.now().Unix()))
	if err != nil {
		return 0, err
	}

	r.users[id] = user
	r.nextID++
	return id, nil
}

func (r *Repository) Save(_ context.Context, user *model.User) error {
	if user == nil {
		return apperror.RepositoryFailure("nil user")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy so later changes to the caller's value don't leak in.
	r.users[user.ID] = user.Clone()
	return nil
}

func (r *Repository) FindByID(_ context.Context, id model.UserID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperror.UserNotFound(uint32(id))
	}
	return user.Clone(), nil
}

// FindAll copies every user under one read lock, so the result is a
// consistent snapshot even with concurrent writers. Ordered by ID.
func (r *Repository) FindAll(_ context.Context) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u.Clone())
	}
	slices.SortFunc(users, func(a, b *model.User) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return users, nil
}

func (r *Repository) Delete(_ context.Context, id model.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return apperror.UserNotFound(uint32(id))
	}
	delete(r.users, id)
	return nil
}

func (r *Repository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}
