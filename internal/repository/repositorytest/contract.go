// Package repositorytest holds the behavioural tests every
// repository.UserRepository implementation must pass. Backends call Run from
// their own _test.go files with a factory for fresh instances.
package repositorytest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/userdir/internal/apperror"
	"github.com/sakif/userdir/internal/model"
	"github.com/sakif/userdir/internal/repository"
)

// Factory returns an empty repository with the given capacity. It should
// register any cleanup with t.Cleanup.
type Factory func(t *testing.T, maxUsers int) repository.UserRepository

// Run executes the full contract suite against the factory's repositories.
func Run(t *testing.T, newRepo Factory) {
	t.Run("CreateAssignsIncreasingIDs", func(t *testing.T) { testCreateAssignsIncreasingIDs(t, newRepo) })
	t.Run("CreateStoresFields", func(t *testing.T) { testCreateStoresFields(t, newRepo) })
	t.Run("CreateRejectsInvalidEmail", func(t *testing.T) { testCreateRejectsInvalidEmail(t, newRepo) })
	t.Run("CreateEnforcesCapacity", func(t *testing.T) { testCreateEnforcesCapacity(t, newRepo) })
	t.Run("CapacityCheckedBeforeEmail", func(t *testing.T) { testCapacityCheckedBeforeEmail(t, newRepo) })
	t.Run("DefaultCapacityIsOneThousand", func(t *testing.T) { testDefaultCapacity(t, newRepo) })
	t.Run("FindByIDNeverIssued", func(t *testing.T) { testFindByIDNeverIssued(t, newRepo) })
	t.Run("DeleteThenFind", func(t *testing.T) { testDeleteThenFind(t, newRepo) })
	t.Run("DeleteUnknown", func(t *testing.T) { testDeleteUnknown(t, newRepo) })
	t.Run("IDsNeverReused", func(t *testing.T) { testIDsNeverReused(t, newRepo) })
	t.Run("SaveIsIdempotent", func(t *testing.T) { testSaveIsIdempotent(t, newRepo) })
	t.Run("SaveSkipsValidation", func(t *testing.T) { testSaveSkipsValidation(t, newRepo) })
	t.Run("SaveNilUser", func(t *testing.T) { testSaveNilUser(t, newRepo) })
	t.Run("FindByIDReturnsCopy", func(t *testing.T) { testFindByIDReturnsCopy(t, newRepo) })
	t.Run("FindAll", func(t *testing.T) { testFindAll(t, newRepo) })
}

func mustCreate(t *testing.T, repo repository.UserRepository, name, email string, age *uint8) model.UserID {
	t.Helper()
	id, err := repo.Create(context.Background(), name, email, age)
	require.NoError(t, err, "Create(%q, %q)", name, email)
	return id
}

func count(t *testing.T, repo repository.UserRepository) int {
	t.Helper()
	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	return n
}

func assertKind(t *testing.T, err error, want apperror.Kind) {
	t.Helper()
	kind, ok := apperror.KindOf(err)
	require.True(t, ok, "expected a domain error, got %v", err)
	assert.Equal(t, want, kind)
}

func testCreateAssignsIncreasingIDs(t *testing.T, newRepo Factory) {
	repo := newRepo(t, 0)

	for want := model.UserID(1); want <= 5; want++ {
		id := mustCreate(t, repo, "user", fmt.Sprintf("u%d@example.com", want), nil)
		assert.Equal(t, want, id)
	}
}

func testCreateStoresFields(t *testing.T, newRepo Factory) {
	repo := newRepo(t, 0)
	ctx := context.Background()

	id := mustCreate(t, repo, "Alice Johnson", "alice@example.com", model.AgeOf(28))

	u, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "Alice Johnson", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
	require.NotNil(t, u.Age)
	assert.Equal(t, uint8(28), *u.Age)
	assert.Equal(t, model.StatusActive, u.Status)
	assert.Equal(t, model.DefaultPreferences(), u.Preferences)
	assert.NotZero(t, u.CreatedAt)

	noAge := mustCreate(t, repo, "Charlie Brown", "charlie@example.com", nil)
	u, err = repo.FindByID(ctx, noAge)
	require.NoError(t, err)
	assert.Nil(t, u.Age)
}

func testCreateRejectsInvalidEmail(t *testing.T, newRepo Factory) {
	repo := newRepo(t, 0)
	mustCreate(t, repo, "ok", "ok@example.com", nil)

	for _, email := range []string{"no-at.example.com", "no-dot@example", "", "plain"} {
		t.Run(email, func(t *testing.T) {
			_, err := repo.Create(context.Background(), "bad", email, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperror.ErrInvalidEmail), "error = %v", err)
			assertKind(t, err, apperror.KindInvalidEmail)
			assert.Equal(t, 1, count(t, repo), "size must not change")
		})
	}

	// A rejected email does not consume an ID.
	id := mustCreate(t, repo, "next", "next@example.com", nil)
	assert.Equal(t, model.UserID(2), id)
}

func testCreateEnforcesCapacity(t *testing.T, newRepo Factory) {
	repo := newRepo(t, 3)

	for i := 0; i < 3; i++ {
		mustCreate(t, repo, "user", fmt.Sprintf("u%d@example.com", i), nil)
	}

	_, err := repo.Create(context.Background(), "extra", "extra@example.com", nil)
	require.Error(t, err)
	assertKind(t, err, apperror.KindRepository)
	assert.Equal(t, 3, count(t, repo))
}

func testCapacityCheckedBeforeEmail(t *testing.T, newRepo Factory) {
	repo := newRepo(t, 1)
	mustCreate(t, repo, "only", "only@example.com", nil)

	_, err := repo.Create(context.Background(), "extra", "not-an-email", nil)
	assertKind(t, err, apperror.KindRepository)
}

func testDefaultCapacity(t *testing.T, newRepo Factory) {
	if testing.Short() {
		t.Skip("creates 1000 users")
	}
	repo := newRepo(t, 0)

	for i := 1; i <= repository.DefaultMaxUsers; i++ {
		mustCreate(t, repo, "user", fmt.Sprintf("u%d@example.com", i), nil)
	}

	_, err := repo.Create(context.Background(), "one too many", "late@example.com", nil)
	assertKind(t, err, apperror.KindRepository)
	assert.Equal(t, repository.DefaultMaxUsers, count(t, repo))
}

func testFindByIDNeverIssued(t *testing.T, newRepo Factory) {
	repo := newRepo(t, 0)

	_, err := repo.FindByID(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrUserNotFound))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, uint32(999), appErr.ID)
}

func testDeleteThenFind(t *testing.T, newRepo Factory) {
	repo := newRepo(t, 0)
	ctx := context.Background()
	id := mustCreate(t, repo, "gone", "gone@example.com", nil)

	require.NoError(t, repo.Delete(ctx, id))

	_, err := repo.FindByID(ctx, id)
	assertKind(t, err, apperror.KindUserNotFound)
	assert.Equal(t, 0, count(t, repo))
}

func testDeleteUnknown(t *testing.T, newRepo Factory) {
	repo := newRepo(t, 0)

	err := repo.Delete(context.Background(), 42)
	assertKind(t, err, apperror.KindUserNotFound)
}

func testIDsNeverReused(t *testing.T, newRepo Factory) {
	repo := newRepo(t, 0)
	ctx := context.Background()

	first := mustCreate(t, repo, "a", "a@example.com", nil)
	second := mustCreate(t, repo, "b", "b@example.com", nil)
	require.NoError(t, repo.Delete(ctx, second))
	require.NoError(t, repo.Delete(ctx, first))

	third := mustCreate(t, repo, "c", "c@example.com", nil)
	assert.Equal(t, model.UserID(3), third)
}

func testSaveIsIdempotent(t *testing.T, newRepo Factory) {
	once := newRepo(t, 0)
	twice := newRepo(t, 0)
	ctx := context.Background()

	u := &model.User{
		ID:          7,
		Name:        "Dana",
		Email:       "dana@example.com",
		Age:         model.AgeOf(40),
		Status:      model.StatusPending,
		Preferences: model.Preferences{Theme: "dark", Notifications: false, Language: "de"},
		CreatedAt:   1700000000,
	}

	require.NoError(t, once.Save(ctx, u))
	require.NoError(t, twice.Save(ctx, u))
	require.NoError(t, twice.Save(ctx, u))

	a, err := once.FindAll(ctx)
	require.NoError(t, err)
	b, err := twice.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	require.Len(t, b, 1)
	assert.Equal(t, u, b[0])
}

func testSaveSkipsValidation(t *testing.T, newRepo Factory) {
	repo := newRepo(t, 1)
	ctx := context.Background()
	mustCreate(t, repo, "only", "only@example.com", nil)

	// Neither the capacity nor the email rule applies to Save.
	err := repo.Save(ctx, &model.User{ID: 50, Name: "raw", Email: "no-at-sign"})
	require.NoError(t, err)
	assert.Equal(t, 2, count(t, repo))

	// Save does not move the counter either, but Create is still capped.
	_, err = repo.Create(ctx, "x", "x@example.com", nil)
	assertKind(t, err, apperror.KindRepository)
}

func testSaveNilUser(t *testing.T, newRepo Factory) {
	repo := newRepo(t, 0)

	err := repo.Save(context.Background(), nil)

	assertKind(t, err, apperror.KindRepository)
	assert.Equal(t, 0, count(t, repo))
}

func testFindByIDReturnsCopy(t *testing.T, newRepo Factory) {
	repo := newRepo(t, 0)
	ctx := context.Background()
	id := mustCreate(t, repo, "Erin", "erin@example.com", model.AgeOf(20))

	u, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	u.UpdateStatus(model.StatusInactive)
	*u.Age = 99

	again, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, again.Status)
	assert.Equal(t, uint8(20), *again.Age)

	// Writing it back is what makes the change stick.
	require.NoError(t, repo.Save(ctx, u))
	again, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInactive, again.Status)
}

func testFindAll(t *testing.T, newRepo Factory) {
	repo := newRepo(t, 0)
	ctx := context.Background()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	want := map[model.UserID]string{}
	for _, name := range []string{"a", "b", "c"} {
		id := mustCreate(t, repo, name, name+"@example.com", nil)
		want[id] = name
	}

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	got := map[model.UserID]string{}
	for _, u := range all {
		got[u.ID] = u.Name
	}
	assert.Equal(t, want, got)
}
