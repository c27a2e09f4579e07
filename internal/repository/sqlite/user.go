package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/userdir/internal/apperror"
	"github.com/sakif/userdir/internal/model"
	"github.com/sakif/userdir/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

const userColumns = `id, name, email, age, status, theme, notifications, language, created_at`

// Create runs the capacity check, the email check, the insert and the
// counter bump in one transaction. A rejected email rolls back, so the
// counter only moves on success.
func (db *DB) Create(ctx context.Context, name, email string, age *uint8) (model.UserID, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: beginning create: %w", err)
	}
	// Rollback after Commit is a no-op, so this is safe on every path.
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("sqlite: counting users: %w", err)
	}
	if count >= db.maxUsers {
		return 0, apperror.RepositoryFailure("Maximum users reached")
	}

	var nextID int64
	if err := tx.QueryRowContext(ctx,
		`SELECT next_id FROM user_sequence WHERE id = 1`,
	).Scan(&nextID); err != nil {
		return 0, fmt.Errorf("sqlite: reading next id: %w", err)
	}

	user, err := model.New(model.UserID(nextID), name, email, age, uint64(db.now().Unix()))
	if err != nil {
		return 0, err
	}

	if err := upsert(ctx, tx, user); err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE user_sequence SET next_id = next_id + 1 WHERE id = 1`,
	); err != nil {
		return 0, fmt.Errorf("sqlite: advancing next id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: committing create: %w", err)
	}

	return user.ID, nil
}

// Save upserts without any validation; see repository.UserRepository.
func (db *DB) Save(ctx context.Context, user *model.User) error {
	return upsert(ctx, db.conn, user)
}

func (db *DB) FindByID(ctx context.Context, id model.UserID) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`,
		int64(id),
	)

	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.UserNotFound(uint32(id))
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}

	return user, nil
}

func (db *DB) FindAll(ctx context.Context) ([]*model.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}

	return users, nil
}

func (db *DB) Delete(ctx context.Context, id model.UserID) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM users WHERE id = ?`,
		int64(id),
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting user %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.UserNotFound(uint32(id))
	}

	return nil
}

func (db *DB) Count(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("sqlite: counting users: %w", err)
	}
	return count, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, ex execer, user *model.User) error {
	if user == nil {
		return apperror.RepositoryFailure("nil user")
	}
	if !user.Status.IsValid() {
		return fmt.Errorf("sqlite: saving user %d: invalid status %d", user.ID, int(user.Status))
	}

	var age sql.NullInt64
	if user.Age != nil {
		age = sql.NullInt64{Int64: int64(*user.Age), Valid: true}
	}

	_, err := ex.ExecContext(ctx,
		`INSERT OR REPLACE INTO users (`+userColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		int64(user.ID),
		user.Name,
		user.Email,
		age,
		user.Status.String(),
		user.Preferences.Theme,
		user.Preferences.Notifications,
		user.Preferences.Language,
		int64(user.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: saving user %d: %w", user.ID, err)
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*model.User, error) {
	var (
		u         model.User
		id        int64
		age       sql.NullInt64
		status    string
		createdAt int64
	)

	if err := s.Scan(
		&id,
		&u.Name,
		&u.Email,
		&age,
		&status,
		&u.Preferences.Theme,
		&u.Preferences.Notifications,
		&u.Preferences.Language,
		&createdAt,
	); err != nil {
		return nil, err
	}

	st, err := model.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("decoding status: %w", err)
	}

	u.ID = model.UserID(id)
	u.Status = st
	u.CreatedAt = uint64(createdAt)
	if age.Valid {
		u.Age = model.AgeOf(uint8(age.Int64))
	}

	return &u, nil
}
