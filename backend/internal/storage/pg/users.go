package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/studyhub-dev/studyhub/shared/domain"
	internal_errors "github.com/studyhub-dev/studyhub/shared/errors"
	sharedpg "github.com/studyhub-dev/studyhub/shared/storage/pg"
)

const userColumns = "id, name, email, password_hash, avatar, is_admin, created_at"

var (
	errUserNotFound = internal_errors.NotFound("User not found")
	errUserExists   = internal_errors.Validation("User Already Exists")
)

// =========================================================================
// Public Methods (satisfy the service storage interfaces)
// =========================================================================

// SaveUser inserts a new user. A duplicate email is a 400, never a second record.
func (s *Storage) SaveUser(ctx context.Context, user domain.User) (domain.UserId, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.saveUser(ctx, s.db, user)
}

func (s *Storage) UserByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.userBy(ctx, s.db, "email", email)
}

func (s *Storage) UserById(ctx context.Context, id domain.UserId) (*domain.User, error) {
	if !validId(id) {
		return nil, errUserNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.userBy(ctx, s.db, "id", id)
}

// UpdateUser overwrites name, email and password hash; empty fields keep their stored value.
func (s *Storage) UpdateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	if !validId(user.Id) {
		return nil, errUserNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var updated *domain.User
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		updated, err = s.updateUser(ctx, tx, user)
		return err
	})
	return updated, err
}

func (s *Storage) SetAdmin(ctx context.Context, id domain.UserId, isAdmin bool) (*domain.User, error) {
	if !validId(id) {
		return nil, errUserNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx,
		"UPDATE users SET is_admin = $2 WHERE id = $1 RETURNING "+userColumns, id, isAdmin)
	return scanUser(row)
}

// DeleteUser removes the account. Profile, memberships, posts, likes and
// comments go with it through ON DELETE CASCADE; events are kept unowned.
func (s *Storage) DeleteUser(ctx context.Context, id domain.UserId) error {
	if !validId(id) {
		return errUserNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.deleteUser(ctx, tx, id)
	})
}

// =========================================================================
// Internal Methods (Core Database Logic)
// These methods accept a Querier and are transaction-agnostic.
// =========================================================================

func (s *Storage) saveUser(ctx context.Context, q Querier, user domain.User) (domain.UserId, error) {
	id := newId()
	_, err := q.ExecContext(ctx,
		"INSERT INTO users(id, name, email, password_hash, avatar, is_admin) VALUES($1, $2, $3, $4, $5, $6)",
		id, user.Name, user.Email, user.PassHash, user.Avatar, user.Admin)
	if err != nil {
		if sharedpg.IsUniqueViolation(err) {
			return "", errUserExists
		}
		return "", fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

// userBy fetches a user by a trusted column name.
func (s *Storage) userBy(ctx context.Context, q Querier, column string, value string) (*domain.User, error) {
	row := q.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE "+column+" = $1", value)
	return scanUser(row)
}

func (s *Storage) updateUser(ctx context.Context, q Querier, user domain.User) (*domain.User, error) {
	row := q.QueryRowContext(ctx, `
		UPDATE users SET
			name = COALESCE(NULLIF($2, ''), name),
			email = COALESCE(NULLIF($3, ''), email),
			password_hash = COALESCE(NULLIF($4, ''), password_hash)
		WHERE id = $1
		RETURNING `+userColumns,
		user.Id, user.Name, user.Email, user.PassHash)
	updated, err := scanUser(row)
	if err != nil && sharedpg.IsUniqueViolation(err) {
		return nil, errUserExists
	}
	return updated, err
}

func (s *Storage) deleteUser(ctx context.Context, q Querier, id domain.UserId) error {
	result, err := q.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return errUserNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.Id, &user.Name, &user.Email, &user.PassHash, &user.Avatar, &user.Admin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errUserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}
