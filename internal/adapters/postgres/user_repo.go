package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/waheedridwan/geopoints/internal/core/domain"
)

const userColumns = `id, email, username, hashed_password, is_active, is_superuser, created_at, last_login`

// UserRepo implements ports.UserRepository with pgx.
type UserRepo struct {
	q Querier
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{q: db.Pool}
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.HashedPassword,
		&u.IsActive, &u.IsSuperuser, &u.CreatedAt, &u.LastLogin)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user.
func (r *UserRepo) Create(ctx context.Context, email, username, hashedPassword string, isActive, isSuperuser bool) (*domain.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `
		INSERT INTO users (id, email, username, hashed_password, is_active, is_superuser)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		uuid.NewString(), email, username, hashedPassword, isActive, isSuperuser))
	if err != nil {
		return nil, translateErr(err, "user")
	}
	return u, nil
}

// GetByID returns a user, or (nil, nil) when it does not exist.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// GetByLogin matches either email or username.
func (r *UserRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = lower($1) OR username = $1`, login))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// List returns a page of users ordered by creation time.
func (r *UserRepo) List(ctx context.Context, offset, limit int) ([]domain.User, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at, id OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Update applies the non-nil patch fields. Returns (nil, nil) when the user
// does not exist.
func (r *UserRepo) Update(ctx context.Context, id string, patch domain.UserStorePatch) (*domain.User, error) {
	set := []string{}
	args := []any{}
	idx := 1

	appendSet := func(column string, value any) {
		set = append(set, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if patch.Email != nil {
		appendSet("email", *patch.Email)
	}
	if patch.Username != nil {
		appendSet("username", *patch.Username)
	}
	if patch.HashedPassword != nil {
		appendSet("hashed_password", *patch.HashedPassword)
	}
	if patch.IsActive != nil {
		appendSet("is_active", *patch.IsActive)
	}
	if patch.IsSuperuser != nil {
		appendSet("is_superuser", *patch.IsSuperuser)
	}

	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	u, err := scanUser(r.q.QueryRow(ctx,
		fmt.Sprintf("UPDATE users SET %s WHERE id = $%d RETURNING %s",
			strings.Join(set, ", "), idx, userColumns),
		args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, translateErr(err, "user")
	}
	return u, nil
}

// Delete removes a user, reporting whether a row actually went away.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Count returns the number of users.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var total int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&total)
	return total, err
}

// EmailExists reports whether another user already registered the email.
func (r *UserRepo) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE email = lower($1) AND ($2 = '' OR id::text <> $2)
		)`, email, excludeID).Scan(&exists)
	return exists, err
}

// UsernameExists reports whether another user already took the username.
func (r *UserRepo) UsernameExists(ctx context.Context, username, excludeID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE username = $1 AND ($2 = '' OR id::text <> $2)
		)`, username, excludeID).Scan(&exists)
	return exists, err
}

// UpdateLastLogin stamps the account's most recent authentication.
func (r *UserRepo) UpdateLastLogin(ctx context.Context, id string) (*domain.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx,
		`UPDATE users SET last_login = now() WHERE id = $1 RETURNING `+userColumns, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}
