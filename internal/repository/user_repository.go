package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/harshithcodes/assignment-scheduler/internal/model"
)

// UserRepo provides access to the users table. Accounts are created
// implicitly on first sign-in; profile fields are refreshed on every
// subsequent sign-in. The role column is a denormalized copy of the
// user_roles assignment and is written here only under direction of
// the role service or the login upsert.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id, email, name, picture, oauth_sub, role, created_at, last_login_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Picture, &u.OAuthSub, &u.Role, &u.CreatedAt, &u.LastLoginAt)
	return u, err
}

// UpsertOnLogin inserts a user row on first sign-in or refreshes the
// profile fields and last_login_at on a repeat sign-in. The role
// argument is the authoritative value already resolved from the role
// store, so the denormalized column is realigned on every login. The
// resulting row is read back and returned.
func (r *UserRepo) UpsertOnLogin(ctx context.Context, sub, email, name, picture, role string) (model.User, error) {
	email = strings.TrimSpace(email)
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (email, name, picture, oauth_sub, role, last_login_at)
		 VALUES (?,?,?,?,?,UTC_TIMESTAMP())
		 ON DUPLICATE KEY UPDATE
		   name = VALUES(name), picture = VALUES(picture), oauth_sub = VALUES(oauth_sub),
		   role = VALUES(role), last_login_at = VALUES(last_login_at)`,
		email, name, picture, sub, role)
	if err != nil {
		return model.User{}, err
	}
	return r.GetByEmail(ctx, email)
}

// GetByEmail fetches a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", strings.TrimSpace(email)))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// ListAll returns every user ordered by creation time. Used by the
// admin user listing.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	return r.list(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at")
}

// ListFaculties returns all users currently holding the faculty
// role, ordered by name for stable output.
func (r *UserRepo) ListFaculties(ctx context.Context) ([]model.User, error) {
	return r.list(ctx, "SELECT "+userColumns+" FROM users WHERE role=? ORDER BY name", model.RoleFaculty)
}

func (r *UserRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Picture, &u.OAuthSub, &u.Role, &u.CreatedAt, &u.LastLoginAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateRoleByEmailTx realigns the denormalized users.role column
// for the given email inside an existing transaction. A missing
// users row is not an error: the assignment may precede the user's
// first sign-in, in which case the login upsert picks it up later.
func (r *UserRepo) UpdateRoleByEmailTx(ctx context.Context, tx *sql.Tx, email, role string) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE users SET role=? WHERE email=?", role, strings.TrimSpace(email))
	return err
}
