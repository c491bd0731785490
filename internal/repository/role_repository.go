package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/harshithcodes/assignment-scheduler/internal/model"
)

// RoleRepo provides access to the user_roles table, the
// authoritative email-to-role mapping. Rows may exist before the
// corresponding user account does (pre-provisioned roles) and are
// never deleted.
type RoleRepo struct{ DB *sql.DB }

func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{DB: db} }

// Get returns the assigned role for an email, or sql.ErrNoRows when
// no assignment exists.
func (r *RoleRepo) Get(ctx context.Context, email string) (string, error) {
	var role string
	err := r.DB.QueryRowContext(ctx,
		"SELECT role FROM user_roles WHERE email=? LIMIT 1",
		strings.TrimSpace(email)).Scan(&role)
	return role, err
}

// GetOrCreate returns the assigned role for an email, persisting a
// default scholar assignment when none exists yet so that later
// lookups are a single read. Two concurrent first lookups can both
// observe the missing row; the loser of the insert race hits the
// unique key (MySQL error 1062) and re-reads the winner's value.
func (r *RoleRepo) GetOrCreate(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	role, err := r.Get(ctx, email)
	if err == nil {
		return role, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO user_roles (email, role) VALUES (?,?)", email, model.RoleScholar)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return r.Get(ctx, email)
		}
		return "", err
	}
	return model.RoleScholar, nil
}

// UpsertTx writes an assignment keyed by email inside an existing
// transaction. The caller is responsible for validating the role
// value and for the paired users.role update.
func (r *RoleRepo) UpsertTx(ctx context.Context, tx *sql.Tx, email, role string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO user_roles (email, role) VALUES (?,?)
		 ON DUPLICATE KEY UPDATE role = VALUES(role), updated_at = UTC_TIMESTAMP()`,
		strings.TrimSpace(email), role)
	return err
}
