// Package service holds business operations that span more than one
// repository or talk to external infrastructure.
package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/harshithcodes/assignment-scheduler/internal/model"
	"github.com/harshithcodes/assignment-scheduler/internal/repository"
)

// RoleService owns both representations of a user's role: the
// authoritative user_roles assignment and the denormalized
// users.role column. Every mutation writes both inside one
// transaction, so the two stores can only disagree while a
// transaction is in flight.
type RoleService struct {
	DB    *sql.DB
	Roles *repository.RoleRepo
	Users *repository.UserRepo
}

func NewRoleService(db *sql.DB, roles *repository.RoleRepo, users *repository.UserRepo) *RoleService {
	if db == nil || roles == nil || users == nil {
		panic("nil dependency passed to NewRoleService")
	}
	return &RoleService{DB: db, Roles: roles, Users: users}
}

// SetRole assigns a role to an email. The assignment may precede the
// user's first sign-in. Rules:
//   - role must be scholar, faculty or admin (ErrInvalidRole),
//   - the caller may never change their own role, whatever their
//     current role is (ErrSelfRoleChange),
//   - the user_roles upsert and the users.role realignment commit
//     together or not at all.
func (s *RoleService) SetRole(ctx context.Context, actorEmail, email, role string) error {
	role = strings.TrimSpace(role)
	email = strings.TrimSpace(email)
	if !model.ValidRole(role) {
		return repository.ErrInvalidRole
	}
	if email == strings.TrimSpace(actorEmail) {
		return repository.ErrSelfRoleChange
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := s.Roles.UpsertTx(ctx, tx, email, role); err != nil {
		return err
	}
	// Missing users row is fine here: the assignment is picked up by
	// the login upsert when the user first signs in.
	if err := s.Users.UpdateRoleByEmailTx(ctx, tx, email, role); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ResolveRole returns the authoritative role for an email, creating
// the default scholar assignment when none exists. Called during
// login so the denormalized users.role column is written from the
// same value in the same request.
func (s *RoleService) ResolveRole(ctx context.Context, email string) (string, error) {
	return s.Roles.GetOrCreate(ctx, email)
}
