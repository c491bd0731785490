package service_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshithcodes/assignment-scheduler/internal/model"
	"github.com/harshithcodes/assignment-scheduler/internal/repository"
	"github.com/harshithcodes/assignment-scheduler/internal/service"
)

func newRoleService(t *testing.T) (*service.RoleService, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return service.NewRoleService(db, repository.NewRoleRepo(db), repository.NewUserRepo(db)), dbMock
}

func TestSetRole(t *testing.T) {
	upsertQ := regexp.QuoteMeta("INSERT INTO user_roles")
	realignQ := regexp.QuoteMeta("UPDATE users SET role=? WHERE email=?")

	t.Run("writes both role stores in one transaction", func(t *testing.T) {
		svc, dbMock := newRoleService(t)
		dbMock.ExpectBegin()
		dbMock.ExpectExec(upsertQ).
			WithArgs("prof@example.edu", model.RoleFaculty).
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectExec(realignQ).
			WithArgs(model.RoleFaculty, "prof@example.edu").
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectCommit()

		err := svc.SetRole(context.Background(), "admin@example.edu", "prof@example.edu", model.RoleFaculty)
		require.NoError(t, err)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("rolls back when the realignment fails", func(t *testing.T) {
		svc, dbMock := newRoleService(t)
		dbMock.ExpectBegin()
		dbMock.ExpectExec(upsertQ).
			WithArgs("prof@example.edu", model.RoleFaculty).
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectExec(realignQ).
			WithArgs(model.RoleFaculty, "prof@example.edu").
			WillReturnError(errors.New("connection reset"))
		dbMock.ExpectRollback()

		err := svc.SetRole(context.Background(), "admin@example.edu", "prof@example.edu", model.RoleFaculty)
		assert.Error(t, err)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("rejects an unknown role before touching the database", func(t *testing.T) {
		svc, dbMock := newRoleService(t)
		err := svc.SetRole(context.Background(), "admin@example.edu", "prof@example.edu", "superuser")
		assert.ErrorIs(t, err, repository.ErrInvalidRole)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("never lets a caller change their own role", func(t *testing.T) {
		svc, dbMock := newRoleService(t)
		err := svc.SetRole(context.Background(), "admin@example.edu", "admin@example.edu", model.RoleScholar)
		assert.ErrorIs(t, err, repository.ErrSelfRoleChange)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestResolveRole(t *testing.T) {
	selectQ := regexp.QuoteMeta("SELECT role FROM user_roles WHERE email=? LIMIT 1")

	svc, dbMock := newRoleService(t)
	dbMock.ExpectQuery(selectQ).
		WithArgs("prof@example.edu").
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow(model.RoleFaculty))

	role, err := svc.ResolveRole(context.Background(), "prof@example.edu")
	require.NoError(t, err)
	assert.Equal(t, model.RoleFaculty, role)
	require.NoError(t, dbMock.ExpectationsWereMet())
}
