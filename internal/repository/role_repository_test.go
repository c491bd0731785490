package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshithcodes/assignment-scheduler/internal/model"
	"github.com/harshithcodes/assignment-scheduler/internal/repository"
)

func newRoleRepo(t *testing.T) (*repository.RoleRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewRoleRepo(db), dbMock
}

func TestRoleGetOrCreate(t *testing.T) {
	selectQ := regexp.QuoteMeta("SELECT role FROM user_roles WHERE email=? LIMIT 1")
	insertQ := regexp.QuoteMeta("INSERT INTO user_roles (email, role) VALUES (?,?)")

	t.Run("returns a pre-provisioned assignment untouched", func(t *testing.T) {
		repo, dbMock := newRoleRepo(t)
		dbMock.ExpectQuery(selectQ).
			WithArgs("prof@example.edu").
			WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow(model.RoleFaculty))

		role, err := repo.GetOrCreate(context.Background(), "prof@example.edu")
		require.NoError(t, err)
		assert.Equal(t, model.RoleFaculty, role)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("defaults a first-time email to scholar", func(t *testing.T) {
		repo, dbMock := newRoleRepo(t)
		dbMock.ExpectQuery(selectQ).
			WithArgs("new@example.edu").
			WillReturnError(sql.ErrNoRows)
		dbMock.ExpectExec(insertQ).
			WithArgs("new@example.edu", model.RoleScholar).
			WillReturnResult(sqlmock.NewResult(0, 1))

		role, err := repo.GetOrCreate(context.Background(), "new@example.edu")
		require.NoError(t, err)
		assert.Equal(t, model.RoleScholar, role)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("re-reads the winner after losing the insert race", func(t *testing.T) {
		repo, dbMock := newRoleRepo(t)
		dbMock.ExpectQuery(selectQ).
			WithArgs("racy@example.edu").
			WillReturnError(sql.ErrNoRows)
		dbMock.ExpectExec(insertQ).
			WithArgs("racy@example.edu", model.RoleScholar).
			WillReturnError(errors.New("Error 1062: Duplicate entry 'racy@example.edu' for key 'PRIMARY'"))
		dbMock.ExpectQuery(selectQ).
			WithArgs("racy@example.edu").
			WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow(model.RoleAdmin))

		role, err := repo.GetOrCreate(context.Background(), "racy@example.edu")
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, role)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})
}
