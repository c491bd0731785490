package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshithcodes/assignment-scheduler/internal/model"
	"github.com/harshithcodes/assignment-scheduler/internal/repository"
)

func newSlotRepo(t *testing.T) (*repository.SlotRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewSlotRepo(db), dbMock
}

var slotCols = []string{
	"id", "faculty_id", "scholar_id", "slot_date", "start_time", "end_time",
	"status", "notes", "meeting_link", "created_at", "updated_at",
}

func TestSlotCreate(t *testing.T) {
	overlapQ := regexp.QuoteMeta("SELECT id FROM slots")
	insertQ := regexp.QuoteMeta("INSERT INTO slots")

	t.Run("accepts a non-overlapping slot", func(t *testing.T) {
		repo, dbMock := newSlotRepo(t)
		slot := model.Slot{
			ID: uuid.NewString(), FacultyID: 4,
			Date: "2025-03-01", StartTime: "09:00:00", EndTime: "10:00:00",
		}

		dbMock.ExpectBegin()
		dbMock.ExpectQuery(overlapQ).
			WithArgs(slot.FacultyID, slot.Date, slot.EndTime, slot.StartTime).
			WillReturnError(sql.ErrNoRows)
		dbMock.ExpectExec(insertQ).
			WithArgs(slot.ID, slot.FacultyID, slot.Date, slot.StartTime, slot.EndTime, model.SlotAvailable).
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectCommit()

		require.NoError(t, repo.Create(context.Background(), &slot))
		assert.Equal(t, model.SlotAvailable, slot.Status)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("rejects an overlapping slot", func(t *testing.T) {
		repo, dbMock := newSlotRepo(t)
		slot := model.Slot{
			ID: uuid.NewString(), FacultyID: 4,
			Date: "2025-03-01", StartTime: "09:30:00", EndTime: "10:30:00",
		}

		dbMock.ExpectBegin()
		dbMock.ExpectQuery(overlapQ).
			WithArgs(slot.FacultyID, slot.Date, slot.EndTime, slot.StartTime).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
		dbMock.ExpectRollback()

		err := repo.Create(context.Background(), &slot)
		assert.ErrorIs(t, err, repository.ErrSlotConflict)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestSlotGetAvailable(t *testing.T) {
	selectQ := regexp.QuoteMeta("FROM slots WHERE id = ? AND status = ?")

	t.Run("returns the open slot", func(t *testing.T) {
		repo, dbMock := newSlotRepo(t)
		id := uuid.NewString()
		now := time.Now().UTC()
		dbMock.ExpectQuery(selectQ).
			WithArgs(id, model.SlotAvailable).
			WillReturnRows(sqlmock.NewRows(slotCols).
				AddRow(id, 4, nil, "2025-03-01", "09:00:00", "10:00:00", model.SlotAvailable, nil, nil, now, now))

		slot, err := repo.GetAvailable(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, slot.ID)
		assert.Equal(t, "09:00:00", slot.StartTime)
		assert.Nil(t, slot.ScholarID)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("reports unavailable for missing or claimed slots", func(t *testing.T) {
		repo, dbMock := newSlotRepo(t)
		id := uuid.NewString()
		dbMock.ExpectQuery(selectQ).
			WithArgs(id, model.SlotAvailable).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetAvailable(context.Background(), id)
		assert.ErrorIs(t, err, repository.ErrSlotUnavailable)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestSlotBook(t *testing.T) {
	updateQ := regexp.QuoteMeta("UPDATE slots")

	t.Run("wins when the slot is still available", func(t *testing.T) {
		repo, dbMock := newSlotRepo(t)
		id := uuid.NewString()
		dbMock.ExpectExec(updateQ).
			WithArgs(model.SlotBooked, uint64(9), nil, "https://meet.google.com/abc-defg-hij", id, model.SlotAvailable).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Book(context.Background(), id, 9, nil, "https://meet.google.com/abc-defg-hij"))
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("loses the race when no row matches", func(t *testing.T) {
		repo, dbMock := newSlotRepo(t)
		id := uuid.NewString()
		dbMock.ExpectExec(updateQ).
			WithArgs(model.SlotBooked, uint64(9), nil, "https://meet.google.com/abc-defg-hij", id, model.SlotAvailable).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Book(context.Background(), id, 9, nil, "https://meet.google.com/abc-defg-hij")
		assert.ErrorIs(t, err, repository.ErrSlotUnavailable)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestSlotDeleteByIDAndFaculty(t *testing.T) {
	statusQ := regexp.QuoteMeta("SELECT status FROM slots WHERE id = ? AND faculty_id = ?")
	deleteQ := regexp.QuoteMeta("DELETE FROM slots WHERE id = ?")

	t.Run("deletes an available slot", func(t *testing.T) {
		repo, dbMock := newSlotRepo(t)
		id := uuid.NewString()
		dbMock.ExpectBegin()
		dbMock.ExpectQuery(statusQ).
			WithArgs(id, uint64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(model.SlotAvailable))
		dbMock.ExpectExec(deleteQ).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectCommit()

		require.NoError(t, repo.DeleteByIDAndFaculty(context.Background(), id, 4))
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("refuses to delete a booked slot", func(t *testing.T) {
		repo, dbMock := newSlotRepo(t)
		id := uuid.NewString()
		dbMock.ExpectBegin()
		dbMock.ExpectQuery(statusQ).
			WithArgs(id, uint64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(model.SlotBooked))
		dbMock.ExpectRollback()

		err := repo.DeleteByIDAndFaculty(context.Background(), id, 4)
		assert.ErrorIs(t, err, repository.ErrForbidden)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("collapses not-mine and missing into not found", func(t *testing.T) {
		repo, dbMock := newSlotRepo(t)
		id := uuid.NewString()
		dbMock.ExpectBegin()
		dbMock.ExpectQuery(statusQ).
			WithArgs(id, uint64(5)).
			WillReturnError(sql.ErrNoRows)
		dbMock.ExpectRollback()

		err := repo.DeleteByIDAndFaculty(context.Background(), id, 5)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})
}
