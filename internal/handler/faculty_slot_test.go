package handler_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshithcodes/assignment-scheduler/internal/handler"
	"github.com/harshithcodes/assignment-scheduler/internal/model"
	"github.com/harshithcodes/assignment-scheduler/internal/repository"
)

func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newFacultyHandler(t *testing.T) (*handler.FacultyHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return handler.NewFacultyHandler(repository.NewSlotRepo(db)), dbMock
}

func TestCreateSlot(t *testing.T) {
	t.Run("creates a slot and normalizes times", func(t *testing.T) {
		h, dbMock := newFacultyHandler(t)
		c, rec := newJSONContext(t, http.MethodPost, "/v1/slots",
			`{"date":"2025-03-01","start_time":"09:00","end_time":"10:00"}`)
		c.Set("user_id", float64(4))

		dbMock.ExpectBegin()
		dbMock.ExpectQuery("SELECT id FROM slots").
			WithArgs(uint64(4), "2025-03-01", "10:00:00", "09:00:00").
			WillReturnError(sql.ErrNoRows)
		dbMock.ExpectExec("INSERT INTO slots").
			WithArgs(sqlmock.AnyArg(), uint64(4), "2025-03-01", "09:00:00", "10:00:00", model.SlotAvailable).
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectCommit()

		require.NoError(t, h.CreateSlot(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"start_time":"09:00:00"`)
		assert.Contains(t, rec.Body.String(), `"status":"available"`)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("rejects an inverted time range", func(t *testing.T) {
		h, _ := newFacultyHandler(t)
		c, rec := newJSONContext(t, http.MethodPost, "/v1/slots",
			`{"date":"2025-03-01","start_time":"10:00","end_time":"09:00"}`)
		c.Set("user_id", float64(4))

		require.NoError(t, h.CreateSlot(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		h, _ := newFacultyHandler(t)
		c, rec := newJSONContext(t, http.MethodPost, "/v1/slots",
			`{"date":"03/01/2025","start_time":"09:00","end_time":"10:00"}`)
		c.Set("user_id", float64(4))

		require.NoError(t, h.CreateSlot(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("maps an interval conflict to 409", func(t *testing.T) {
		h, dbMock := newFacultyHandler(t)
		c, rec := newJSONContext(t, http.MethodPost, "/v1/slots",
			`{"date":"2025-03-01","start_time":"09:30","end_time":"10:30"}`)
		c.Set("user_id", float64(4))

		dbMock.ExpectBegin()
		dbMock.ExpectQuery("SELECT id FROM slots").
			WithArgs(uint64(4), "2025-03-01", "10:30:00", "09:30:00").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
		dbMock.ExpectRollback()

		require.NoError(t, h.CreateSlot(c))
		assert.Equal(t, http.StatusConflict, rec.Code)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestDeleteSlot(t *testing.T) {
	setParam := func(c echo.Context, id string) {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}

	t.Run("deletes an owned available slot", func(t *testing.T) {
		h, dbMock := newFacultyHandler(t)
		id := uuid.NewString()
		c, rec := newJSONContext(t, http.MethodDelete, "/v1/slots/"+id, "")
		c.Set("user_id", float64(4))
		setParam(c, id)

		dbMock.ExpectBegin()
		dbMock.ExpectQuery("SELECT status FROM slots").
			WithArgs(id, uint64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(model.SlotAvailable))
		dbMock.ExpectExec("DELETE FROM slots").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectCommit()

		require.NoError(t, h.DeleteSlot(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("reports 403 for a booked slot", func(t *testing.T) {
		h, dbMock := newFacultyHandler(t)
		id := uuid.NewString()
		c, rec := newJSONContext(t, http.MethodDelete, "/v1/slots/"+id, "")
		c.Set("user_id", float64(4))
		setParam(c, id)

		dbMock.ExpectBegin()
		dbMock.ExpectQuery("SELECT status FROM slots").
			WithArgs(id, uint64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(model.SlotBooked))
		dbMock.ExpectRollback()

		require.NoError(t, h.DeleteSlot(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "cannot delete booked slot")
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("reports 404 for a slot owned by someone else", func(t *testing.T) {
		h, dbMock := newFacultyHandler(t)
		id := uuid.NewString()
		c, rec := newJSONContext(t, http.MethodDelete, "/v1/slots/"+id, "")
		c.Set("user_id", float64(5))
		setParam(c, id)

		dbMock.ExpectBegin()
		dbMock.ExpectQuery("SELECT status FROM slots").
			WithArgs(id, uint64(5)).
			WillReturnError(sql.ErrNoRows)
		dbMock.ExpectRollback()

		require.NoError(t, h.DeleteSlot(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})
}
