// Faculty endpoints for publishing and withdrawing availability
// slots. Route-level middleware restricts these to the faculty and
// admin roles.
package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/harshithcodes/assignment-scheduler/internal/model"
	"github.com/harshithcodes/assignment-scheduler/internal/repository"
)

// FacultyHandler bundles dependencies for slot management.
type FacultyHandler struct {
	Slots *repository.SlotRepo
}

func NewFacultyHandler(slots *repository.SlotRepo) *FacultyHandler {
	if slots == nil {
		panic("nil repository passed to NewFacultyHandler")
	}
	return &FacultyHandler{Slots: slots}
}

type createSlotReq struct {
	Date      string `json:"date"`       // "2006-01-02"
	StartTime string `json:"start_time"` // "15:04" or "15:04:05"
	EndTime   string `json:"end_time"`
}

// normalizeClock validates a time-of-day string and normalizes it to
// HH:MM:SS so stored values compare lexicographically.
func normalizeClock(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t.Format("15:04:05"), true
	}
	if t, err := time.Parse("15:04", s); err == nil {
		return t.Format("15:04:05"), true
	}
	return "", false
}

// CreateSlot handles POST /v1/slots. Validation order: shape of the
// inputs first, then end > start, then the overlap check inside the
// repository transaction. An interval conflict is a 409.
func (h *FacultyHandler) CreateSlot(c echo.Context) error {
	facultyID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createSlotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	date := strings.TrimSpace(req.Date)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	start, ok := normalizeClock(req.StartTime)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time"})
	}
	end, ok := normalizeClock(req.EndTime)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_time"})
	}
	if end <= start {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be after start_time"})
	}

	slot := model.Slot{
		ID:        uuid.NewString(),
		FacultyID: facultyID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Slots.Create(ctx, &slot); err != nil {
		if err == repository.ErrSlotConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slot overlaps an existing slot"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create slot failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id":         slot.ID,
		"date":       slot.Date,
		"start_time": slot.StartTime,
		"end_time":   slot.EndTime,
		"status":     slot.Status,
	})
}

// DeleteSlot handles DELETE /v1/slots/:id. Ownership is checked
// inside the repository query, so a slot owned by someone else
// reports 404 rather than 403 and existence is not leaked. A booked
// slot cannot be deleted (403).
func (h *FacultyHandler) DeleteSlot(c echo.Context) error {
	facultyID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Slots.DeleteByIDAndFaculty(ctx, id, facultyID); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "cannot delete booked slot"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMySlots handles GET /v1/slots/mine. It returns every slot the
// caller owns regardless of status, newest date first.
func (h *FacultyHandler) ListMySlots(c echo.Context) error {
	facultyID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	slots, err := h.Slots.ListByFaculty(ctx, facultyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"slots": toSlotViews(slots)})
}
