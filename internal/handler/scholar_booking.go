// Scholar endpoint for booking an available slot. Route-level
// middleware restricts booking to the scholar role.
package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harshithcodes/assignment-scheduler/internal/booking"
	"github.com/harshithcodes/assignment-scheduler/internal/queue"
	"github.com/harshithcodes/assignment-scheduler/internal/repository"
	"github.com/harshithcodes/assignment-scheduler/internal/service"
)

// ScholarHandler bundles dependencies for booking operations.
type ScholarHandler struct {
	Engine *booking.Engine
	Users  *repository.UserRepo
}

func NewScholarHandler(engine *booking.Engine, users *repository.UserRepo) *ScholarHandler {
	if engine == nil || users == nil {
		panic("nil dependency passed to NewScholarHandler")
	}
	return &ScholarHandler{Engine: engine, Users: users}
}

type bookSlotReq struct {
	Notes string `json:"notes"`
}

// BookSlot handles POST /v1/slots/:id/book. The engine performs the
// available-to-booked transition; a slot that is missing or already
// claimed reports 404 in both cases. On success a slot.booked event
// is published to the broker; publish failures are ignored because
// the booking is already durable.
func (h *ScholarHandler) BookSlot(c echo.Context) error {
	scholarID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req bookSlotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	scholar, err := h.Users.GetByID(ctx, scholarID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	result, err := h.Engine.Book(ctx, id, scholar, strings.TrimSpace(req.Notes))
	if err != nil {
		if err == repository.ErrSlotUnavailable {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "slot is not available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}

	d := result.Slot
	link := ""
	if d.MeetingLink != nil {
		link = *d.MeetingLink
	}
	event := queue.SlotBookedEvent{
		SlotID:       d.ID,
		FacultyID:    d.FacultyID,
		FacultyName:  d.FacultyName,
		FacultyEmail: d.FacultyEmail,
		ScholarID:    scholar.ID,
		ScholarName:  scholar.Name,
		ScholarEmail: scholar.Email,
		Date:         d.Date,
		StartTime:    d.StartTime,
		EndTime:      d.EndTime,
		MeetingLink:  link,
		BookedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = service.PublishSlotBooked(pubCtx, event)
	}()

	return c.JSON(http.StatusOK, echo.Map{
		"slot":         toSlotView(d),
		"calendar_url": result.CalendarURL,
	})
}
