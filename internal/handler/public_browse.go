// Browse endpoints available to every authenticated user, whatever
// their role: the faculty directory and per-faculty availability.
// These are the read-heavy routes the response cache sits in front
// of.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harshithcodes/assignment-scheduler/internal/repository"
)

// BrowseHandler bundles dependencies for the read-only listings.
type BrowseHandler struct {
	Users *repository.UserRepo
	Slots *repository.SlotRepo
}

func NewBrowseHandler(users *repository.UserRepo, slots *repository.SlotRepo) *BrowseHandler {
	if users == nil || slots == nil {
		panic("nil repository passed to NewBrowseHandler")
	}
	return &BrowseHandler{Users: users, Slots: slots}
}

type facultyView struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

// ListFaculties handles GET /v1/faculties. It lists every user
// currently holding the faculty role.
func (h *BrowseHandler) ListFaculties(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	faculties, err := h.Users.ListFaculties(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]facultyView, 0, len(faculties))
	for _, f := range faculties {
		out = append(out, facultyView{ID: f.ID, Name: f.Name, Email: f.Email, Picture: f.Picture})
	}
	return c.JSON(http.StatusOK, echo.Map{"faculties": out})
}

// ListFacultySlots handles GET /v1/faculties/:id/slots. It returns
// the faculty's open slots ordered by date and start time.
func (h *BrowseHandler) ListFacultySlots(c echo.Context) error {
	facultyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || facultyID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid faculty id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	slots, err := h.Slots.ListAvailableByFaculty(ctx, facultyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"slots": toSlotViews(slots)})
}
