package handler

import (
	"time"

	"github.com/harshithcodes/assignment-scheduler/internal/model"
)

// slotView is the JSON shape for a slot returned to clients. The
// repository model carries no JSON tags; handlers map into this.
type slotView struct {
	ID             string    `json:"id"`
	FacultyID      uint64    `json:"faculty_id"`
	ScholarID      *uint64   `json:"scholar_id,omitempty"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	Status         string    `json:"status"`
	Notes          *string   `json:"notes,omitempty"`
	MeetingLink    *string   `json:"meeting_link,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	FacultyName    string    `json:"faculty_name"`
	FacultyEmail   string    `json:"faculty_email"`
	FacultyPicture string    `json:"faculty_picture,omitempty"`
	ScholarName    *string   `json:"scholar_name,omitempty"`
	ScholarEmail   *string   `json:"scholar_email,omitempty"`
}

func toSlotView(d model.SlotDetail) slotView {
	return slotView{
		ID:             d.ID,
		FacultyID:      d.FacultyID,
		ScholarID:      d.ScholarID,
		Date:           d.Date,
		StartTime:      d.StartTime,
		EndTime:        d.EndTime,
		Status:         d.Status,
		Notes:          d.Notes,
		MeetingLink:    d.MeetingLink,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		FacultyName:    d.FacultyName,
		FacultyEmail:   d.FacultyEmail,
		FacultyPicture: d.FacultyPicture,
		ScholarName:    d.ScholarName,
		ScholarEmail:   d.ScholarEmail,
	}
}

func toSlotViews(details []model.SlotDetail) []slotView {
	views := make([]slotView, 0, len(details))
	for _, d := range details {
		views = append(views, toSlotView(d))
	}
	return views
}
