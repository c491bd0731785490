package model

import "time"

// Slot statuses. A slot is created `available`, moves to `booked`
// exactly once when a scholar claims it, and may later be marked
// `completed` or `cancelled` by administrative action. Only
// available and booked slots occupy their interval for the purpose
// of overlap checks.
const (
	SlotAvailable = "available"
	SlotBooked    = "booked"
	SlotCancelled = "cancelled"
	SlotCompleted = "completed"
)

// ValidSlotStatus reports whether s is a recognized slot status.
func ValidSlotStatus(s string) bool {
	switch s {
	case SlotAvailable, SlotBooked, SlotCancelled, SlotCompleted:
		return true
	}
	return false
}

// Slot represents an availability window published by a faculty
// member, stored in the `slots` table. Date and the two times of
// day are kept as strings in the canonical DATE / TIME column
// formats ("2006-01-02" and "15:04:05"); times in that form order
// lexicographically, which the overlap query relies on.
//
// Fields:
//  ID          – UUID primary key.
//  FacultyID   – owning faculty user (required).
//  ScholarID   – occupying scholar; set exactly when the slot is
//                booked (or completed, reachable only via booked).
//  Date        – calendar date of the window.
//  StartTime   – start of the window, inclusive.
//  EndTime     – end of the window, exclusive; must be after StartTime.
//  Status      – one of the Slot* constants above.
//  Notes       – free text supplied by the booking scholar.
//  MeetingLink – conferencing URL, populated once booked.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Slot struct {
	ID          string    // slots.id
	FacultyID   uint64    // slots.faculty_id
	ScholarID   *uint64   // slots.scholar_id (nullable)
	Date        string    // slots.slot_date
	StartTime   string    // slots.start_time
	EndTime     string    // slots.end_time
	Status      string    // slots.status
	Notes       *string   // slots.notes (nullable)
	MeetingLink *string   // slots.meeting_link (nullable)
	CreatedAt   time.Time // slots.created_at
	UpdatedAt   time.Time // slots.updated_at
}

// SlotDetail is a slot joined with profile projections of its
// faculty owner and, when booked, the occupying scholar. It is the
// shape returned to clients after a booking and by list endpoints.
type SlotDetail struct {
	Slot
	FacultyName    string  `json:"faculty_name"`
	FacultyEmail   string  `json:"faculty_email"`
	FacultyPicture string  `json:"faculty_picture,omitempty"`
	ScholarName    *string `json:"scholar_name,omitempty"`
	ScholarEmail   *string `json:"scholar_email,omitempty"`
}
