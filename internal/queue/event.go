// Package queue defines message payloads exchanged over the message broker.
package queue

// SlotBookedEvent is published when a scholar successfully books a
// slot. It carries enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary
// database.
type SlotBookedEvent struct {
	SlotID       string `json:"slot_id"`
	FacultyID    uint64 `json:"faculty_id"`
	FacultyName  string `json:"faculty_name"`
	FacultyEmail string `json:"faculty_email"`
	ScholarID    uint64 `json:"scholar_id"`
	ScholarName  string `json:"scholar_name"`
	ScholarEmail string `json:"scholar_email"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	MeetingLink  string `json:"meeting_link"`
	BookedAt     string `json:"booked_at"`
}
