package repository

import (
	"context"
	"database/sql"

	"github.com/harshithcodes/assignment-scheduler/internal/model"
)

// SlotRepo provides persistence for faculty availability slots. All
// cross-request ordering guarantees come from the query shapes used
// here rather than application locks: creation locks the conflicting
// interval rows inside a transaction, and booking is a conditional
// update keyed on the current status so at most one booking request
// can win per slot.
type SlotRepo struct{ db *sql.DB }

// NewSlotRepo returns a SlotRepo bound to the given database.
func NewSlotRepo(db *sql.DB) *SlotRepo { return &SlotRepo{db: db} }

// DB exposes the underlying handle for callers that need to open a
// transaction spanning repository calls.
func (r *SlotRepo) DB() *sql.DB { return r.db }

// slotColumns formats date and times as strings so scans are
// independent of driver DATE/TIME handling.
const slotColumns = `id, faculty_id, scholar_id,
       DATE_FORMAT(slot_date, '%Y-%m-%d'),
       TIME_FORMAT(start_time, '%H:%i:%s'),
       TIME_FORMAT(end_time, '%H:%i:%s'),
       status, notes, meeting_link, created_at, updated_at`

func scanSlot(s *model.Slot, scan func(dest ...interface{}) error) error {
	var scholarID sql.NullInt64
	var notes, link sql.NullString
	err := scan(&s.ID, &s.FacultyID, &scholarID, &s.Date, &s.StartTime, &s.EndTime,
		&s.Status, &notes, &link, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return err
	}
	if scholarID.Valid {
		v := uint64(scholarID.Int64)
		s.ScholarID = &v
	}
	if notes.Valid {
		v := notes.String
		s.Notes = &v
	}
	if link.Valid {
		v := link.String
		s.MeetingLink = &v
	}
	return nil
}

// Create inserts a new available slot after verifying that its
// interval does not overlap any live slot of the same faculty on the
// same date. The check and the insert run in one transaction and the
// check takes FOR UPDATE locks over the candidate rows, so two
// concurrent creations for overlapping ranges serialize instead of
// both passing the check. Returns ErrSlotConflict on overlap.
//
// Only available and booked slots block an interval; cancelled and
// completed slots do not occupy their range.
func (r *SlotRepo) Create(ctx context.Context, slot *model.Slot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Overlap exists when the new interval starts before an existing
	// one ends and ends after it starts.
	const overlapQ = `SELECT id FROM slots
	                  WHERE faculty_id = ? AND slot_date = ?
	                    AND status IN ('available','booked')
	                    AND start_time < ? AND end_time > ?
	                  LIMIT 1 FOR UPDATE`
	var existing string
	err = tx.QueryRowContext(ctx, overlapQ, slot.FacultyID, slot.Date, slot.EndTime, slot.StartTime).Scan(&existing)
	if err == nil {
		return ErrSlotConflict
	}
	if err != sql.ErrNoRows {
		return err
	}

	const insertQ = `INSERT INTO slots (id, faculty_id, slot_date, start_time, end_time, status)
	                 VALUES (?,?,?,?,?,?)`
	if _, err := tx.ExecContext(ctx, insertQ,
		slot.ID, slot.FacultyID, slot.Date, slot.StartTime, slot.EndTime, model.SlotAvailable); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	slot.Status = model.SlotAvailable
	return nil
}

// GetAvailable fetches a slot only if it is currently available.
// The status filter folded into the query is the first half of the
// booking race protection; ErrSlotUnavailable covers both a missing
// slot and one already claimed.
func (r *SlotRepo) GetAvailable(ctx context.Context, id string) (model.Slot, error) {
	var s model.Slot
	row := r.db.QueryRowContext(ctx,
		"SELECT "+slotColumns+" FROM slots WHERE id = ? AND status = ? LIMIT 1",
		id, model.SlotAvailable)
	if err := scanSlot(&s, row.Scan); err != nil {
		if err == sql.ErrNoRows {
			return model.Slot{}, ErrSlotUnavailable
		}
		return model.Slot{}, err
	}
	return s, nil
}

// Book transitions a slot from available to booked, assigning the
// scholar, notes and meeting link in a single conditional update.
// The status predicate makes the write safe under concurrency: of N
// racing bookings only one update matches a row, and the rest
// observe zero affected rows and get ErrSlotUnavailable.
func (r *SlotRepo) Book(ctx context.Context, id string, scholarID uint64, notes *string, meetingLink string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE slots
		 SET status = ?, scholar_id = ?, notes = ?, meeting_link = ?, updated_at = UTC_TIMESTAMP()
		 WHERE id = ? AND status = ?`,
		model.SlotBooked, scholarID, notes, meetingLink, id, model.SlotAvailable)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSlotUnavailable
	}
	return nil
}

const slotDetailQuery = `SELECT s.id, s.faculty_id, s.scholar_id,
       DATE_FORMAT(s.slot_date, '%Y-%m-%d'),
       TIME_FORMAT(s.start_time, '%H:%i:%s'),
       TIME_FORMAT(s.end_time, '%H:%i:%s'),
       s.status, s.notes, s.meeting_link, s.created_at, s.updated_at,
       f.name, f.email, f.picture, sc.name, sc.email
FROM slots s
JOIN users f ON f.id = s.faculty_id
LEFT JOIN users sc ON sc.id = s.scholar_id`

func scanSlotDetail(d *model.SlotDetail, scan func(dest ...interface{}) error) error {
	var scholarID sql.NullInt64
	var notes, link sql.NullString
	var scholarName, scholarEmail sql.NullString
	err := scan(&d.ID, &d.FacultyID, &scholarID, &d.Date, &d.StartTime, &d.EndTime,
		&d.Status, &notes, &link, &d.CreatedAt, &d.UpdatedAt,
		&d.FacultyName, &d.FacultyEmail, &d.FacultyPicture, &scholarName, &scholarEmail)
	if err != nil {
		return err
	}
	if scholarID.Valid {
		v := uint64(scholarID.Int64)
		d.ScholarID = &v
	}
	if notes.Valid {
		v := notes.String
		d.Notes = &v
	}
	if link.Valid {
		v := link.String
		d.MeetingLink = &v
	}
	if scholarName.Valid {
		v := scholarName.String
		d.ScholarName = &v
	}
	if scholarEmail.Valid {
		v := scholarEmail.String
		d.ScholarEmail = &v
	}
	return nil
}

// GetDetail returns a slot joined with the faculty profile and, when
// booked, the scholar profile. Returns sql.ErrNoRows when the slot
// does not exist.
func (r *SlotRepo) GetDetail(ctx context.Context, id string) (model.SlotDetail, error) {
	var d model.SlotDetail
	row := r.db.QueryRowContext(ctx, slotDetailQuery+" WHERE s.id = ? LIMIT 1", id)
	if err := scanSlotDetail(&d, row.Scan); err != nil {
		return model.SlotDetail{}, err
	}
	return d, nil
}

// ListAvailableByFaculty returns a faculty's open slots ordered by
// date and start time. Used by scholars browsing availability.
func (r *SlotRepo) ListAvailableByFaculty(ctx context.Context, facultyID uint64) ([]model.SlotDetail, error) {
	return r.listDetails(ctx,
		slotDetailQuery+" WHERE s.faculty_id = ? AND s.status = ? ORDER BY s.slot_date, s.start_time",
		facultyID, model.SlotAvailable)
}

// ListByFaculty returns every slot owned by a faculty regardless of
// status, newest date first. Used by the owner's own dashboard.
func (r *SlotRepo) ListByFaculty(ctx context.Context, facultyID uint64) ([]model.SlotDetail, error) {
	return r.listDetails(ctx,
		slotDetailQuery+" WHERE s.faculty_id = ? ORDER BY s.slot_date DESC, s.start_time",
		facultyID)
}

func (r *SlotRepo) listDetails(ctx context.Context, query string, args ...interface{}) ([]model.SlotDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]model.SlotDetail, 0)
	for rows.Next() {
		var d model.SlotDetail
		if err := scanSlotDetail(&d, rows.Scan); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// DeleteByIDAndFaculty removes a slot owned by the calling faculty.
// Ownership is folded into the lookup so a slot belonging to someone
// else is indistinguishable from a missing one (sql.ErrNoRows), which
// avoids leaking existence to non-owners. A booked slot cannot be
// deleted and yields ErrForbidden.
func (r *SlotRepo) DeleteByIDAndFaculty(ctx context.Context, id string, facultyID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var status string
	err = tx.QueryRowContext(ctx,
		"SELECT status FROM slots WHERE id = ? AND faculty_id = ? FOR UPDATE",
		id, facultyID).Scan(&status)
	if err != nil {
		return err
	}
	if status == model.SlotBooked {
		return ErrForbidden
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM slots WHERE id = ?", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
