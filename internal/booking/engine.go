// Package booking implements the available-to-booked slot
// transition: meeting-link acquisition with fallback, the
// conditional status update that resolves booking races, and the
// derived add-to-calendar link.
package booking

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/harshithcodes/assignment-scheduler/internal/meeting"
	"github.com/harshithcodes/assignment-scheduler/internal/model"
	"github.com/harshithcodes/assignment-scheduler/internal/repository"
)

// Engine performs slot bookings. Clock and Rand are injected so
// tests can pin timestamps and the fallback link. ProvisionTimeout
// bounds the external conferencing call; the fallback absorbs any
// failure, so booking latency has a hard upper bound.
type Engine struct {
	Slots            *repository.SlotRepo
	Users            *repository.UserRepo
	Meetings         meeting.Provisioner
	FallbackHost     string
	ProvisionTimeout time.Duration
	Clock            func() time.Time
	Rand             *rand.Rand
}

// NewEngine constructs an Engine with real time and randomness.
func NewEngine(slots *repository.SlotRepo, users *repository.UserRepo, prov meeting.Provisioner, fallbackHost string, provisionTimeout time.Duration) *Engine {
	if slots == nil || users == nil || prov == nil {
		panic("nil dependency passed to NewEngine")
	}
	return &Engine{
		Slots:            slots,
		Users:            users,
		Meetings:         prov,
		FallbackHost:     fallbackHost,
		ProvisionTimeout: provisionTimeout,
		Clock:            func() time.Time { return time.Now().UTC() },
		Rand:             rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Result is the outcome of a successful booking: the slot joined
// with both profiles, and the derived add-to-calendar deep link.
type Result struct {
	Slot        model.SlotDetail
	CalendarURL string
}

// Book transitions the slot with the given id to booked on behalf of
// the scholar. Steps, in order:
//
//  1. Fetch the slot filtered by id AND status=available. A missing
//     row (never existed, or lost race) is ErrSlotUnavailable, and so
//     is a slot whose window has already passed.
//  2. Acquire a meeting link from the provisioner under a deadline;
//     on any failure degrade to a generated placeholder link.
//  3. Conditionally update the row (id AND status=available) setting
//     status, scholar, notes and link. This is the sole durable
//     mutation and the arbiter when bookings race.
//  4. Re-fetch the slot joined with faculty and scholar profiles.
//
// Validation failures surface before the mutation; the provisioner
// failure never surfaces at all.
func (e *Engine) Book(ctx context.Context, slotID string, scholar model.User, notes string) (Result, error) {
	slot, err := e.Slots.GetAvailable(ctx, slotID)
	if err != nil {
		return Result{}, err
	}

	startUTC, endUTC, err := slotWindowUTC(slot)
	if err != nil {
		return Result{}, err
	}
	if !endUTC.After(e.Clock()) {
		return Result{}, repository.ErrSlotUnavailable
	}

	faculty, err := e.Users.GetByID(ctx, slot.FacultyID)
	if err != nil {
		return Result{}, err
	}

	summary := fmt.Sprintf("Meeting: %s / %s", faculty.Name, scholar.Name)
	description := fmt.Sprintf("Slot booked by %s (%s) with %s (%s).", scholar.Name, scholar.Email, faculty.Name, faculty.Email)
	if notes != "" {
		description += "\nNotes: " + notes
	}

	link := e.provisionLink(ctx, meeting.Request{
		Summary:     summary,
		Description: description,
		StartUTC:    startUTC,
		EndUTC:      endUTC,
		Attendees:   []string{faculty.Email, scholar.Email},
	})

	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}
	if err := e.Slots.Book(ctx, slotID, scholar.ID, notesPtr, link); err != nil {
		return Result{}, err
	}

	detail, err := e.Slots.GetDetail(ctx, slotID)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Slot:        detail,
		CalendarURL: meeting.CalendarEventURL(summary, description+"\nJoin: "+link, startUTC, endUTC, []string{faculty.Email, scholar.Email}),
	}, nil
}

// provisionLink asks the external provisioner for a join link and
// falls back to a generated placeholder on any failure. Availability
// over fidelity: a degraded link beats a failed booking.
func (e *Engine) provisionLink(ctx context.Context, req meeting.Request) string {
	callCtx, cancel := context.WithTimeout(ctx, e.ProvisionTimeout)
	defer cancel()
	ev, err := e.Meetings.CreateMeeting(callCtx, req)
	if err != nil {
		log.Printf("booking: meeting provisioning failed, using fallback link: %v", err)
		return meeting.FallbackLink(e.FallbackHost, e.Rand)
	}
	return ev.MeetingLink
}

// slotWindowUTC combines the slot's date and times of day into UTC
// timestamps for the provisioner and the calendar link.
func slotWindowUTC(s model.Slot) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02 15:04:05", s.Date+" "+s.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse("2006-01-02 15:04:05", s.Date+" "+s.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start.UTC(), end.UTC(), nil
}
