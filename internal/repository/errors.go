// Package repository defines error values that are reused across
// multiple repositories. These sentinels let handlers distinguish
// failure scenarios without inspecting driver errors. Not-found is
// reported as sql.ErrNoRows throughout, matching database/sql
// conventions.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource in a state that forbids it, such as deleting a booked
// slot. Handlers should translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrSlotConflict is returned when a new slot's interval overlaps an
// existing slot for the same faculty and date. Handlers should
// translate this into an HTTP 409 response.
var ErrSlotConflict = errors.New("slot overlaps an existing slot")

// ErrSlotUnavailable is returned when a booking targets a slot that
// is not (or no longer) available, including losing a booking race.
// Handlers should translate this into an HTTP 404 response.
var ErrSlotUnavailable = errors.New("slot is not available")

// ErrInvalidRole is returned when a role value outside the
// scholar/faculty/admin enumeration is supplied.
var ErrInvalidRole = errors.New("invalid role")

// ErrSelfRoleChange is returned when a caller attempts to change the
// role of their own account. This is rejected for every role,
// including admin, to rule out privilege self-escalation and
// accidental lockout.
var ErrSelfRoleChange = errors.New("cannot change own role")
