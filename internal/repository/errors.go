// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow the service layer to tell
// the different "missing row" and rule-violation cases apart without
// inspecting driver errors.
package repository

import "errors"

// ErrRoomNotFound is returned when no room matches the requested id.
var ErrRoomNotFound = errors.New("room not found")

// ErrBookingNotFound is returned when no booking matches the lookup.
var ErrBookingNotFound = errors.New("booking not found")

// ErrEnrollmentNotFound is returned when the user has not enrolled.
var ErrEnrollmentNotFound = errors.New("enrollment not found")

// ErrTicketNotFound is returned when the enrollment has no ticket.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrSessionNotFound is returned when no session holds the given token.
var ErrSessionNotFound = errors.New("session not found")
