package service

import "net/http"

// AppError is a business-rule rejection raised by the service.  Name is
// stable and can be matched by callers; Status is the HTTP status the
// failure maps to.
type AppError struct {
	Name    string
	Message string
	Status  int
}

func (e *AppError) Error() string { return e.Name + ": " + e.Message }

// Error names.
const (
	NameNotFound      = "NotFoundError"
	NameForbidden     = "Forbidden"
	NameOutOfCapacity = "OutOfCapacity"
)

// NotFoundError reports that the requested booking or room does not exist.
func NotFoundError() *AppError {
	return &AppError{Name: NameNotFound, Message: "No result for this search!", Status: http.StatusNotFound}
}

// ForbiddenError reports that the caller may not perform the operation:
// no qualifying ticket, or a booking that is missing or owned by someone
// else.
func ForbiddenError() *AppError {
	return &AppError{Name: NameForbidden, Message: "User must have a paid ticket for an in-person event", Status: http.StatusForbidden}
}

// OutOfCapacityError reports that the room holds as many bookings as its
// capacity allows.  The room exists, so it maps to 403 rather than 404.
func OutOfCapacityError() *AppError {
	return &AppError{Name: NameOutOfCapacity, Message: "This room is already out of capacity!", Status: http.StatusForbidden}
}
