// Package queue defines message payloads exchanged over the message broker
// together with the publisher and the audit-log consumer.
package queue

// Event names carried in BookingEvent.Event.
const (
    EventBookingCreated = "booking.created"
    EventBookingUpdated = "booking.updated"
)

// BookingEvent is published after a booking has been created or moved to
// another room.  It carries enough information for downstream consumers
// to log or notify without querying the primary database.
type BookingEvent struct {
    Event      string `json:"event"`
    BookingID  uint64 `json:"booking_id"`
    UserID     uint64 `json:"user_id"`
    RoomID     uint64 `json:"room_id"`
    OccurredAt string `json:"occurred_at"`
}
