package model

import "time"

// Ticket statuses as stored in tickets.status.
const (
    TicketStatusReserved = "RESERVED"
    TicketStatusPaid     = "PAID"
)

// TicketType describes the kind of ticket sold for the event.  Remote
// tickets never include accommodation; in-person tickets may or may
// not include a hotel stay.
type TicketType struct {
    ID            uint64    // ticket_types.id
    Name          string    // ticket_types.name
    Price         uint32    // ticket_types.price
    IsRemote      bool      // ticket_types.is_remote
    IncludesHotel bool      // ticket_types.includes_hotel
    CreatedAt     time.Time // ticket_types.created_at
    UpdatedAt     time.Time // ticket_types.updated_at
}

// Ticket is the ticket bought under an enrollment together with its type.
type Ticket struct {
    ID           uint64     // tickets.id
    TicketTypeID uint64     // tickets.ticket_type_id
    EnrollmentID uint64     // tickets.enrollment_id
    Status       string     // tickets.status (RESERVED | PAID)
    TicketType   TicketType // joined ticket_types row
    CreatedAt    time.Time  // tickets.created_at
    UpdatedAt    time.Time  // tickets.updated_at
}

// AllowsHotelBooking reports whether the ticket entitles its holder to
// reserve a hotel room: an in-person ticket that includes the hotel and
// has been paid.
func (t Ticket) AllowsHotelBooking() bool {
    return t.TicketType.IncludesHotel && !t.TicketType.IsRemote && t.Status == TicketStatusPaid
}
