package model

import "time"

// Enrollment is the attendee registration of a user for the event.
// Every user has at most one enrollment; it is a precondition for
// buying a ticket and therefore for booking a room.
type Enrollment struct {
    ID        uint64    // enrollments.id
    UserID    uint64    // enrollments.user_id
    Name      string    // enrollments.name
    CPF       string    // enrollments.cpf
    Birthday  time.Time // enrollments.birthday
    Phone     string    // enrollments.phone
    Address   *Address  // addresses row, nil when none was registered
    CreatedAt time.Time // enrollments.created_at
    UpdatedAt time.Time // enrollments.updated_at
}

// Address is the postal address attached to an enrollment.
type Address struct {
    ID            uint64  // addresses.id
    EnrollmentID  uint64  // addresses.enrollment_id
    CEP           string  // addresses.cep
    Street        string  // addresses.street
    City          string  // addresses.city
    State         string  // addresses.state
    Number        string  // addresses.number
    Neighborhood  string  // addresses.neighborhood
    AddressDetail *string // addresses.address_detail (nullable)
}
