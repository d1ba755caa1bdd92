package model

import "time"

// Booking records a user's reservation of a hotel room.  A user is
// expected to hold at most one booking; the room can be changed later
// but the booking itself is never deleted.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who owns the booking.
//  RoomID    – room currently reserved.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Booking struct {
    ID        uint64    // bookings.id
    UserID    uint64    // bookings.user_id
    RoomID    uint64    // bookings.room_id
    CreatedAt time.Time // bookings.created_at
    UpdatedAt time.Time // bookings.updated_at
}

// BookingWithRoom is a booking joined with the room it references.
type BookingWithRoom struct {
    Booking
    Room Room
}
