package model

import "time"

// Room represents a hotel room that attendees can book.  The number of
// current bookings is not stored on the row; it is derived by counting
// the bookings that reference the room.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – room label shown to attendees (e.g. "101").
//  Capacity  – maximum number of bookings the room accepts.
//  HotelID   – hotel the room belongs to.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Room struct {
    ID        uint64    // rooms.id
    Name      string    // rooms.name
    Capacity  uint32    // rooms.capacity
    HotelID   uint64    // rooms.hotel_id
    CreatedAt time.Time // rooms.created_at
    UpdatedAt time.Time // rooms.updated_at
}

// RoomOccupancy pairs a room with the number of bookings currently
// pointing at it.
type RoomOccupancy struct {
    Room     Room
    Bookings uint32
}

// IsFull reports whether no further booking fits in the room.
func (o RoomOccupancy) IsFull() bool {
    return o.Bookings >= o.Room.Capacity
}
