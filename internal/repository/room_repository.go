package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/conference-booking/internal/model"
)

// RoomRepo provides read access to hotel rooms and their occupancy.
type RoomRepo struct {
    db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = `r.id, r.name, r.capacity, r.hotel_id, r.created_at, r.updated_at`

// LockOccupancyTx locks the room row for the rest of the transaction and
// then counts its bookings.  Every writer that changes the bookings of a
// room takes this lock first, so the count cannot change underneath the
// caller until the transaction ends.
func (r *RoomRepo) LockOccupancyTx(ctx context.Context, tx *sql.Tx, id uint64) (model.RoomOccupancy, error) {
    var occ model.RoomOccupancy
    err := tx.QueryRowContext(ctx,
        `SELECT `+roomColumns+` FROM rooms r WHERE r.id = ? FOR UPDATE`, id).
        Scan(&occ.Room.ID, &occ.Room.Name, &occ.Room.Capacity, &occ.Room.HotelID,
            &occ.Room.CreatedAt, &occ.Room.UpdatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return model.RoomOccupancy{}, ErrRoomNotFound
    }
    if err != nil {
        return model.RoomOccupancy{}, err
    }
    if err := tx.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM bookings WHERE room_id = ?`, id).Scan(&occ.Bookings); err != nil {
        return model.RoomOccupancy{}, err
    }
    return occ, nil
}
