package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/conference-booking/internal/model"
)

// BookingRepo persists hotel bookings.  Writes that change which room a
// booking occupies run inside a transaction that holds the target
// room's row lock (see RoomRepo.LockOccupancyTx), so the capacity check
// and the write are a single atomic step.
type BookingRepo struct {
    db    *sql.DB
    rooms *RoomRepo
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB, rooms *RoomRepo) *BookingRepo {
    return &BookingRepo{db: db, rooms: rooms}
}

// AdmitFunc inspects the locked room right before a booking is placed
// in it.  Returning an error aborts the transaction and the error is
// passed back to the caller unchanged.
type AdmitFunc func(occ model.RoomOccupancy) error

// MoveFunc is like AdmitFunc but also receives the locked booking that
// is about to be moved.
type MoveFunc func(current model.Booking, occ model.RoomOccupancy) error

// FindByUserID returns the first booking owned by the user together
// with its room.  ErrBookingNotFound is returned when the user has none.
func (r *BookingRepo) FindByUserID(ctx context.Context, userID uint64) (model.BookingWithRoom, error) {
    const q = `SELECT b.id, b.user_id, b.room_id, b.created_at, b.updated_at,
                      ` + roomColumns + `
               FROM bookings b
               JOIN rooms r ON r.id = b.room_id
               WHERE b.user_id = ?
               ORDER BY b.id
               LIMIT 1`
    var bw model.BookingWithRoom
    err := r.db.QueryRowContext(ctx, q, userID).Scan(
        &bw.ID, &bw.UserID, &bw.RoomID, &bw.CreatedAt, &bw.UpdatedAt,
        &bw.Room.ID, &bw.Room.Name, &bw.Room.Capacity, &bw.Room.HotelID,
        &bw.Room.CreatedAt, &bw.Room.UpdatedAt,
    )
    if errors.Is(err, sql.ErrNoRows) {
        return model.BookingWithRoom{}, ErrBookingNotFound
    }
    return bw, err
}

// FindByID returns a booking by id.  ErrBookingNotFound is returned when
// it does not exist.
func (r *BookingRepo) FindByID(ctx context.Context, id uint64) (model.Booking, error) {
    var b model.Booking
    err := r.db.QueryRowContext(ctx,
        "SELECT id, user_id, room_id, created_at, updated_at FROM bookings WHERE id = ? LIMIT 1", id).
        Scan(&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Booking{}, ErrBookingNotFound
    }
    return b, err
}

// CreateInRoom locks the room, lets admit decide whether one more
// booking fits and inserts the booking, all in one transaction.  It
// returns the id of the new booking.  ErrRoomNotFound is returned when
// the room does not exist.
func (r *BookingRepo) CreateInRoom(ctx context.Context, userID, roomID uint64, admit AdmitFunc) (uint64, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return 0, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    occ, err := r.rooms.LockOccupancyTx(ctx, tx, roomID)
    if err != nil {
        return 0, err
    }
    if err := admit(occ); err != nil {
        return 0, err
    }
    res, err := tx.ExecContext(ctx,
        "INSERT INTO bookings (user_id, room_id) VALUES (?, ?)", userID, roomID)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    if err := tx.Commit(); err != nil {
        return 0, err
    }
    committed = true
    return uint64(id), nil
}

// MoveToRoom locks the booking and the destination room, lets check
// decide whether the move is allowed and then reassigns the booking's
// room in the same transaction.  ErrBookingNotFound and ErrRoomNotFound
// are returned for missing rows.
func (r *BookingRepo) MoveToRoom(ctx context.Context, bookingID, roomID uint64, check MoveFunc) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    var current model.Booking
    err = tx.QueryRowContext(ctx,
        "SELECT id, user_id, room_id, created_at, updated_at FROM bookings WHERE id = ? FOR UPDATE", bookingID).
        Scan(&current.ID, &current.UserID, &current.RoomID, &current.CreatedAt, &current.UpdatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return ErrBookingNotFound
    }
    if err != nil {
        return err
    }
    occ, err := r.rooms.LockOccupancyTx(ctx, tx, roomID)
    if err != nil {
        return err
    }
    if err := check(current, occ); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx,
        "UPDATE bookings SET room_id = ?, updated_at = NOW() WHERE id = ?", roomID, bookingID); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
