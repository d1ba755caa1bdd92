package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/conference-booking/internal/model"
)

// TicketRepo reads tickets together with their ticket type.
type TicketRepo struct{ db *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// FindByEnrollmentID returns the ticket bought under the enrollment.
// ErrTicketNotFound is returned when there is none.
func (r *TicketRepo) FindByEnrollmentID(ctx context.Context, enrollmentID uint64) (model.Ticket, error) {
    const q = `SELECT t.id, t.ticket_type_id, t.enrollment_id, t.status, t.created_at, t.updated_at,
                      tt.id, tt.name, tt.price, tt.is_remote, tt.includes_hotel, tt.created_at, tt.updated_at
               FROM tickets t
               JOIN ticket_types tt ON tt.id = t.ticket_type_id
               WHERE t.enrollment_id = ?
               ORDER BY t.id
               LIMIT 1`
    var t model.Ticket
    err := r.db.QueryRowContext(ctx, q, enrollmentID).Scan(
        &t.ID, &t.TicketTypeID, &t.EnrollmentID, &t.Status, &t.CreatedAt, &t.UpdatedAt,
        &t.TicketType.ID, &t.TicketType.Name, &t.TicketType.Price, &t.TicketType.IsRemote,
        &t.TicketType.IncludesHotel, &t.TicketType.CreatedAt, &t.TicketType.UpdatedAt,
    )
    if errors.Is(err, sql.ErrNoRows) {
        return model.Ticket{}, ErrTicketNotFound
    }
    return t, err
}
