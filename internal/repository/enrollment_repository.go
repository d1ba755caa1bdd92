package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/conference-booking/internal/model"
)

// EnrollmentRepo reads attendee enrollments.
type EnrollmentRepo struct{ db *sql.DB }

func NewEnrollmentRepo(db *sql.DB) *EnrollmentRepo { return &EnrollmentRepo{db: db} }

// FindWithAddressByUserID fetches the user's enrollment and, when one
// was registered, its address.
func (r *EnrollmentRepo) FindWithAddressByUserID(ctx context.Context, userID uint64) (model.Enrollment, error) {
    const q = `SELECT e.id, e.user_id, e.name, e.cpf, e.birthday, e.phone, e.created_at, e.updated_at,
                      a.id, a.cep, a.street, a.city, a.state, a.number, a.neighborhood, a.address_detail
               FROM enrollments e
               LEFT JOIN addresses a ON a.enrollment_id = e.id
               WHERE e.user_id = ?
               LIMIT 1`
    var (
        e            model.Enrollment
        addrID       sql.NullInt64
        cep, street  sql.NullString
        city, state  sql.NullString
        number, hood sql.NullString
        detail       sql.NullString
    )
    err := r.db.QueryRowContext(ctx, q, userID).Scan(
        &e.ID, &e.UserID, &e.Name, &e.CPF, &e.Birthday, &e.Phone, &e.CreatedAt, &e.UpdatedAt,
        &addrID, &cep, &street, &city, &state, &number, &hood, &detail,
    )
    if errors.Is(err, sql.ErrNoRows) {
        return model.Enrollment{}, ErrEnrollmentNotFound
    }
    if err != nil {
        return model.Enrollment{}, err
    }
    if addrID.Valid {
        e.Address = &model.Address{
            ID:           uint64(addrID.Int64),
            EnrollmentID: e.ID,
            CEP:          cep.String,
            Street:       street.String,
            City:         city.String,
            State:        state.String,
            Number:       number.String,
            Neighborhood: hood.String,
        }
        if detail.Valid {
            d := detail.String
            e.Address.AddressDetail = &d
        }
    }
    return e, nil
}
