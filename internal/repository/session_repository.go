package repository

import (
	"context"
	"database/sql"
	"errors"
)

// SessionRepo persists the tokens handed out at sign-in.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Create stores a session row for the user and token.
func (r *SessionRepo) Create(ctx context.Context, userID uint64, token string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO sessions (user_id, token) VALUES (?,?)",
		userID, token)
	return err
}

// UserIDByToken returns the owner of the session holding token.
func (r *SessionRepo) UserIDByToken(ctx context.Context, token string) (uint64, error) {
	var userID uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id FROM sessions WHERE token=? LIMIT 1",
		token).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrSessionNotFound
	}
	return userID, err
}

// DeleteByToken removes the session, logging its token out.
func (r *SessionRepo) DeleteByToken(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM sessions WHERE token=?", token)
	return err
}
