package model

import "time"

// User represents an account as stored in the `users` table.  The json
// tags are omitted because these structs are used internally by the
// repository layer; handlers define their own response types.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Email        string    // users.email
    PasswordHash string    // users.password
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// Session models an entry in the `sessions` table.  A bearer token is
// only honoured while a session row holding exactly that token exists,
// so deleting the row logs the user out even if the JWT has not expired.
type Session struct {
    ID        uint64    // sessions.id
    UserID    uint64    // sessions.user_id
    Token     string    // sessions.token
    CreatedAt time.Time // sessions.created_at
    UpdatedAt time.Time // sessions.updated_at
}
