package middleware

// identity.go holds accessors for the values JWTAuth stores in the Echo
// context.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// UserID returns the authenticated user id.  ok is false when JWTAuth did
// not run for the request.
func UserID(c echo.Context) (id uint64, ok bool) {
    id, ok = c.Get(ctxUserID).(uint64)
    return id, ok && id != 0
}

// Token returns the raw bearer token accepted by JWTAuth.
func Token(c echo.Context) string {
    s, _ := c.Get(ctxToken).(string)
    return s
}

// userKey returns the user id as a key component, or "anon" when the
// request is not authenticated.
func userKey(c echo.Context) string {
    if id, ok := UserID(c); ok {
        return strconv.FormatUint(id, 10)
    }
    return "anon"
}
