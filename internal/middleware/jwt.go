package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "context"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/conference-booking/internal/utils"
)

// SessionLookup resolves a bearer token to the user owning its session.
// *repository.SessionRepo implements it.
type SessionLookup interface {
    UserIDByToken(ctx context.Context, token string) (uint64, error)
}

// Context keys set by JWTAuth.
const (
    ctxUserID = "user_id"
    ctxToken  = "token"
)

// JWTAuth returns an Echo middleware that accepts a request only when it
// carries a Bearer token that verifies against secret and for which a
// session row exists.  The user id from the token's subject must match
// the session owner.  On success the user id (uint64) and raw token are
// stored in the context; handlers read them with UserID and Token.
func JWTAuth(secret string, sessions SessionLookup) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            userID, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            owner, err := sessions.UserIDByToken(c.Request().Context(), raw)
            if err != nil || owner != userID {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session for token"})
            }

            c.Set(ctxUserID, userID)
            c.Set(ctxToken, raw)
            return next(c)
        }
    }
}
