package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/conference-booking/internal/middleware"
    "github.com/iliyamo/conference-booking/internal/model"
    "github.com/iliyamo/conference-booking/internal/repository"
    "github.com/iliyamo/conference-booking/internal/utils"
)

// UserFinder looks users up by email.  *repository.UserRepo implements it.
type UserFinder interface {
    GetByEmail(ctx context.Context, email string) (model.User, error)
}

// SessionStore creates and removes sessions.  *repository.SessionRepo
// implements it.
type SessionStore interface {
    Create(ctx context.Context, userID uint64, token string) error
    DeleteByToken(ctx context.Context, token string) error
}

// AuthHandler issues and revokes the bearer tokens the booking routes
// require.
type AuthHandler struct {
    JWTSecret    string
    AccessTTLMin int
    Users        UserFinder
    Sessions     SessionStore
}

func NewAuthHandler(secret string, ttlMin int, u UserFinder, s SessionStore) *AuthHandler {
    return &AuthHandler{JWTSecret: secret, AccessTTLMin: ttlMin, Users: u, Sessions: s}
}

type signInReq struct {
    Email    string `json:"email" validate:"required,email"`
    Password string `json:"password" validate:"required"`
}

type signInUser struct {
    ID    uint64 `json:"id"`
    Email string `json:"email"`
}

type signInResp struct {
    User  signInUser `json:"user"`
    Token string     `json:"token"`
}

// SignIn handles POST /auth/sign-in.  It verifies the password, issues a
// token and records a session for it.
func (h *AuthHandler) SignIn(c echo.Context) error {
    var req signInReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if err := c.Validate(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByEmail(ctx, req.Email)
    if err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }

    access, err := utils.NewAccessToken(h.JWTSecret, u.ID, h.AccessTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
    }
    if err := h.Sessions.Create(ctx, u.ID, access.Token); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save session failed"})
    }
    return c.JSON(http.StatusOK, signInResp{
        User:  signInUser{ID: u.ID, Email: u.Email},
        Token: access.Token,
    })
}

// SignOut handles POST /auth/sign-out.  It deletes the session of the
// token used to authenticate the request, so the token stops working.
func (h *AuthHandler) SignOut(c echo.Context) error {
    token := middleware.Token(c)
    if token == "" {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    if err := h.Sessions.DeleteByToken(c.Request().Context(), token); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sign-out failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
