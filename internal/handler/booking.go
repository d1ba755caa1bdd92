package handler

import (
    "context"
    "errors"
    "math"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/conference-booking/internal/middleware"
    "github.com/iliyamo/conference-booking/internal/service"
)

// BookingService is the subset of *service.BookingService used by the
// handler.
type BookingService interface {
    GetOneByUserID(ctx context.Context, userID uint64) (service.BookingView, error)
    CreateBooking(ctx context.Context, userID, roomID uint64) (uint64, error)
    UpdateBooking(ctx context.Context, bookingID, userID, roomID uint64) (uint64, error)
}

// BookingHandler serves the /booking endpoints.  All methods assume that
// JWTAuth has already run.
type BookingHandler struct {
    Bookings BookingService
}

func NewBookingHandler(s BookingService) *BookingHandler {
    return &BookingHandler{Bookings: s}
}

// ----- DTOs -----

type bookingReq struct {
    RoomID *float64 `json:"roomId" validate:"required"`
}

type roomResp struct {
    ID        uint64    `json:"id"`
    Name      string    `json:"name"`
    Capacity  uint32    `json:"capacity"`
    HotelID   uint64    `json:"hotelId"`
    CreatedAt time.Time `json:"createdAt"`
    UpdatedAt time.Time `json:"updatedAt"`
}

type bookingResp struct {
    ID   uint64   `json:"id"`
    Room roomResp `json:"Room"`
}

type bookingIDResp struct {
    BookingID uint64 `json:"bookingId"`
}

// GetBooking handles GET /booking.  It returns the caller's booking and
// its room, 404 when the caller has none.
func (h *BookingHandler) GetBooking(c echo.Context) error {
    userID, ok := middleware.UserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    view, err := h.Bookings.GetOneByUserID(c.Request().Context(), userID)
    if err != nil {
        return respondError(c, err, http.StatusNotFound)
    }
    r := view.Room
    return c.JSON(http.StatusOK, bookingResp{
        ID: view.ID,
        Room: roomResp{
            ID:        r.ID,
            Name:      r.Name,
            Capacity:  r.Capacity,
            HotelID:   r.HotelID,
            CreatedAt: r.CreatedAt,
            UpdatedAt: r.UpdatedAt,
        },
    })
}

// CreateBooking handles POST /booking with body {"roomId": number}.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
    userID, ok := middleware.UserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    roomID, err := bindRoomID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    id, err := h.Bookings.CreateBooking(c.Request().Context(), userID, roomID)
    if err != nil {
        return respondError(c, err, http.StatusBadRequest)
    }
    return c.JSON(http.StatusOK, bookingIDResp{BookingID: id})
}

// UpdateBooking handles PUT /booking/:bookingId with body {"roomId": number}.
func (h *BookingHandler) UpdateBooking(c echo.Context) error {
    userID, ok := middleware.UserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    bookingID, err := strconv.ParseUint(c.Param("bookingId"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    roomID, err := bindRoomID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    id, err := h.Bookings.UpdateBooking(c.Request().Context(), bookingID, userID, roomID)
    if err != nil {
        return respondError(c, err, http.StatusBadRequest)
    }
    return c.JSON(http.StatusOK, bookingIDResp{BookingID: id})
}

var errInvalidBody = errors.New("roomId must be a number")

// bindRoomID decodes and validates the request body shared by create and
// update.  Any JSON number is accepted; one that cannot be a room id
// (negative, fractional, out of range) becomes 0, which matches no room.
func bindRoomID(c echo.Context) (uint64, error) {
    var req bookingReq
    if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
        return 0, errInvalidBody
    }
    if err := c.Validate(&req); err != nil {
        return 0, errInvalidBody
    }
    return roomIDFrom(*req.RoomID), nil
}

func roomIDFrom(n float64) uint64 {
    if n < 1 || n != math.Trunc(n) || n >= math.MaxUint64 {
        return 0
    }
    return uint64(n)
}

// respondError writes the status carried by a service rejection, or the
// endpoint's fallback status for anything else.
func respondError(c echo.Context, err error, fallback int) error {
    var appErr *service.AppError
    if errors.As(err, &appErr) {
        return c.JSON(appErr.Status, echo.Map{"error": appErr.Message})
    }
    c.Logger().Errorf("booking: %s %s: %v", c.Request().Method, c.Path(), err)
    return c.JSON(fallback, echo.Map{"error": http.StatusText(fallback)})
}
