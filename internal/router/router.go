package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-booking/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers sign-in and sign-out under /auth.  Sign-in is
// open; sign-out needs the token it revokes, so it runs behind auth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, auth echo.MiddlewareFunc) {
	g := e.Group("/auth")
	g.POST("/sign-in", a.SignIn)
	g.POST("/sign-out", a.SignOut, auth)
}

// RegisterBooking registers the /booking endpoints.  auth must reject
// requests without a valid session; extra middleware (rate limiting,
// caching) runs after it in the given order.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, auth echo.MiddlewareFunc, extra ...echo.MiddlewareFunc) {
	g := e.Group("/booking", append([]echo.MiddlewareFunc{auth}, extra...)...)
	g.GET("", h.GetBooking)
	g.GET("/", h.GetBooking)
	g.POST("", h.CreateBooking)
	g.POST("/", h.CreateBooking)
	g.PUT("/:bookingId", h.UpdateBooking)
}
