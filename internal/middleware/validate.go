package middleware

import (
    "net/http"
    "reflect"
    "strings"

    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to echo.Validator so handlers
// can call c.Validate on bound request bodies.
type Validator struct {
    v *validator.Validate
}

// NewValidator returns a Validator reading the `validate` struct tag.
func NewValidator() *Validator {
    v := validator.New(validator.WithRequiredStructEnabled())
    // Report fields by their JSON names so clients see "roomId", not "RoomID".
    v.RegisterTagNameFunc(func(fld reflect.StructField) string {
        name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
        if name == "-" {
            return ""
        }
        return name
    })
    return &Validator{v: v}
}

// Validate implements echo.Validator.  Failures are returned as a 400
// HTTPError listing the offending fields.
func (cv *Validator) Validate(i interface{}) error {
    if err := cv.v.Struct(i); err != nil {
        if verrs, ok := err.(validator.ValidationErrors); ok {
            fields := make([]string, 0, len(verrs))
            for _, fe := range verrs {
                fields = append(fields, fe.Field())
            }
            return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"error": "invalid body", "fields": fields})
        }
        return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    return nil
}
