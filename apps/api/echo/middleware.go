package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// roleMiddleware lets through users holding exactly role; others get a 403 with message.
// Must run after authMiddleware.
func roleMiddleware(role, message string) echo.MiddlewareFunc {
	forbidden := echo.NewHTTPError(http.StatusForbidden, message)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := getContextUser(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context user")
			}
			if !usr.HasRole(role) {
				return forbidden
			}
			return next(ctx)
		}
	}
}
