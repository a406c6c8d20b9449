package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edtrack/core/auth"
	"github.com/trezcool/edtrack/core/user"
)

const (
	authScheme     = "Bearer"
	contextUserKey = "user"
)

var errUsrNotFoundInCtx = errors.New("user object not found in echo.Context")

// bearerToken extracts the token of an `Authorization: Bearer <token>` header.
// ok is false when the header is missing or uses another scheme.
func bearerToken(r *http.Request) (token string, ok bool) {
	header := r.Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	scheme, param := header, ""
	if i := strings.IndexByte(header, ' '); i >= 0 {
		scheme, param = header[:i], header[i+1:]
	}
	if !strings.EqualFold(scheme, authScheme) {
		return "", false
	}
	return strings.TrimSpace(param), true
}

// authMiddleware resolves the bearer token to its user.User and stores it in the echo.Context.
func authMiddleware(tokens *auth.Tokens, svc *user.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token, ok := bearerToken(ctx.Request())
			if !ok {
				ctx.Response().Header().Set(echo.HeaderWWWAuthenticate, authScheme)
				return errNotAuthenticated
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				return err
			}

			usr, err := svc.GetByUsername(ctx.Request().Context(), claims.Subject)
			if err != nil {
				if err == user.ErrNotFound {
					return auth.NewSubjectError(claims.Subject)
				}
				return errors.Wrap(err, "finding token user")
			}

			ctx.Set(contextUserKey, usr)
			return next(ctx)
		}
	}
}

func getContextUser(ctx echo.Context) (user.User, error) {
	if usr, ok := ctx.Get(contextUserKey).(user.User); ok {
		return usr, nil
	}
	return user.User{}, errUsrNotFoundInCtx
}
