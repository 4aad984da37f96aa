package echo

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mohammadpnp/roster-import/internal/auth"
)

const credentialKey = "credential"

// RequireCredential rejects requests without a usable bearer token before any
// remote call is made.
func RequireCredential(errs *ErrorMapper) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cred, err := auth.FromHeader(c.Request().Header.Get(echo.HeaderAuthorization), time.Now())
			if err != nil {
				return errs.Fail(c, err)
			}
			c.Set(credentialKey, cred)
			return next(c)
		}
	}
}

func credentialFrom(c echo.Context) auth.Credential {
	cred, _ := c.Get(credentialKey).(auth.Credential)
	return cred
}
