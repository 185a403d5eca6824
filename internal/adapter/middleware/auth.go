package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"loan-origination/internal/domain/auth"
)

const callerKey = "loan.caller"

// TokenVerifier turns a raw bearer token into a caller identity.
type TokenVerifier interface {
	Verify(raw string) (auth.Caller, error)
}

// Authenticate requires `Authorization: Bearer <token>` and stores the
// verified caller on the echo context.
func Authenticate(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			caller, err := v.Verify(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			SetCaller(c, caller)
			return next(c)
		}
	}
}

// RequireRole rejects authenticated callers whose role is not listed.
func RequireRole(roles ...auth.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, ok := CallerFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			for _, r := range roles {
				if caller.Role == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "role " + string(caller.Role) + " may not access this resource"})
		}
	}
}

func SetCaller(c echo.Context, caller auth.Caller) { c.Set(callerKey, caller) }

func CallerFrom(c echo.Context) (auth.Caller, bool) {
	caller, ok := c.Get(callerKey).(auth.Caller)
	return caller, ok && caller.UserID != ""
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
