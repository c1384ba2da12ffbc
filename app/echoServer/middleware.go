// app/echoServer/middleware.go
package echoServer

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"bookcourier/service/identity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func RegisterMiddlewares(e *echo.Echo) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(Slog())
}

func Slog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			slog.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
				"ua", c.Request().UserAgent(),
			)
			return err
		}
	}
}

// RoleSource resolves the stored role for an authenticated email.
type RoleSource interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// RequireAuth is the first gate stage: it resolves the bearer credential
// through the identity verifier. On rejection it writes 401 and returns
// without invoking the next stage or the handler.
func RequireAuth(v identity.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, err := v.Authenticate(c.Request().Context(), c.Request().Header.Get("Authorization"))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
			}
			c.Set("user_email", email)
			return next(c)
		}
	}
}

// RequireRole is the second gate stage. A user row that is missing or whose
// role is not in roles rejects with 403; the handler never runs after a deny.
func RequireRole(rs RoleSource, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get("user_email").(string)
			if email == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
			}
			role, err := rs.RoleByEmail(c.Request().Context(), email)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
			}
			for _, want := range roles {
				if role == want {
					c.Set("user_role", role)
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		}
	}
}
