// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// EmailFromContext returns the subject email placed by the RequireAuth gate.
func EmailFromContext(c echo.Context) (string, error) {
	if s, ok := c.Get("user_email").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("no authenticated email in context")
}

func RoleFromContext(c echo.Context) (string, error) {
	if s, ok := c.Get("user_role").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("no role in context")
}
