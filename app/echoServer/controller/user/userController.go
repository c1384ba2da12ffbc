package user

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"bookcourier/model"
	userrepo "bookcourier/repository/user"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Repo userrepo.Repo
	V    *validator.Validate
	Log  *slog.Logger
}

type SetRoleReq struct {
	Role string `json:"role" validate:"required"`
}

// GET /v1/users  (admin)
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Repo.List(c.Request().Context())
	if err != nil {
		h.Log.Error("user list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// PATCH /v1/users/:id/role  (admin)
func (h *Controller) SetRole(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req SetRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}
	if !model.ValidRole(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown role"})
	}

	if err := h.Repo.SetRole(c.Request().Context(), id, model.Role(req.Role)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		h.Log.Error("user set role", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "role updated"})
}
