package librarian

import (
	"log/slog"
	"net/http"
	"strconv"

	"bookcourier/app/echoServer/jwtx"
	librariansvc "bookcourier/service/librarian"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc librariansvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/librarian
func (h *Controller) Apply(c echo.Context) error {
	email, err := jwtx.EmailFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}

	a, err := h.Svc.Apply(c.Request().Context(), email)
	if err != nil {
		switch librariansvc.Code(err) {
		case librariansvc.ErrAlreadyApplied:
			return c.JSON(http.StatusConflict, echo.Map{"message": "application already submitted"})
		case librariansvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		default:
			h.Log.Error("librarian apply", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, a)
}

// GET /v1/librarian  (admin)
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("librarian list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// PATCH /v1/librarian/:id  (admin)
func (h *Controller) Decide(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req DecideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}

	a, err := h.Svc.Decide(c.Request().Context(), id, req.Status == "approved")
	if err != nil {
		switch librariansvc.Code(err) {
		case librariansvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "application not found"})
		case librariansvc.ErrAlreadyDecided:
			return c.JSON(http.StatusConflict, echo.Map{"message": "application already decided"})
		default:
			h.Log.Error("librarian decide", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, a)
}
