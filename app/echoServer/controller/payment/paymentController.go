package payment

import (
	"log/slog"
	"net/http"

	paymentsvc "bookcourier/service/payment"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc paymentsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/payments/checkout-session
func (h *Controller) CreateCheckout(c echo.Context) error {
	var req CreateCheckoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	out, err := h.Svc.CreateCheckout(c.Request().Context(), paymentsvc.CheckoutReq{
		OrderID:       req.OrderID,
		BookName:      req.BookName,
		AmountCents:   req.AmountCents,
		Currency:      req.Currency,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		switch paymentsvc.Code(err) {
		case paymentsvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		case paymentsvc.ErrUpstream:
			h.Log.Error("checkout session create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "payment processor unavailable"})
		default:
			h.Log.Error("checkout session create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"url": out.URL, "session_id": out.SessionID})
}

// PATCH /v1/payments/success?session_id=
func (h *Controller) PaymentSuccess(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "missing session_id"})
	}

	res, err := h.Svc.Reconcile(c.Request().Context(), sessionID)
	if err != nil {
		switch paymentsvc.Code(err) {
		case paymentsvc.ErrOrderNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "order not found"})
		case paymentsvc.ErrOrderNotPending:
			return c.JSON(http.StatusConflict, echo.Map{"message": "order not pending"})
		case paymentsvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad request"})
		case paymentsvc.ErrUpstream:
			h.Log.Error("reconcile upstream", "session_id", sessionID, "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "payment processor unavailable"})
		default:
			h.Log.Error("reconcile", "session_id", sessionID, "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	rid := c.Response().Header().Get(echo.HeaderXRequestID)
	if res.AlreadyReconciled {
		// replay: caller-visible success, but keep it distinguishable in logs
		h.Log.Info("reconcile replay", "session_id", sessionID, "req_id", rid)
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "order already exist",
		})
	}
	if !res.Settled {
		h.Log.Info("reconcile unsettled session acknowledged", "session_id", sessionID, "req_id", rid)
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	}

	h.Log.Info("reconcile settled",
		"session_id", sessionID,
		"tracking_id", res.TrackingID,
		"order_updated", res.OrderUpdated,
		"payment_inserted", res.PaymentInserted,
		"req_id", rid,
	)
	return c.JSON(http.StatusOK, echo.Map{
		"success":          true,
		"trackingId":       res.TrackingID,
		"order_updated":    res.OrderUpdated,
		"payment_inserted": res.PaymentInserted,
	})
}
