package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/apperr"
	"github.com/Skotchmaster/storefront/internal/orders"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
)

type OrderHTTP struct {
	Svc *orders.Service
}

// orderID parses the :id path parameter. A malformed id becomes uuid.Nil, which no order has, so
// the service applies its usual checks and then reports the order as not found.
func orderID(c echo.Context) uuid.UUID {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	list, err := h.Svc.List(ctx, middleware.IdentityFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.Svc.Get(ctx, middleware.IdentityFrom(c), orderID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", msgInvalidBody, "error", err)
		return apperr.Validation(msgInvalidBody, nil)
	}

	order, err := h.Svc.Create(ctx, middleware.IdentityFrom(c), req.Input())
	if err != nil {
		return err
	}

	l.Info("create_order_success", "order_id", order.ID.String())
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	var req transport.SetStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "reason", msgInvalidBody, "error", err)
		return apperr.Validation(msgInvalidBody, nil)
	}

	order, err := h.Svc.AdminSetStatus(ctx, middleware.IdentityFrom(c), orderID(c), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.Svc.OwnerCancel(ctx, middleware.IdentityFrom(c), orderID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.Svc.AdminDelete(ctx, middleware.IdentityFrom(c), orderID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
