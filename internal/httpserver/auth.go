package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/apperr"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/users"
	"github.com/Skotchmaster/storefront/pkg/logging"
	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
)

const msgInvalidBody = "invalid body"

type AuthHTTP struct {
	Svc *users.Service
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", msgInvalidBody, "error", err)
		return apperr.Validation(msgInvalidBody, nil)
	}

	sess, err := h.Svc.Register(ctx, req.Input())
	if err != nil {
		return err
	}

	l.Info("register_success")
	return c.JSON(http.StatusCreated, sess)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", msgInvalidBody, "error", err)
		return apperr.Validation(msgInvalidBody, nil)
	}

	sess, err := h.Svc.Login(ctx, req.Input())
	if err != nil {
		return err
	}

	l.Info("login_success")
	return c.JSON(http.StatusOK, sess)
}

func (h *AuthHTTP) CreateAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.create_admin")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_admin_error", "status", 400, "reason", msgInvalidBody, "error", err)
		return apperr.Validation(msgInvalidBody, nil)
	}

	admin, err := h.Svc.CreateAdmin(ctx, middleware.IdentityFrom(c), req.Input())
	if err != nil {
		return err
	}

	l.Info("create_admin_success")
	return c.JSON(http.StatusCreated, transport.NewAdminCreatedResponse(admin))
}
