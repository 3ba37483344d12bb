package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/auth"
)

const (
	ctxIdentity = "identity"
	ctxUserID   = "user_id"
)

type BearerMiddleware struct {
	Tokens *auth.TokenService
}

func NewBearerMiddleware(tokens *auth.TokenService) *BearerMiddleware {
	return &BearerMiddleware{Tokens: tokens}
}

// RequireAuth rejects the request with 401 unless it carries a valid bearer token.
func (m *BearerMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := m.Tokens.Verify(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return err
		}
		setUserContext(c, id)
		return next(c)
	}
}

// Optional attaches the identity when the token is valid and otherwise continues anonymously.
func (m *BearerMiddleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if id := m.Tokens.Optional(c.Request().Header.Get(echo.HeaderAuthorization)); id != nil {
			setUserContext(c, id)
		}
		return next(c)
	}
}

func IdentityFrom(c echo.Context) *auth.Identity {
	id, _ := c.Get(ctxIdentity).(*auth.Identity)
	return id
}

// UserIDFrom returns the authenticated user id or "" for anonymous requests.
func UserIDFrom(c echo.Context) string {
	uid, _ := c.Get(ctxUserID).(string)
	return uid
}

func setUserContext(c echo.Context, id *auth.Identity) {
	c.Set(ctxIdentity, id)
	c.Set(ctxUserID, id.ID.String())
}
