package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/tokens"
)

const identityKey = "identity"

// Identity is the authenticated caller decoded from the bearer token.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

func (i Identity) IsAdmin() bool { return i.Role == models.RoleAdmin }

type Bearer struct {
	JWTSecret []byte
}

func NewBearer(secret []byte) *Bearer {
	return &Bearer{JWTSecret: secret}
}

type ValidatorFunc func(id Identity) error

func (m *Bearer) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *Bearer) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(id Identity) error {
		if !id.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *Bearer) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("mw", "auth")

		raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			l.Warn("auth_error", "status", 401, "reason", "missing token")
			return echo.NewHTTPError(http.StatusUnauthorized, "Access denied, please login")
		}

		claims, err := tokens.Parse(raw, m.JWTSecret)
		if err != nil {
			l.Warn("auth_error", "status", 400, "reason", "invalid token", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Token not valid, please login again")
		}
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			l.Warn("auth_error", "status", 400, "reason", "bad subject", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Token not valid, please login again")
		}

		id := Identity{UserID: userID, Role: claims.Role}
		if validator != nil {
			if err := validator(id); err != nil {
				return err
			}
		}

		c.Set(identityKey, id)
		return next(c)
	}
}

// IdentityFrom returns the identity stored by RequireAuth.
func IdentityFrom(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
