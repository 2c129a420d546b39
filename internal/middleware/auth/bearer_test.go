package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/tokens"
)

var secret = []byte("test-jwt-secret")

func run(t *testing.T, mw echo.MiddlewareFunc, header string) (int, *Identity) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *Identity
	err := mw(func(c echo.Context) error {
		id, ok := IdentityFrom(c)
		require.True(t, ok)
		assert.Nil(t, c.Get("user_id"), "identity is the only context state")
		seen = &id
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		return he.Code, seen
	}
	return rec.Code, seen
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	m := NewBearer(secret)
	userID := uuid.New()

	good, _, err := tokens.Sign(secret, userID.String(), "user", time.Hour)
	require.NoError(t, err)
	expired, _, err := tokens.Sign(secret, userID.String(), "", -time.Minute)
	require.NoError(t, err)
	foreign, _, err := tokens.Sign([]byte("other"), userID.String(), "", time.Hour)
	require.NoError(t, err)
	notUUID, _, err := tokens.Sign(secret, "42", "", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + good, want: http.StatusUnauthorized},
		{name: "empty bearer", header: "Bearer ", want: http.StatusUnauthorized},
		{name: "tampered", header: "Bearer " + good + "x", want: http.StatusBadRequest},
		{name: "expired", header: "Bearer " + expired, want: http.StatusBadRequest},
		{name: "wrong secret", header: "Bearer " + foreign, want: http.StatusBadRequest},
		{name: "malformed", header: "Bearer abc.def", want: http.StatusBadRequest},
		{name: "subject not a uuid", header: "Bearer " + notUUID, want: http.StatusBadRequest},
		{name: "valid", header: "Bearer " + good, want: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + good, want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, seen := run(t, m.RequireAuth, tt.header)
			assert.Equal(t, tt.want, code)
			if tt.want != http.StatusOK {
				assert.Nil(t, seen, "downstream must not run")
				return
			}
			require.NotNil(t, seen)
			assert.Equal(t, userID, seen.UserID)
			assert.Equal(t, "user", seen.Role)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	m := NewBearer(secret)

	admin, _, err := tokens.Sign(secret, uuid.NewString(), "admin", time.Hour)
	require.NoError(t, err)
	user, _, err := tokens.Sign(secret, uuid.NewString(), "user", time.Hour)
	require.NoError(t, err)

	code, seen := run(t, m.RequireAdmin, "Bearer "+admin)
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, seen)
	assert.True(t, seen.IsAdmin())

	code, seen = run(t, m.RequireAdmin, "Bearer "+user)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Nil(t, seen)
}
