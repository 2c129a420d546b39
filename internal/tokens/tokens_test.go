package tokens

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-jwt-secret")

func TestSign_SetsExpectedClaims(t *testing.T) {
	t.Parallel()

	userID := uuid.NewString()
	token, exp, err := Sign(secret, userID, "admin", 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Parse(token, secret)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestSign_OmitsEmptyRole(t *testing.T) {
	t.Parallel()

	token, _, err := Sign(secret, uuid.NewString(), "", time.Hour)
	require.NoError(t, err)

	var raw jwt.MapClaims
	_, _, err = jwt.NewParser().ParseUnverified(token, &raw)
	require.NoError(t, err)
	_, hasRole := raw["role"]
	assert.False(t, hasRole)
	assert.NotEmpty(t, raw["id"])
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	good, _, err := Sign(secret, uuid.NewString(), "user", time.Hour)
	require.NoError(t, err)

	expired, _, err := Sign(secret, uuid.NewString(), "user", -time.Minute)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": "x"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"id": "x"}).SignedString(secret)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret []byte
	}{
		{name: "wrong secret", token: good, secret: []byte("other")},
		{name: "tampered", token: good + "x", secret: secret},
		{name: "expired", token: expired, secret: secret},
		{name: "malformed", token: "not-a-valid-jwt", secret: secret},
		{name: "alg none", token: none, secret: secret},
		{name: "alg hs512", token: hs512, secret: secret},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims, err := Parse(tt.token, tt.secret)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.True(t, errors.Is(err, ErrInvalidToken))
		})
	}
}
