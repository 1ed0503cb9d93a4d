package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestTokenManager_IssueVerify(t *testing.T) {
	m := NewTokenManager(testSecret, 24*time.Hour)

	token, err := m.Issue(42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: 42, Username: "alice"}, id)
}

func TestTokenManager_ClaimsCarryLifetime(t *testing.T) {
	issued := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	m := NewTokenManager(testSecret, 24*time.Hour, WithClock(func() time.Time { return issued }))

	token, err := m.Issue(1, "bob")
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)

	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "bob", claims.Username)
	assert.True(t, claims.IssuedAt.Time.Equal(issued))
	assert.True(t, claims.ExpiresAt.Time.Equal(issued.Add(24*time.Hour)))
}

func TestTokenManager_Expired(t *testing.T) {
	past := time.Now().Add(-25 * time.Hour)
	issuer := NewTokenManager(testSecret, 24*time.Hour, WithClock(func() time.Time { return past }))

	token, err := issuer.Issue(1, "bob")
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, 24*time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_Invalid(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	valid, err := m.Issue(1, "bob")
	require.NoError(t, err)

	otherSecret, err := NewTokenManager("another-secret", time.Hour).Issue(1, "bob")
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	noneToken, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1})
	noExpToken, err := noExp.SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
		{name: "tampered", token: valid[:len(valid)-2] + "xx"},
		{name: "wrong secret", token: otherSecret},
		{name: "alg none", token: noneToken},
		{name: "no expiry", token: noExpToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}
