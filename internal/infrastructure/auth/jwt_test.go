package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minerepair/repairhub/internal/shared/authorization"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 15)

	token, exp, err := svc.Generate(42, authorization.RoleManager)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := svc.Verify(token)
	require.NoError(t, err)

	p, err := claims.Principal()
	require.NoError(t, err)
	assert.Equal(t, authorization.Principal{UserID: 42, Role: authorization.RoleManager}, p)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_Verify_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", 15)

	sign := func(secret string, claims *Claims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}
	valid := func() jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
	}

	expired := valid()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", sign("other", &Claims{Role: authorization.RoleAdmin, TokenType: TokenTypeAccess, RegisteredClaims: valid()})},
		{"expired", sign("test-secret", &Claims{Role: authorization.RoleAdmin, TokenType: TokenTypeAccess, RegisteredClaims: expired})},
		{"not an access token", sign("test-secret", &Claims{Role: authorization.RoleAdmin, TokenType: "refresh", RegisteredClaims: valid()})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestClaims_Principal(t *testing.T) {
	_, err := (&Claims{Role: authorization.RoleCustomer, RegisteredClaims: jwt.RegisteredClaims{Subject: "abc"}}).Principal()
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = (&Claims{Role: "pilot", RegisteredClaims: jwt.RegisteredClaims{Subject: "3"}}).Principal()
	assert.ErrorIs(t, err, ErrInvalidToken)
}
