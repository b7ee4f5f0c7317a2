// Package authtest signs access tokens for tests, standing in for the identity provider.
package authtest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nekogravitycat/club-booking-backend/internal/auth"
)

// Sign returns claims signed with HS256 under secret.
func Sign(secret string, claims auth.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString([]byte(secret))
}

// Claims builds claims for userID that expire after ttl. A negative ttl yields an expired token.
func Claims(userID, role string, ttl time.Duration) auth.Claims {
	now := time.Now()
	return auth.Claims{
		Email: userID + "@club.test",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// Token signs a one-hour token for userID and fails t on error.
func Token(t testing.TB, secret, userID, role string) string {
	t.Helper()
	token, err := Sign(secret, Claims(userID, role, time.Hour))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}
