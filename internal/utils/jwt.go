package utils

import (
	"time" // Expiry timestamps

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// TokenExpiry reads the exp claim of a backend token without verifying it.
// The front-end never holds the signing key, so this only decides when a
// stored session is certainly dead; the backend still rejects bad tokens.
func TokenExpiry(token string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false // Not a JWT, expiry unknown
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false // No exp claim
	}
	return claims.ExpiresAt.Time, true
}

// TokenExpired reports whether token carries an exp claim that is not after now
func TokenExpired(token string, now time.Time) bool {
	exp, ok := TokenExpiry(token)
	return ok && !exp.After(now)
}
