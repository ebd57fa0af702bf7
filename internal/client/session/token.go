package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reports the exp claim of a JWT bearer token. The signature is
// not checked: the backend validates tokens, the client only displays and
// logs the expiry. Opaque or exp-less tokens return false.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
