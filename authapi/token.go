package authapi

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired reports whether a cached bearer token is already past its
// exp claim. The signature is NOT verified; the server remains the
// authority. This only lets the client skip a refresh that is certain to
// fail. Opaque (non-JWT) tokens and tokens without exp are treated as
// not-expired and left for the server to judge.
func TokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
