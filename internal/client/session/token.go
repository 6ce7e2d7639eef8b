package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expired reports whether the access token is unusable at the given time.
//
// The token must be three dot-separated segments whose header and payload
// both decode (padded or unpadded base64url) into JSON objects, with a
// numeric `exp` Unix timestamp in the payload. Any structural failure,
// including a broken header, counts as expired: the client re-authenticates
// rather than sending a token it cannot reason about. Otherwise the token
// is expired iff now >= exp.
func Expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithPaddingAllowed())

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return !now.Before(exp.Time)
}
