package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned by Claims for tokens that cannot be decoded.
// IsValid never returns it; a malformed token is simply invalid.
var ErrMalformedToken = errors.New("malformed token")

// segmentParser decodes base64url segments with or without padding.
var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// Claims decodes the payload segment of a three-part token without
// verifying its signature. The console never holds the signing key; the
// server remains the authority on signatures.
func Claims(token string) (jwt.MapClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %d segments", ErrMalformedToken, len(parts))
	}
	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrMalformedToken, err)
	}
	var claims jwt.MapClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("%w: payload json: %v", ErrMalformedToken, err)
	}
	if claims == nil {
		return nil, fmt.Errorf("%w: payload is not an object", ErrMalformedToken)
	}
	return claims, nil
}

// Expiry returns the token's exp claim.
func Expiry(token string) (time.Time, error) {
	claims, err := Claims(token)
	if err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: exp: %v", ErrMalformedToken, err)
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("%w: missing exp", ErrMalformedToken)
	}
	return exp.Time, nil
}

// IsValid reports whether token is well formed and its exp claim lies
// strictly after now.
func IsValid(token string, now time.Time) bool {
	exp, err := Expiry(token)
	if err != nil {
		return false
	}
	return exp.After(now)
}
