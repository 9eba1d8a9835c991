package tokenstore

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testNow = time.Unix(1_700_000_000, 0)

// signed returns an HS256 token carrying claims.
func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

// rawToken assembles a token around an arbitrary payload segment.
func rawToken(payload string) string {
	return "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".sig"
}

func TestIsValid(t *testing.T) {
	future := testNow.Add(time.Hour).Unix()
	past := testNow.Add(-time.Hour).Unix()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"valid signed", signed(t, jwt.MapClaims{"sub": "7", "exp": future}), true},
		{"padded payload", "h." + base64.URLEncoding.EncodeToString([]byte(`{"exp":9999999999,"x":"y"}`)) + ".s", true},
		{"expired", signed(t, jwt.MapClaims{"exp": past}), false},
		{"exp equals now", signed(t, jwt.MapClaims{"exp": testNow.Unix()}), false},
		{"missing exp", signed(t, jwt.MapClaims{"sub": "7"}), false},
		{"string exp", rawToken(`{"exp":"9999999999"}`), false},
		{"bool exp", rawToken(`{"exp":true}`), false},
		{"empty", "", false},
		{"two segments", "a.b", false},
		{"four segments", rawToken(`{"exp":9999999999}`) + ".extra", false},
		{"bad base64", "a.!!!.c", false},
		{"not json", rawToken(`not json`), false},
		{"json array", rawToken(`[1,2,3]`), false},
		{"json null", rawToken(`null`), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsValid(tt.token, testNow))
		})
	}
}

func TestIsValid_IsDeterministic(t *testing.T) {
	tok := signed(t, jwt.MapClaims{"exp": testNow.Add(time.Minute).Unix()})
	for range 3 {
		require.True(t, IsValid(tok, testNow))
	}
	require.False(t, IsValid(tok, testNow.Add(2*time.Minute)))
}

func TestExpiry(t *testing.T) {
	exp := testNow.Add(90 * time.Minute)
	got, err := Expiry(signed(t, jwt.MapClaims{"exp": exp.Unix()}))
	require.NoError(t, err)
	require.True(t, got.Equal(exp), "Expiry = %v, want %v", got, exp)

	_, err = Expiry("a.b")
	require.ErrorIs(t, err, ErrMalformedToken)

	_, err = Expiry(signed(t, jwt.MapClaims{"sub": "1"}))
	require.ErrorIs(t, err, ErrMalformedToken)
}

func TestClaims(t *testing.T) {
	claims, err := Claims(signed(t, jwt.MapClaims{"sub": "42", "role": "admin", "exp": 1}))
	require.NoError(t, err)

	sub, err := claims.GetSubject()
	require.NoError(t, err)
	require.Equal(t, "42", sub)
	require.Equal(t, "admin", claims["role"])
}
