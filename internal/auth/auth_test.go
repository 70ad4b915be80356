package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := MakeToken("sess-1", "secret")
	if err != nil {
		t.Fatal(err)
	}
	c, err := ParseToken(tok, "secret")
	if err != nil {
		t.Fatal(err)
	}
	if c.SessionID != "sess-1" {
		t.Errorf("session id = %q", c.SessionID)
	}
}

func TestParseTokenRejects(t *testing.T) {
	good, _ := MakeToken("sess-1", "secret")

	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		SessionID: "sess-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte("secret"))

	noSession, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{}).SignedString([]byte("secret"))

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{SessionID: "sess-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name, raw, secret string
	}{
		{"wrong secret", good, "other"},
		{"expired", expired, "secret"},
		{"no session", noSession, "secret"},
		{"alg none", none, "secret"},
		{"garbage", "abc.def", "secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.raw, tt.secret)
			if !errors.Is(err, ErrBadToken) {
				t.Errorf("expected ErrBadToken, got %v", err)
			}
		})
	}
}
