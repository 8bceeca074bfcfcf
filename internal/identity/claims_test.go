package identity

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestCheckTokenShape(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "prov-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("any-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if err := CheckTokenShape(signed); err != nil {
		t.Fatalf("well-formed token must pass, got %v", err)
	}

	for _, tok := range []string{"", "   ", "garbage", "a.b", "x.y.z"} {
		if err := CheckTokenShape(tok); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid for %q, got %v", tok, err)
		}
	}
}
