package utils

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("k", 42, 15)
	if err != nil {
		t.Fatal(err)
	}
	if tok.Exp.IsZero() || time.Until(tok.Exp) > 15*time.Minute {
		t.Errorf("exp = %v", tok.Exp)
	}
	id, err := ParseAccessToken("k", tok.Token)
	if err != nil || id != 42 {
		t.Fatalf("ParseAccessToken = %d, %v", id, err)
	}
}

func TestAccessTokenWithoutTTL(t *testing.T) {
	a, err := NewAccessToken("k", 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewAccessToken("k", 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Exp.IsZero() {
		t.Errorf("exp set without ttl: %v", a.Exp)
	}
	if a.Token == b.Token {
		t.Error("two tokens for the same user are identical")
	}
}

func TestParseAccessTokenRejects(t *testing.T) {
	sign := func(method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatal(err)
		}
		return s
	}
	past := time.Now().Add(-time.Hour).Unix()
	tests := map[string]string{
		"garbage":     "abc",
		"wrong key":   sign(jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "1"}),
		"expired":     sign(jwt.SigningMethodHS256, []byte("k"), jwt.MapClaims{"sub": "1", "exp": past}),
		"no subject":  sign(jwt.SigningMethodHS256, []byte("k"), jwt.MapClaims{}),
		"zero id":     sign(jwt.SigningMethodHS256, []byte("k"), jwt.MapClaims{"sub": "0"}),
		"non numeric": sign(jwt.SigningMethodHS256, []byte("k"), jwt.MapClaims{"sub": "ada"}),
		"none alg":    sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"sub": strconv.Itoa(1)}),
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseAccessToken("k", raw); err != ErrInvalidToken {
				t.Errorf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("pw", 4)
	if err != nil {
		t.Fatal(err)
	}
	if !VerifyPassword(hash, "pw") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "PW") {
		t.Error("wrong password accepted")
	}
}
