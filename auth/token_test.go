package auth

import (
	"net/http"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestToken_Apply(t *testing.T) {
	h := http.Header{}
	Token("ghp_abc123").Apply(h)

	if got := h.Get("Authorization"); got != "Bearer ghp_abc123" {
		t.Errorf("Authorization = %q, want Bearer ghp_abc123", got)
	}

	empty := http.Header{}
	Token("").Apply(empty)
	if got := empty.Get("Authorization"); got != "" {
		t.Errorf("Authorization for zero token = %q, want empty", got)
	}
}

func TestToken_Redacted(t *testing.T) {
	tok := Token("ghp_supersecretvalue")
	got := tok.Redacted()

	if strings.Contains(got, "supersecret") {
		t.Errorf("Redacted() = %q leaks the token", got)
	}
	if !strings.HasPrefix(got, "ghp_") {
		t.Errorf("Redacted() = %q, want ghp_ prefix preserved", got)
	}

	if Token("").Redacted() != "(none)" {
		t.Errorf("Redacted() for zero token = %q, want (none)", Token("").Redacted())
	}
}

func TestToken_StringIsRedacted(t *testing.T) {
	tok := Token("ghp_supersecretvalue")

	// %v / %s formatting must go through the redacted form.
	if got := tok.String(); strings.Contains(got, "supersecret") {
		t.Errorf("String() = %q leaks the token", got)
	}
}

func TestIdentityFor_Opaque(t *testing.T) {
	a := IdentityFor(Token("ghp_tokenA"))
	b := IdentityFor(Token("ghp_tokenB"))

	if a == b {
		t.Error("distinct tokens derived the same identity")
	}
	if a != IdentityFor(Token("ghp_tokenA")) {
		t.Error("identity derivation is not stable")
	}
	if strings.Contains(a, "ghp_tokenA") {
		t.Errorf("identity %q contains the raw token", a)
	}
	if IdentityFor(Token("")) != "anonymous" {
		t.Errorf("IdentityFor(zero) = %q, want anonymous", IdentityFor(Token("")))
	}
}

func TestIdentityFor_JWTSubject(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
	}).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}

	if got := IdentityFor(Token(raw)); got != "alice" {
		t.Errorf("IdentityFor(jwt) = %q, want alice", got)
	}
}

func TestIdentityFor_JWTWithoutSubject(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"scope": "repo",
	}).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}

	got := IdentityFor(Token(raw))
	if !strings.HasPrefix(got, "tok-") {
		t.Errorf("IdentityFor(jwt without sub) = %q, want fingerprint fallback", got)
	}
}
