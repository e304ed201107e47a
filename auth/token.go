package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a bearer credential supplied by the embedding application.
// This package never acquires or refreshes tokens; it only carries,
// redacts, and derives identities from them.
type Token string

// IsZero reports whether the token is empty.
func (t Token) IsZero() bool {
	return t == ""
}

// Apply sets the Authorization header on h. A zero token leaves h
// untouched.
func (t Token) Apply(h http.Header) {
	if t.IsZero() {
		return
	}
	h.Set("Authorization", "Bearer "+string(t))
}

// Redacted returns a loggable form of the token: the scheme-like prefix
// (e.g. "ghp_") plus a short fingerprint. The raw value is never
// recoverable from it.
func (t Token) Redacted() string {
	if t.IsZero() {
		return "(none)"
	}

	prefix := ""
	if i := strings.IndexByte(string(t), '_'); i > 0 && i <= 8 {
		prefix = string(t)[:i+1]
	}
	return prefix + "[" + fingerprint(string(t))[:8] + "]"
}

// String implements fmt.Stringer with the redacted form, so an
// accidental %v of a Token cannot leak it.
func (t Token) String() string {
	return t.Redacted()
}

// IdentityFor derives the opaque identity used for rate budgets and
// circuit state. JWT-shaped tokens yield their subject claim; anything
// else yields a stable fingerprint. The result never contains the raw
// credential, so it is safe in logs and diagnostics.
func IdentityFor(t Token) string {
	if t.IsZero() {
		return "anonymous"
	}

	if sub, ok := jwtSubject(string(t)); ok {
		return sub
	}
	return "tok-" + fingerprint(string(t))[:16]
}

// jwtSubject extracts the subject of a JWT without verifying the
// signature. Verification belongs to the remote API; locally the claim
// is only a bucketing key.
func jwtSubject(raw string) (string, bool) {
	if strings.Count(raw, ".") != 2 {
		return "", false
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return "", false
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}

func fingerprint(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
