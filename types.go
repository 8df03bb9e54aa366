package jwt

import (
	"encoding/json"
	"maps"
	"math"
	"time"
)

// Algorithm identifies a JWS signing algorithm by its "alg" header value.
type Algorithm string

const (
	// HS256 uses HMAC with SHA-256 (the default)
	HS256 Algorithm = "HS256"
	HS384 Algorithm = "HS384"
	HS512 Algorithm = "HS512"

	// RS256 uses RSASSA-PKCS1-v1_5 with SHA-256
	RS256 Algorithm = "RS256"
	RS384 Algorithm = "RS384"
	RS512 Algorithm = "RS512"

	// ES256 uses ECDSA on P-256 with SHA-256
	ES256 Algorithm = "ES256"
	ES384 Algorithm = "ES384"
	// ES512 uses ECDSA on P-521 with SHA-512
	ES512 Algorithm = "ES512"

	// None produces unsigned tokens. It must be requested explicitly when
	// signing and listed explicitly in VerifyOptions.Algorithms when verifying.
	None Algorithm = "none"
)

// Registered claim names (RFC 7519 §4.1)
const (
	ClaimIssuer    = "iss"
	ClaimSubject   = "sub"
	ClaimAudience  = "aud"
	ClaimExpiresAt = "exp"
	ClaimNotBefore = "nbf"
	ClaimIssuedAt  = "iat"
	ClaimJWTID     = "jti"
)

// Header is the JOSE header of a token
type Header map[string]any

// Alg returns the "alg" header or "" when absent or not a string
func (h Header) Alg() string {
	s, _ := h["alg"].(string)
	return s
}

// Type returns the "typ" header
func (h Header) Type() string {
	s, _ := h["typ"].(string)
	return s
}

// KeyID returns the "kid" header
func (h Header) KeyID() string {
	s, _ := h["kid"].(string)
	return s
}

// Claims is a JSON object payload. Numbers decoded from a token are float64.
type Claims map[string]any

// String returns a string claim
func (c Claims) String(name string) (string, bool) {
	s, ok := c[name].(string)
	return s, ok
}

// Audience returns the "aud" claim as a list, accepting both the string and array forms.
func (c Claims) Audience() []string {
	switch v := c[ClaimAudience].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Time returns a NumericDate claim (iat, nbf, exp) as a UTC time
func (c Claims) Time(name string) (time.Time, bool) {
	f, ok := numeric(c[name])
	if !ok {
		return time.Time{}, false
	}
	return unixTime(f), true
}

// Clone returns a shallow copy
func (c Claims) Clone() Claims {
	if c == nil {
		return nil
	}
	return maps.Clone(c)
}

// Token is a decoded token. A Token returned by Decode is untrusted.
type Token struct {
	Header Header
	// Claims is nil when the payload is not a JSON object
	Claims       Claims
	Payload      []byte
	Signature    []byte
	SigningInput string
	Raw          string
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func unixTime(seconds float64) time.Time {
	sec, frac := math.Modf(seconds)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC()
}
