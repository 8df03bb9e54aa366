package core

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// signatureEncoding rejects non-zero trailing bits so one signature has one textual form
var signatureEncoding = base64.RawURLEncoding.Strict()

// EncodeSegment base64url-encodes data without padding
func EncodeSegment(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeSegment decodes a base64url header or payload segment
func DecodeSegment(segment string) ([]byte, error) {
	if len(segment) == 0 {
		return nil, fmt.Errorf("empty segment")
	}

	// Padding and the standard alphabet are both outside the JWS compact form
	if !isValidBase64URL(segment) {
		return nil, fmt.Errorf("invalid base64url characters in segment")
	}

	buf := make([]byte, base64.RawURLEncoding.DecodedLen(len(segment)))
	n, err := base64.RawURLEncoding.Decode(buf, []byte(segment))
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64url: %w", err)
	}

	return buf[:n], nil
}

// DecodeSignature decodes the signature segment. An empty segment yields an empty slice.
func DecodeSignature(segment string) ([]byte, error) {
	if len(segment) == 0 {
		return []byte{}, nil
	}
	if !isValidBase64URL(segment) {
		return nil, fmt.Errorf("invalid base64url characters in signature")
	}
	sig, err := signatureEncoding.DecodeString(segment)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signature: %w", err)
	}
	return sig, nil
}

// MarshalJSON encodes v without HTML escaping and without the trailing newline
func MarshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// isValidBase64URL checks if string contains only valid base64url characters
func isValidBase64URL(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '-' || c == '_') {
			return false
		}
	}
	return true
}
