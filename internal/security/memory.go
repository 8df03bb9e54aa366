package security

import (
	"crypto/subtle"
	"runtime"
	"strings"
)

// ZeroBytes overwrites a byte slice so computed MACs and key copies do not linger
func ZeroBytes(data []byte) {
	if len(data) == 0 {
		return
	}

	for i := range data {
		data[i] = 0
	}

	runtime.KeepAlive(data)
}

// SecureCompare performs constant-time comparison of two byte slices.
// Slices of different length compare unequal without early exit on content.
func SecureCompare(a, b []byte) bool {
	if len(a) != len(b) {
		// still touch the data so timing does not depend on where a mismatch is
		subtle.ConstantTimeCompare(a, a)
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// IsWeakSecret reports whether an HMAC secret is shorter than minLen bytes
// or made of trivially guessable content.
func IsWeakSecret(key []byte, minLen int) bool {
	if len(key) == 0 || len(key) < minLen {
		return true
	}

	// Single repeated byte
	repeated := true
	for _, b := range key {
		if b != key[0] {
			repeated = false
			break
		}
	}
	if repeated {
		return true
	}

	if hasLowEntropy(key) {
		return true
	}

	keyStr := strings.ToLower(string(key))
	for _, pattern := range weakPatterns {
		if keyStr == pattern || (strings.HasPrefix(keyStr, pattern) && len(keyStr) <= len(pattern)+4) {
			return true
		}
	}

	return false
}

var weakPatterns = [...]string{
	"secret", "password", "changeme", "shhhhh", "12345678", "qwerty",
	"letmein", "default", "example", "test", "admin", "token",
}

// hasLowEntropy flags keys built from fewer than eight distinct byte values
func hasLowEntropy(key []byte) bool {
	if len(key) < 8 {
		return true
	}

	var seen [256]bool
	unique := 0
	for _, b := range key {
		if !seen[b] {
			seen[b] = true
			unique++
		}
	}

	return unique < 8
}
