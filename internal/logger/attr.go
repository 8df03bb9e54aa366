package logger

import (
	"log/slog"

	jwt "github.com/cybergodev/jsonwebtoken"
)

// Attribute helpers return an empty Attr for zero input so they can be passed
// to log calls without nil checks. The handler drops empty attributes.

// Error creates an attribute for a single error under the key "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Kind records the jwt failure kind of err, e.g. "TokenExpiredError"
func Kind(err error) slog.Attr {
	kind := jwt.KindOf(err)
	if kind == 0 {
		return slog.Attr{}
	}
	return slog.String("kind", kind.String())
}

// Algorithm creates an attribute for the signing algorithm.
func Algorithm(alg jwt.Algorithm) slog.Attr {
	if alg == "" {
		return slog.Attr{}
	}
	return slog.String("alg", string(alg))
}

// KeyID creates an attribute for the kid header.
func KeyID(kid string) slog.Attr {
	if kid == "" {
		return slog.Attr{}
	}
	return slog.String("kid", kid)
}

// Source names where key material came from: a file path or "secret".
func Source(src string) slog.Attr {
	if src == "" {
		return slog.Attr{}
	}
	return slog.String("key_source", src)
}
