package jwt

import "github.com/google/uuid"

// NewID returns a random RFC 4122 identifier suitable for the jti claim
func NewID() string {
	return uuid.NewString()
}
