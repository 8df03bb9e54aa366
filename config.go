package jwt

import (
	"time"
)

// SignOptions configures Sign and SignRaw
type SignOptions struct {
	// Algorithm defaults to HS256
	Algorithm Algorithm

	// ExpiresIn sets exp relative to iat (or to now when NoTimestamp is set)
	ExpiresIn TimeSpan

	// NotBefore sets nbf relative to iat (or to now when NoTimestamp is set)
	NotBefore TimeSpan

	// Audience serializes as a string when it has one entry, as an array otherwise
	Audience []string

	Subject string
	Issuer  string
	JWTID   string

	// KeyID sets the "kid" header
	KeyID string

	// NoTimestamp omits iat
	NoTimestamp bool

	// Header is merged into the JOSE header. It never overrides alg or typ.
	Header map[string]any

	// Now overrides the clock
	Now func() time.Time
}

// VerifyOptions configures Verify and VerifyToken
type VerifyOptions struct {
	// Algorithms is the allow-list checked before the signature. When empty it is
	// derived from the key: HS* for secrets, RS* or ES* for PEM keys by key type. None is never implied.
	Algorithms []Algorithm

	// Audience passes when any entry matches any token audience
	Audience []string

	// Issuer passes when any entry equals the iss claim
	Issuer []string

	Subject string
	JWTID   string

	IgnoreExpiration bool
	IgnoreNotBefore  bool

	// ClockTolerance is the skew allowed when checking exp and nbf
	ClockTolerance time.Duration

	// MaxAge rejects tokens whose iat is older than the span
	MaxAge TimeSpan

	// Now overrides the clock
	Now func() time.Time
}

// DecodeOptions configures Decode
type DecodeOptions struct {
	// JSON requires the payload to be a JSON object
	JSON bool
}

// DefaultSignOptions returns options for an HS256 token that expires in an hour
func DefaultSignOptions() SignOptions {
	return SignOptions{
		Algorithm: HS256,
		ExpiresIn: Seconds(3600),
	}
}

func (o *SignOptions) algorithm() Algorithm {
	if o.Algorithm == "" {
		return HS256
	}
	return o.Algorithm
}

// hasClaimOptions reports whether any option requires a structured payload
func (o *SignOptions) hasClaimOptions() (string, bool) {
	switch {
	case o.ExpiresIn.IsSet():
		return "expiresIn", true
	case o.NotBefore.IsSet():
		return "notBefore", true
	case o.NoTimestamp:
		return "noTimestamp", true
	case len(o.Audience) > 0:
		return "audience", true
	case o.Issuer != "":
		return "issuer", true
	case o.Subject != "":
		return "subject", true
	case o.JWTID != "":
		return "jwtid", true
	}
	return "", false
}

// Validate checks option shapes that do not depend on the payload
func (o *VerifyOptions) Validate() error {
	if o.ClockTolerance < 0 {
		return fieldError("clockTolerance", "must not be negative")
	}
	for _, alg := range o.Algorithms {
		if alg == "" {
			return fieldError("algorithms", "must not contain an empty algorithm")
		}
	}
	return nil
}

func now(clock func() time.Time) time.Time {
	if clock != nil {
		return clock()
	}
	return time.Now()
}
