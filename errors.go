package jwt

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies a failure so callers can branch on it
type ErrorKind uint8

const (
	// KindConfig is invalid caller input: bad options, key/algorithm mismatch, bad time span
	KindConfig ErrorKind = iota + 1
	// KindMalformed is a token string that is not a well-formed JWS
	KindMalformed
	// KindInvalid is a trust-boundary failure: signature, algorithm, or claim mismatch
	KindInvalid
	// KindNotBefore is a token used before its nbf instant
	KindNotBefore
	// KindExpired is a token used at or after its exp instant, or past maxAge
	KindExpired
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "ConfigError"
	case KindMalformed:
		return "MalformedTokenError"
	case KindInvalid:
		return "JsonWebTokenError"
	case KindNotBefore:
		return "NotBeforeError"
	case KindExpired:
		return "TokenExpiredError"
	default:
		return "UnknownError"
	}
}

// Sentinels for errors.Is. ErrInvalid also matches ErrNotBefore and ErrExpired failures.
var (
	ErrConfig    = errors.New("jwt: configuration error")
	ErrMalformed = errors.New("jwt: malformed token")
	ErrInvalid   = errors.New("jwt: invalid token")
	ErrNotBefore = errors.New("jwt: token not active")
	ErrExpired   = errors.New("jwt: token expired")
)

// Failure messages reported by verification
const (
	msgInvalidAlgorithm = "invalid algorithm"
	msgInvalidSignature = "invalid signature"
	msgInvalidAudience  = "invalid audience"
	msgInvalidIssuer    = "invalid issuer"
	msgInvalidSubject   = "invalid subject"
	msgInvalidJWTID     = "invalid jwt id"
	msgNotActive        = "jwt not active"
	msgExpired          = "jwt expired"
	msgMaxAgeExceeded   = "maxAge exceeded"
)

// Error is the single error type returned by this package.
type Error struct {
	Kind    ErrorKind
	Message string
	// Date is the violated instant for KindNotBefore and KindExpired
	Date time.Time
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the package sentinels by kind
func (e *Error) Is(target error) bool {
	switch target {
	case ErrConfig:
		return e.Kind == KindConfig
	case ErrMalformed:
		return e.Kind == KindMalformed
	case ErrInvalid:
		return e.Kind == KindInvalid || e.Kind == KindNotBefore || e.Kind == KindExpired
	case ErrNotBefore:
		return e.Kind == KindNotBefore
	case ErrExpired:
		return e.Kind == KindExpired
	}
	return false
}

// KindOf returns the kind of err, or 0 when err was not produced by this package
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func configError(message string, err error) *Error {
	return &Error{Kind: KindConfig, Message: message, Err: err}
}

func malformed(message string, err error) *Error {
	return &Error{Kind: KindMalformed, Message: message, Err: err}
}

func invalid(message string) *Error {
	return &Error{Kind: KindInvalid, Message: message}
}

func notBefore(date time.Time) *Error {
	return &Error{Kind: KindNotBefore, Message: msgNotActive, Date: date}
}

func expired(message string, date time.Time) *Error {
	return &Error{Kind: KindExpired, Message: message, Date: date}
}

// ValidationError represents a validation error for a specific field.
// It provides detailed information about what validation failed and why.
type ValidationError struct {
	Field   string // The payload claim or option that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation failed for field '%s': %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func fieldError(field, message string) *Error {
	return configError("invalid "+field, &ValidationError{Field: field, Message: message})
}
