package jwt

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	date := time.Unix(1700000000, 0).UTC()

	tests := []struct {
		name    string
		err     *Error
		matches []error
		misses  []error
	}{
		{
			"config",
			configError("bad option", nil),
			[]error{ErrConfig},
			[]error{ErrMalformed, ErrInvalid, ErrNotBefore, ErrExpired},
		},
		{
			"malformed",
			malformed("jwt malformed", nil),
			[]error{ErrMalformed},
			[]error{ErrConfig, ErrInvalid, ErrNotBefore, ErrExpired},
		},
		{
			"invalid",
			invalid(msgInvalidSignature),
			[]error{ErrInvalid},
			[]error{ErrConfig, ErrMalformed, ErrNotBefore, ErrExpired},
		},
		{
			"not before",
			notBefore(date),
			[]error{ErrNotBefore, ErrInvalid},
			[]error{ErrConfig, ErrMalformed, ErrExpired},
		},
		{
			"expired",
			expired(msgExpired, date),
			[]error{ErrExpired, ErrInvalid},
			[]error{ErrConfig, ErrMalformed, ErrNotBefore},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			for _, target := range tt.matches {
				assert.ErrorIs(t, wrapped, target)
			}
			for _, target := range tt.misses {
				assert.NotErrorIs(t, wrapped, target)
			}
			assert.Equal(t, tt.err.Kind, KindOf(wrapped))
		})
	}

	assert.Equal(t, ErrorKind(0), KindOf(errors.New("other")))
	assert.Equal(t, ErrorKind(0), KindOf(nil))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "jwt expired", expired(msgExpired, time.Time{}).Error())
	assert.Equal(t, "invalid signature", invalid(msgInvalidSignature).Error())

	inner := errors.New("boom")
	err := configError("signing failed", inner)
	assert.Equal(t, "signing failed: boom", err.Error())
	assert.ErrorIs(t, err, inner)

	fe := fieldError("aud", "must be a string")
	assert.Equal(t, "invalid aud: validation failed for field 'aud': must be a string", fe.Error())

	var ve *ValidationError
	assert.ErrorAs(t, fe, &ve)
	assert.Equal(t, "aud", ve.Field)
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "ConfigError", KindConfig.String())
	assert.Equal(t, "MalformedTokenError", KindMalformed.String())
	assert.Equal(t, "JsonWebTokenError", KindInvalid.String())
	assert.Equal(t, "NotBeforeError", KindNotBefore.String())
	assert.Equal(t, "TokenExpiredError", KindExpired.String())
	assert.Equal(t, "UnknownError", ErrorKind(0).String())
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{"without cause", &ValidationError{Field: "exp", Message: "must be a number"},
			"validation failed for field 'exp': must be a number"},
		{"with cause", &ValidationError{Field: "expiresIn", Message: "bad span", Err: errors.New("nope")},
			"validation failed for field 'expiresIn': bad span: nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.Equal(t, tt.err.Err, tt.err.Unwrap())
		})
	}
}
