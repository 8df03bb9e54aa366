package jwt

import (
	"slices"
	"time"
)

// ValidateClaims runs the registered-claim checks of verification against
// already-decoded claims. It does not look at any signature.
//
// Checks run in a fixed order and stop at the first failure:
// nbf, exp, aud, iss, sub, jti, then iat/maxAge.
func ValidateClaims(claims Claims, opts VerifyOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	return validateClaims(claims, &opts, now(opts.Now))
}

func validateClaims(claims Claims, opts *VerifyOptions, at time.Time) error {
	clock := float64(at.Unix())
	tolerance := opts.ClockTolerance.Seconds()

	if v, ok := claims[ClaimNotBefore]; ok && !opts.IgnoreNotBefore {
		nbf, isNum := numeric(v)
		if !isNum {
			return invalid("invalid nbf value")
		}
		if clock+tolerance < nbf {
			return notBefore(unixTime(nbf))
		}
	}

	if v, ok := claims[ClaimExpiresAt]; ok && !opts.IgnoreExpiration {
		exp, isNum := numeric(v)
		if !isNum {
			return invalid("invalid exp value")
		}
		if clock-tolerance >= exp {
			return expired(msgExpired, unixTime(exp))
		}
	}

	if len(opts.Audience) > 0 {
		actual, _ := audienceList(claims[ClaimAudience])
		if !slices.ContainsFunc(actual, func(aud string) bool {
			return slices.Contains(opts.Audience, aud)
		}) {
			return invalid(msgInvalidAudience)
		}
	}

	if len(opts.Issuer) > 0 {
		iss, _ := claims.String(ClaimIssuer)
		if !slices.Contains(opts.Issuer, iss) {
			return invalid(msgInvalidIssuer)
		}
	}

	if opts.Subject != "" {
		if sub, _ := claims.String(ClaimSubject); sub != opts.Subject {
			return invalid(msgInvalidSubject)
		}
	}

	if opts.JWTID != "" {
		if jti, _ := claims.String(ClaimJWTID); jti != opts.JWTID {
			return invalid(msgInvalidJWTID)
		}
	}

	return validateAge(claims, opts, clock, tolerance)
}

func validateAge(claims Claims, opts *VerifyOptions, clock, tolerance float64) error {
	v, present := claims[ClaimIssuedAt]
	iat, isNum := numeric(v)
	if present && !isNum {
		return invalid("invalid iat value")
	}

	if !opts.MaxAge.IsSet() {
		return nil
	}
	maxAge, err := opts.MaxAge.Resolve()
	if err != nil {
		return configError(`invalid "maxAge" option`, &ValidationError{
			Field:   "maxAge",
			Message: "should be a number of seconds or a time span string",
			Err:     err,
		})
	}
	if !present {
		return invalid("iat required when maxAge is specified")
	}

	deadline := iat + float64(maxAge)
	if clock-tolerance >= deadline {
		return expired(msgMaxAgeExceeded, unixTime(deadline))
	}
	return nil
}
