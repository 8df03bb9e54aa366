package jwt

import (
	"math"
	"slices"
	"time"
)

// buildClaims merges the registered-claim options into a copy of payload.
// An option that names a claim already present with a different value is rejected.
func buildClaims(payload Claims, opts *SignOptions, at time.Time) (Claims, error) {
	if err := checkPayloadTypes(payload); err != nil {
		return nil, err
	}

	claims := payload.Clone()
	if claims == nil {
		claims = Claims{}
	}

	base := at.Unix()
	if opts.NoTimestamp {
		delete(claims, ClaimIssuedAt)
	} else if iat, ok := numeric(claims[ClaimIssuedAt]); ok {
		// backdated or pre-set iat
		base = int64(math.Floor(iat))
	} else {
		claims[ClaimIssuedAt] = base
	}

	if err := setOffset(claims, ClaimNotBefore, "notBefore", opts.NotBefore, base); err != nil {
		return nil, err
	}
	if err := setOffset(claims, ClaimExpiresAt, "expiresIn", opts.ExpiresIn, base); err != nil {
		return nil, err
	}

	if len(opts.Audience) > 0 {
		var aud any = slices.Clone(opts.Audience)
		if len(opts.Audience) == 1 {
			aud = opts.Audience[0]
		}
		if err := setClaim(claims, ClaimAudience, "audience", aud); err != nil {
			return nil, err
		}
	}

	for _, s := range [...]struct {
		claim, option, value string
	}{
		{ClaimIssuer, "issuer", opts.Issuer},
		{ClaimSubject, "subject", opts.Subject},
		{ClaimJWTID, "jwtid", opts.JWTID},
	} {
		if s.value == "" {
			continue
		}
		if err := setClaim(claims, s.claim, s.option, s.value); err != nil {
			return nil, err
		}
	}

	return claims, nil
}

func setOffset(claims Claims, claim, option string, span TimeSpan, base int64) error {
	if !span.IsSet() {
		return nil
	}
	offset, err := span.Resolve()
	if err != nil {
		return configError(`invalid "`+option+`" option`, &ValidationError{
			Field:   option,
			Message: "should be a number of seconds or a time span string",
			Err:     err,
		})
	}
	at, ok := addSeconds(base, offset)
	if !ok {
		return configError(`invalid "`+option+`" option`, &ValidationError{
			Field:   option,
			Message: "offset overflows the timestamp",
		})
	}
	return setClaim(claims, claim, option, at)
}

// addSeconds reports false when base+offset does not fit in an int64
func addSeconds(base, offset int64) (int64, bool) {
	sum := base + offset
	if (offset > 0 && sum < base) || (offset < 0 && sum > base) {
		return 0, false
	}
	return sum, true
}

func setClaim(claims Claims, claim, option string, value any) error {
	existing, ok := claims[claim]
	if ok && !sameClaim(existing, value) {
		return configError(`conflicting "`+option+`" option`, &ValidationError{
			Field:   claim,
			Message: "payload already has a different " + claim + " claim",
		})
	}
	claims[claim] = value
	return nil
}

func sameClaim(a, b any) bool {
	if x, ok := numeric(a); ok {
		y, ok := numeric(b)
		return ok && x == y
	}
	if as, ok := audienceList(a); ok {
		bs, ok := audienceList(b)
		return ok && slices.Equal(as, bs)
	}
	return false
}

// audienceList accepts a string or a list of strings
func audienceList(v any) ([]string, bool) {
	switch t := v.(type) {
	case string:
		return []string{t}, true
	case []string:
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// checkPayloadTypes rejects registered claims of the wrong JSON type
func checkPayloadTypes(payload Claims) error {
	for _, name := range [...]string{ClaimIssuedAt, ClaimNotBefore, ClaimExpiresAt} {
		if v, ok := payload[name]; ok {
			if _, isNum := numeric(v); !isNum {
				return fieldError(name, "must be a number")
			}
		}
	}

	if v, ok := payload[ClaimAudience]; ok {
		if _, isList := audienceList(v); !isList {
			return fieldError(ClaimAudience, "must be a string or an array of strings")
		}
	}

	for _, name := range [...]string{ClaimIssuer, ClaimSubject, ClaimJWTID} {
		if v, ok := payload[name]; ok {
			if _, isStr := v.(string); !isStr {
				return fieldError(name, "must be a string")
			}
		}
	}

	return nil
}
