package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signAt(t *testing.T, claims Claims) string {
	t.Helper()
	token, err := Sign(claims, testSecret, SignOptions{Now: fixedClock})
	require.NoError(t, err)
	return token
}

func TestExpiryBoundary(t *testing.T) {
	const tolerance = 5

	tests := []struct {
		name      string
		exp       int64
		tolerance time.Duration
		wantErr   bool
	}{
		{"exp = now - 1", nowUnix - 1, 0, true},
		{"exp = now", nowUnix, 0, true},
		{"exp = now + 1", nowUnix + 1, 0, false},
		{"exp = now + tolerance", nowUnix + tolerance, tolerance * time.Second, false},
		{"exp = now - tolerance + 1", nowUnix - tolerance + 1, tolerance * time.Second, false},
		{"exp = now - tolerance", nowUnix - tolerance, tolerance * time.Second, true},
		{"exp = now - tolerance - 1", nowUnix - tolerance - 1, tolerance * time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := signAt(t, Claims{"exp": tt.exp})
			_, err := Verify(token, testSecret, VerifyOptions{
				ClockTolerance: tt.tolerance,
				Now:            fixedClock,
			})
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			assertError(t, err, KindExpired, "jwt expired")
			assert.ErrorIs(t, err, ErrExpired)
			assert.ErrorIs(t, err, ErrInvalid)

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, time.Unix(tt.exp, 0).UTC(), e.Date)
		})
	}
}

func TestNotBeforeBoundary(t *testing.T) {
	const tolerance = 5

	tests := []struct {
		name      string
		nbf       int64
		tolerance time.Duration
		wantErr   bool
	}{
		{"nbf = now + 1", nowUnix + 1, 0, true},
		{"nbf = now", nowUnix, 0, false},
		{"nbf = now - 1", nowUnix - 1, 0, false},
		{"nbf = now + tolerance", nowUnix + tolerance, tolerance * time.Second, false},
		{"nbf = now + tolerance + 1", nowUnix + tolerance + 1, tolerance * time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := signAt(t, Claims{"nbf": tt.nbf})
			_, err := Verify(token, testSecret, VerifyOptions{
				ClockTolerance: tt.tolerance,
				Now:            fixedClock,
			})
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			assertError(t, err, KindNotBefore, "jwt not active")
			assert.ErrorIs(t, err, ErrNotBefore)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.NotErrorIs(t, err, ErrExpired)

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, time.Unix(tt.nbf, 0).UTC(), e.Date)
		})
	}
}

func TestIgnoreTimeClaims(t *testing.T) {
	token := signAt(t, Claims{"exp": nowUnix - 100, "nbf": nowUnix + 100})

	_, err := Verify(token, testSecret, VerifyOptions{Now: fixedClock})
	assert.ErrorIs(t, err, ErrNotBefore, "nbf is checked before exp")

	_, err = Verify(token, testSecret, VerifyOptions{IgnoreNotBefore: true, Now: fixedClock})
	assert.ErrorIs(t, err, ErrExpired)

	_, err = Verify(token, testSecret, VerifyOptions{
		IgnoreNotBefore:  true,
		IgnoreExpiration: true,
		Now:              fixedClock,
	})
	assert.NoError(t, err)
}

func TestAudienceMatching(t *testing.T) {
	tests := []struct {
		name     string
		aud      any
		expected []string
		wantErr  bool
	}{
		{"list contains expected", []string{"a", "b"}, []string{"b"}, false},
		{"list misses expected", []string{"a", "b"}, []string{"c"}, true},
		{"scalar matches", "a", []string{"a"}, false},
		{"scalar misses", "a", []string{"b"}, true},
		{"any of several expected", "b", []string{"c", "b"}, false},
		{"missing aud", nil, []string{"a"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := Claims{}
			if tt.aud != nil {
				claims["aud"] = tt.aud
			}
			token := signAt(t, claims)

			_, err := Verify(token, testSecret, VerifyOptions{Audience: tt.expected, Now: fixedClock})
			if tt.wantErr {
				assertError(t, err, KindInvalid, "invalid audience")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStringClaimExpectations(t *testing.T) {
	token := signAt(t, Claims{"iss": "issuer-b", "sub": "user123", "jti": "id-1"})

	tests := []struct {
		name    string
		opts    VerifyOptions
		wantMsg string
	}{
		{"issuer in list", VerifyOptions{Issuer: []string{"issuer-a", "issuer-b"}}, ""},
		{"issuer mismatch", VerifyOptions{Issuer: []string{"issuer-a"}}, "invalid issuer"},
		{"subject match", VerifyOptions{Subject: "user123"}, ""},
		{"subject mismatch", VerifyOptions{Subject: "other"}, "invalid subject"},
		{"jwt id match", VerifyOptions{JWTID: "id-1"}, ""},
		{"jwt id mismatch", VerifyOptions{JWTID: "id-2"}, "invalid jwt id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Now = fixedClock
			_, err := Verify(token, testSecret, tt.opts)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assertError(t, err, KindInvalid, tt.wantMsg)
		})
	}
}

func TestValidationOrder(t *testing.T) {
	claims := Claims{
		"nbf": nowUnix + 100,
		"exp": nowUnix - 100,
		"aud": "a",
		"iss": "i",
		"sub": "s",
		"jti": "j",
	}
	opts := VerifyOptions{
		Audience: []string{"x"},
		Issuer:   []string{"x"},
		Subject:  "x",
		JWTID:    "x",
		Now:      fixedClock,
	}

	// Each step in turn is made to pass; the next one must report
	steps := []struct {
		wantMsg string
		fix     func(Claims, *VerifyOptions)
	}{
		{"jwt not active", func(Claims, *VerifyOptions) {}},
		{"jwt expired", func(_ Claims, o *VerifyOptions) { o.IgnoreNotBefore = true }},
		{"invalid audience", func(_ Claims, o *VerifyOptions) { o.IgnoreExpiration = true }},
		{"invalid issuer", func(_ Claims, o *VerifyOptions) { o.Audience = []string{"a"} }},
		{"invalid subject", func(_ Claims, o *VerifyOptions) { o.Issuer = []string{"i"} }},
		{"invalid jwt id", func(_ Claims, o *VerifyOptions) { o.Subject = "s" }},
		{"", func(_ Claims, o *VerifyOptions) { o.JWTID = "j" }},
	}

	for _, step := range steps {
		step.fix(claims, &opts)
		err := ValidateClaims(claims, opts)
		if step.wantMsg == "" {
			assert.NoError(t, err)
			continue
		}
		var e *Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, step.wantMsg, e.Message)
	}
}

func TestMaxAge(t *testing.T) {
	tests := []struct {
		name    string
		claims  Claims
		maxAge  TimeSpan
		kind    ErrorKind
		wantMsg string
	}{
		{"young enough", Claims{"iat": nowUnix - 30}, Seconds(60), 0, ""},
		{"span string", Claims{"iat": nowUnix - 100}, Span("2m"), 0, ""},
		{"too old", Claims{"iat": nowUnix - 100}, Seconds(60), KindExpired, "maxAge exceeded"},
		{"exactly at limit", Claims{"iat": nowUnix - 60}, Seconds(60), KindExpired, "maxAge exceeded"},
		{"missing iat", Claims{}, Seconds(60), KindInvalid, "iat required when maxAge is specified"},
		{"non-numeric iat", Claims{"iat": "yesterday"}, Seconds(60), KindInvalid, "invalid iat value"},
		{"bad span", Claims{"iat": nowUnix}, Span("forever"), KindConfig, `invalid "maxAge" option`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClaims(tt.claims, VerifyOptions{MaxAge: tt.maxAge, Now: fixedClock})
			if tt.kind == 0 {
				assert.NoError(t, err)
				return
			}
			assertError(t, err, tt.kind, tt.wantMsg)
		})
	}

	t.Run("date is the age limit", func(t *testing.T) {
		err := ValidateClaims(Claims{"iat": nowUnix - 100}, VerifyOptions{MaxAge: Seconds(60), Now: fixedClock})
		var e *Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, time.Unix(nowUnix-40, 0).UTC(), e.Date)
	})
}

func TestMaxAgeOnVerify(t *testing.T) {
	token, err := Sign(Claims{}, testSecret, SignOptions{NoTimestamp: true})
	require.NoError(t, err)

	_, err = Verify(token, testSecret, VerifyOptions{MaxAge: Seconds(60)})
	assertError(t, err, KindInvalid, "iat required when maxAge is specified")
}

func TestInvalidTimeClaimTypes(t *testing.T) {
	tests := []struct {
		payload string
		wantMsg string
	}{
		{`{"nbf":"soon"}`, "invalid nbf value"},
		{`{"exp":"later"}`, "invalid exp value"},
		{`{"iat":true}`, "invalid iat value"},
	}

	for _, tt := range tests {
		t.Run(tt.wantMsg, func(t *testing.T) {
			token, err := SignRaw([]byte(tt.payload), testSecret, SignOptions{})
			require.NoError(t, err)

			_, err = Verify(token, testSecret, VerifyOptions{})
			assertError(t, err, KindInvalid, tt.wantMsg)
		})
	}
}

func TestVerifyOptionsValidate(t *testing.T) {
	token := signAt(t, Claims{})

	_, err := Verify(token, testSecret, VerifyOptions{ClockTolerance: -time.Second})
	assertError(t, err, KindConfig, "invalid clockTolerance")

	_, err = Verify(token, testSecret, VerifyOptions{Algorithms: []Algorithm{""}})
	assertError(t, err, KindConfig, "invalid algorithms")

	err = ValidateClaims(Claims{}, VerifyOptions{ClockTolerance: -time.Second})
	assertError(t, err, KindConfig, "")
}
