package jwt

import (
	"crypto/elliptic"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybergodev/jsonwebtoken/internal/testkeys"
)

func flipBit(t *testing.T, token string, bit int) string {
	t.Helper()
	parts := strings.Split(token, ".")
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	sig[bit/8] ^= 1 << (bit % 8)
	return parts[0] + "." + parts[1] + "." + base64.RawURLEncoding.EncodeToString(sig)
}

func TestSecurityTamperDetection(t *testing.T) {
	// Expired claims make sure a claims error can never mask a bad signature
	claims := Claims{"sub": "user123", "exp": nowUnix - 3600}

	for _, tc := range algorithmCases(t) {
		t.Run(string(tc.alg), func(t *testing.T) {
			token, err := Sign(claims, tc.signKey, SignOptions{Algorithm: tc.alg, Now: fixedClock})
			require.NoError(t, err)

			parts := strings.Split(token, ".")
			sig, err := base64.RawURLEncoding.DecodeString(parts[2])
			require.NoError(t, err)
			totalBits := len(sig) * 8

			bits := []int{0, totalBits / 2, totalBits - 1}
			if tc.alg == HS256 {
				bits = bits[:0]
				for i := 0; i < totalBits; i++ {
					bits = append(bits, i)
				}
			}

			opts := VerifyOptions{Algorithms: []Algorithm{tc.alg}, Now: fixedClock}
			for _, bit := range bits {
				_, err := Verify(flipBit(t, token, bit), tc.verifyKey, opts)
				assertError(t, err, KindInvalid, "invalid signature")
			}
		})
	}
}

func TestSecurityTamperedPayload(t *testing.T) {
	token, err := Sign(Claims{"admin": false}, testSecret, SignOptions{})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	forged := base64.RawURLEncoding.EncodeToString([]byte(`{"admin":true}`))

	_, err = Verify(parts[0]+"."+forged+"."+parts[2], testSecret, VerifyOptions{})
	assertError(t, err, KindInvalid, "invalid signature")
}

func TestSecurityAlgorithmNone(t *testing.T) {
	token, err := Sign(Claims{"sub": "user123"}, nil, SignOptions{Algorithm: None, Now: fixedClock})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(token, "."), "unsigned token has an empty signature segment")

	tests := []struct {
		name    string
		key     []byte
		opts    VerifyOptions
		kind    ErrorKind
		wantMsg string
	}{
		{"default allow-list without key", nil, VerifyOptions{}, KindInvalid, "invalid algorithm"},
		{"default allow-list with secret", testSecret, VerifyOptions{}, KindInvalid, "invalid algorithm"},
		{"HMAC allow-list", testSecret, VerifyOptions{Algorithms: []Algorithm{HS256}}, KindInvalid, "invalid algorithm"},
		{"none allowed but key given", testSecret, VerifyOptions{Algorithms: []Algorithm{None}}, KindInvalid, "invalid signature"},
		{"none allowed", nil, VerifyOptions{Algorithms: []Algorithm{None}}, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Now = fixedClock
			claims, err := Verify(token, tt.key, tt.opts)
			if tt.kind == 0 {
				require.NoError(t, err)
				assert.Equal(t, "user123", claims["sub"])
				return
			}
			assertError(t, err, tt.kind, tt.wantMsg)
			assert.Nil(t, claims)
		})
	}
}

func TestSecurityNoneTokenWithSignature(t *testing.T) {
	token, err := Sign(Claims{}, nil, SignOptions{Algorithm: None})
	require.NoError(t, err)

	_, err = Verify(token+"c2ln", nil, VerifyOptions{Algorithms: []Algorithm{None}})
	assertError(t, err, KindInvalid, "invalid signature")
}

func TestSecurityAlgorithmConfusionAttack(t *testing.T) {
	pair := testkeys.RSA(t)

	rsToken, err := Sign(Claims{"sub": "user123"}, pair.PrivatePEM, SignOptions{Algorithm: RS256})
	require.NoError(t, err)

	t.Run("RSA token against HMAC-only verifier", func(t *testing.T) {
		_, err := Verify(rsToken, pair.PublicPEM, VerifyOptions{Algorithms: []Algorithm{HS256}})
		assertError(t, err, KindInvalid, "invalid algorithm")
	})

	// Attacker signs HS256 using the public key bytes as the MAC secret
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"admin"}`))
	mac := hmac.New(sha256.New, pair.PublicPEM)
	mac.Write([]byte(header + "." + payload))
	forged := header + "." + payload + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	t.Run("forged HMAC with public key and default allow-list", func(t *testing.T) {
		_, err := Verify(forged, pair.PublicPEM, VerifyOptions{})
		assertError(t, err, KindInvalid, "invalid algorithm")
	})

	t.Run("forged HMAC with public key explicitly allowed", func(t *testing.T) {
		_, err := Verify(forged, pair.PublicPEM, VerifyOptions{Algorithms: []Algorithm{HS256, RS256}})
		assertError(t, err, KindConfig, "")
	})

	t.Run("certificate default allow-list", func(t *testing.T) {
		_, err := Verify(rsToken, pair.Certificate, VerifyOptions{})
		assert.NoError(t, err)
		_, err = Verify(forged, pair.Certificate, VerifyOptions{})
		assertError(t, err, KindInvalid, "invalid algorithm")
	})
}

func TestSecurityKeyFamilyOnVerify(t *testing.T) {
	p256 := testkeys.EC(t, elliptic.P256())
	p384 := testkeys.EC(t, elliptic.P384())
	rsaPair := testkeys.RSA(t)

	esToken, err := Sign(Claims{}, p256.PrivatePEM, SignOptions{Algorithm: ES256})
	require.NoError(t, err)
	hsToken, err := Sign(Claims{}, testSecret, SignOptions{})
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		key     []byte
		opts    VerifyOptions
		kind    ErrorKind
		wantMsg string
	}{
		{"wrong curve", esToken, p384.PublicPEM, VerifyOptions{Algorithms: []Algorithm{ES256}}, KindConfig, ""},
		{"RSA key for ECDSA token", esToken, rsaPair.PublicPEM, VerifyOptions{Algorithms: []Algorithm{ES256}}, KindConfig, ""},
		{"raw secret for ECDSA token", esToken, testSecret, VerifyOptions{Algorithms: []Algorithm{ES256}}, KindConfig, ""},
		{"empty key", hsToken, nil, VerifyOptions{Algorithms: []Algorithm{HS256}}, KindConfig, "secret or public key must be provided"},
		{"wrong secret", hsToken, []byte("another-secret"), VerifyOptions{}, KindInvalid, "invalid signature"},
		{"SEC 1 key default allow-list", esToken, p256.LegacyPEM, VerifyOptions{}, 0, ""},
		{"SEC 1 key refuses HMAC token", hsToken, p256.LegacyPEM, VerifyOptions{}, KindInvalid, "invalid algorithm"},
		{"RSA public key refuses ECDSA token", esToken, rsaPair.PublicPEM, VerifyOptions{}, KindInvalid, "invalid algorithm"},
		{"RSA certificate refuses ECDSA token", esToken, rsaPair.Certificate, VerifyOptions{}, KindInvalid, "invalid algorithm"},
		{"EC public key default allow-list", esToken, p256.PublicPEM, VerifyOptions{}, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Verify(tt.token, tt.key, tt.opts)
			if tt.kind == 0 {
				assert.NoError(t, err)
				return
			}
			assertError(t, err, tt.kind, tt.wantMsg)
		})
	}
}

func TestSecurityUnknownHeaderAlgorithm(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing alg", `{"typ":"JWT"}`},
		{"numeric alg", `{"alg":256}`},
		{"unsupported alg", `{"alg":"PS256"}`},
		{"case variant", `{"alg":"NONE"}`},
	}

	payload := base64.RawURLEncoding.EncodeToString([]byte(`{}`))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := base64.RawURLEncoding.EncodeToString([]byte(tt.header)) + "." + payload + ".c2ln"
			_, err := Verify(token, testSecret, VerifyOptions{})
			assertError(t, err, KindInvalid, "invalid algorithm")
		})
	}
}
