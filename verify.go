package jwt

import (
	"errors"
	"slices"
	"time"

	"github.com/cybergodev/jsonwebtoken/internal/core"
	"github.com/cybergodev/jsonwebtoken/internal/signing"
)

// Verify checks the token's algorithm, signature and registered claims and
// returns its claims. The payload must be a JSON object.
func Verify(token string, key []byte, opts VerifyOptions) (Claims, error) {
	t, err := verify(token, key, &opts, true)
	if err != nil {
		return nil, err
	}
	return t.Claims, nil
}

// VerifyToken is Verify returning the header and signature as well. A payload
// that is not a JSON object is accepted and validated as an empty claim set.
func VerifyToken(token string, key []byte, opts VerifyOptions) (*Token, error) {
	return verify(token, key, &opts, false)
}

func verify(token string, key []byte, opts *VerifyOptions, requireJSON bool) (*Token, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	v := &verification{
		raw:         token,
		key:         key,
		opts:        opts,
		at:          now(opts.Now),
		requireJSON: requireJSON,
	}
	return v.run()
}

type state uint8

const (
	stateStart state = iota
	stateDecoded
	stateAlgorithmChecked
	stateSignatureVerified
	stateClaimsValidated
	stateAccepted
	stateRejected
)

func (s state) String() string {
	switch s {
	case stateStart:
		return "start"
	case stateDecoded:
		return "decoded"
	case stateAlgorithmChecked:
		return "algorithm checked"
	case stateSignatureVerified:
		return "signature verified"
	case stateClaimsValidated:
		return "claims validated"
	case stateAccepted:
		return "accepted"
	default:
		return "rejected"
	}
}

// verification walks one token through the states in order.
// Any failing step moves it to stateRejected and stops.
type verification struct {
	raw         string
	key         []byte
	opts        *VerifyOptions
	at          time.Time
	requireJSON bool

	state  state
	parsed *core.Parsed
	header Header
	claims Claims
	method signing.Method
}

func (v *verification) run() (*Token, error) {
	steps := [...]struct {
		next state
		fn   func() error
	}{
		{stateDecoded, v.decode},
		{stateAlgorithmChecked, v.checkAlgorithm},
		{stateSignatureVerified, v.verifySignature},
		{stateClaimsValidated, v.validateClaims},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			v.state = stateRejected
			return nil, err
		}
		v.state = step.next
	}
	v.state = stateAccepted

	return &Token{
		Header:       v.header,
		Claims:       v.claims,
		Payload:      v.parsed.Payload,
		Signature:    v.parsed.Signature,
		SigningInput: v.parsed.SigningInput,
		Raw:          v.raw,
	}, nil
}

func (v *verification) decode() error {
	parsed, header, claims, err := decodeToken(v.raw, v.requireJSON)
	if err != nil {
		return err
	}
	v.parsed = parsed
	v.header = header
	v.claims = claims
	return nil
}

// checkAlgorithm runs before any signature work so that alg none or an
// HMAC keyed with a public key can never reach the provider.
func (v *verification) checkAlgorithm() error {
	alg := v.header.Alg()
	if alg == "" {
		return invalid(msgInvalidAlgorithm)
	}

	method, ok := signing.Lookup(alg)
	if !ok {
		return invalid(msgInvalidAlgorithm)
	}

	if !slices.Contains(allowedAlgorithms(v.opts.Algorithms, v.key), Algorithm(alg)) {
		return invalid(msgInvalidAlgorithm)
	}

	v.method = method
	return nil
}

func (v *verification) verifySignature() error {
	p := v.parsed

	if v.method.Family() == signing.FamilyNone {
		if p.SignatureErr != nil || v.method.Verify(p.SigningInput, p.Signature, v.key) != nil {
			return invalid(msgInvalidSignature)
		}
		return nil
	}

	if len(v.key) == 0 {
		return configError("secret or public key must be provided", nil)
	}
	if p.SignatureErr != nil || len(p.Signature) == 0 {
		return invalid(msgInvalidSignature)
	}

	err := v.method.Verify(p.SigningInput, p.Signature, v.key)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, signing.ErrInvalidKey):
		return configError("invalid key for "+v.method.Alg(), err)
	default:
		return invalid(msgInvalidSignature)
	}
}

func (v *verification) validateClaims() error {
	claims := v.claims
	if claims == nil {
		claims = Claims{}
	}
	return validateClaims(claims, v.opts, v.at)
}

// allowedAlgorithms returns the explicit allow-list, or the one implied by the key
func allowedAlgorithms(explicit []Algorithm, key []byte) []Algorithm {
	if len(explicit) > 0 {
		return explicit
	}
	names := signing.Algorithms(signing.DefaultFamilies(key)...)
	out := make([]Algorithm, len(names))
	for i, name := range names {
		out[i] = Algorithm(name)
	}
	return out
}
