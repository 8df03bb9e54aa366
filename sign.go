package jwt

import (
	"errors"
	"fmt"
	"maps"

	"github.com/cybergodev/jsonwebtoken/internal/core"
	"github.com/cybergodev/jsonwebtoken/internal/signing"
)

// Sign serializes claims, adds the registered claims requested by opts and
// signs the result. The caller's map is not modified.
func Sign(claims Claims, key []byte, opts SignOptions) (string, error) {
	method, err := lookupMethod(opts.algorithm())
	if err != nil {
		return "", err
	}

	full, err := buildClaims(claims, &opts, now(opts.Now))
	if err != nil {
		return "", err
	}

	payload, err := core.MarshalJSON(full)
	if err != nil {
		return "", configError("payload is not serializable", err)
	}

	return sign(method, payload, key, &opts)
}

// SignRaw signs payload verbatim. Options that set registered claims are
// rejected because they need a structured payload.
func SignRaw(payload []byte, key []byte, opts SignOptions) (string, error) {
	if option, ok := opts.hasClaimOptions(); ok {
		return "", configError(fmt.Sprintf(`invalid "%s" option`, option), &ValidationError{
			Field:   option,
			Message: "only allowed with a claims payload",
		})
	}

	method, err := lookupMethod(opts.algorithm())
	if err != nil {
		return "", err
	}

	return sign(method, payload, key, &opts)
}

func sign(method signing.Method, payload, key []byte, opts *SignOptions) (string, error) {
	signingInput, err := core.Encode(buildHeader(method.Alg(), opts), payload)
	if err != nil {
		return "", configError("header is not serializable", err)
	}

	signature, err := method.Sign(signingInput, key)
	if err != nil {
		if errors.Is(err, signing.ErrInvalidKey) {
			return "", configError("invalid key for "+method.Alg(), err)
		}
		return "", configError("signing failed", err)
	}

	return core.Join(signingInput, signature), nil
}

// buildHeader merges extra header fields under alg, typ and kid
func buildHeader(alg string, opts *SignOptions) map[string]any {
	header := make(map[string]any, len(opts.Header)+3)
	maps.Copy(header, opts.Header)

	header["alg"] = alg
	header["typ"] = "JWT"
	if opts.KeyID != "" {
		header["kid"] = opts.KeyID
	}
	return header
}

func lookupMethod(alg Algorithm) (signing.Method, error) {
	method, ok := signing.Lookup(string(alg))
	if !ok {
		return nil, configError(fmt.Sprintf("unsupported algorithm %q", alg), &ValidationError{
			Field:   "algorithm",
			Message: "must be one of " + fmt.Sprint(signing.Algorithms(
				signing.FamilyHMAC, signing.FamilyRSA, signing.FamilyECDSA, signing.FamilyNone)),
		})
	}
	return method, nil
}
