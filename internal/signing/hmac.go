package signing

import (
	"crypto"
	"crypto/hmac"
	"fmt"

	"github.com/cybergodev/jsonwebtoken/internal/security"
)

type hmacSigningMethod struct {
	Name     string
	HashFunc crypto.Hash
}

func (h *hmacSigningMethod) Verify(signingInput string, signature, key []byte) error {
	if err := checkSecret(key); err != nil {
		return err
	}

	expected := h.mac(signingInput, key)
	defer security.ZeroBytes(expected)

	//  Constant-time comparison to prevent timing attacks
	if !security.SecureCompare(signature, expected) {
		return ErrSignatureInvalid
	}

	return nil
}

func (h *hmacSigningMethod) Sign(signingInput string, key []byte) ([]byte, error) {
	if err := checkSecret(key); err != nil {
		return nil, err
	}

	return h.mac(signingInput, key), nil
}

func (h *hmacSigningMethod) mac(signingInput string, key []byte) []byte {
	hasher := hmac.New(h.HashFunc.New, key)
	hasher.Write([]byte(signingInput))
	return hasher.Sum(nil)
}

func (h *hmacSigningMethod) Alg() string {
	return h.Name
}

func (h *hmacSigningMethod) Family() Family {
	return FamilyHMAC
}

func (h *hmacSigningMethod) Hash() crypto.Hash {
	return h.HashFunc
}

// checkSecret rejects key material that belongs to an asymmetric family.
// A PEM public key reused as a MAC secret is the classic algorithm-confusion forgery.
func checkSecret(key []byte) error {
	if len(key) == 0 {
		return fmt.Errorf("%w: HMAC secret must not be empty", ErrInvalidKey)
	}
	if IsPEM(key) {
		return fmt.Errorf("%w: PEM key material cannot be used as an HMAC secret", ErrInvalidKey)
	}
	return nil
}

var (
	hmacHS256 = &hmacSigningMethod{"HS256", crypto.SHA256}
	hmacHS384 = &hmacSigningMethod{"HS384", crypto.SHA384}
	hmacHS512 = &hmacSigningMethod{"HS512", crypto.SHA512}
)
