package signing

import (
	"crypto"
	"fmt"
)

// noneSigningMethod produces unsigned tokens. Callers must opt in explicitly on both sides.
type noneSigningMethod struct{}

func (noneSigningMethod) Sign(_ string, key []byte) ([]byte, error) {
	if len(key) != 0 {
		return nil, fmt.Errorf("%w: alg none does not take a key", ErrInvalidKey)
	}
	return []byte{}, nil
}

// Verify accepts only an empty signature with no key supplied
func (noneSigningMethod) Verify(_ string, signature, key []byte) error {
	if len(key) != 0 || len(signature) != 0 {
		return ErrSignatureInvalid
	}
	return nil
}

func (noneSigningMethod) Alg() string {
	return "none"
}

func (noneSigningMethod) Family() Family {
	return FamilyNone
}

func (noneSigningMethod) Hash() crypto.Hash {
	return 0
}

var noneMethod Method = noneSigningMethod{}
