package signing

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"
)

// ecdsaSigningMethod encodes signatures as the fixed-width R || S pair of RFC 7518 §3.4
type ecdsaSigningMethod struct {
	Name     string
	HashFunc crypto.Hash
	Curve    elliptic.Curve
	KeySize  int // bytes per coordinate
}

func (e *ecdsaSigningMethod) Sign(signingInput string, key []byte) ([]byte, error) {
	priv, err := ecPrivateKey(key)
	if err != nil {
		return nil, err
	}
	if err := e.checkCurve(priv.Curve); err != nil {
		return nil, err
	}

	digest := digestOf(e.HashFunc, signingInput)
	r, s, err := ecdsa.Sign(rand.Reader, priv, digest)
	if err != nil {
		return nil, fmt.Errorf("ecdsa sign: %w", err)
	}

	out := make([]byte, 2*e.KeySize)
	r.FillBytes(out[:e.KeySize])
	s.FillBytes(out[e.KeySize:])
	return out, nil
}

func (e *ecdsaSigningMethod) Verify(signingInput string, signature, key []byte) error {
	pub, err := ecPublicKey(key)
	if err != nil {
		return err
	}
	if err := e.checkCurve(pub.Curve); err != nil {
		return err
	}

	if len(signature) != 2*e.KeySize {
		return ErrSignatureInvalid
	}

	r := new(big.Int).SetBytes(signature[:e.KeySize])
	s := new(big.Int).SetBytes(signature[e.KeySize:])

	digest := digestOf(e.HashFunc, signingInput)
	if !ecdsa.Verify(pub, digest, r, s) {
		return ErrSignatureInvalid
	}
	return nil
}

func (e *ecdsaSigningMethod) checkCurve(c elliptic.Curve) error {
	if c != e.Curve {
		return fmt.Errorf("%w: %s requires curve %s, got %s",
			ErrInvalidKey, e.Name, e.Curve.Params().Name, c.Params().Name)
	}
	return nil
}

func (e *ecdsaSigningMethod) Alg() string {
	return e.Name
}

func (e *ecdsaSigningMethod) Family() Family {
	return FamilyECDSA
}

func (e *ecdsaSigningMethod) Hash() crypto.Hash {
	return e.HashFunc
}

// ES512 is P-521, not a 512-bit curve
var (
	ecdsaES256 = &ecdsaSigningMethod{"ES256", crypto.SHA256, elliptic.P256(), 32}
	ecdsaES384 = &ecdsaSigningMethod{"ES384", crypto.SHA384, elliptic.P384(), 48}
	ecdsaES512 = &ecdsaSigningMethod{"ES512", crypto.SHA512, elliptic.P521(), 66}
)
