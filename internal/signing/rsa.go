package signing

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
)

// rsaSigningMethod implements RSASSA-PKCS1-v1_5
type rsaSigningMethod struct {
	Name     string
	HashFunc crypto.Hash
}

func (r *rsaSigningMethod) Sign(signingInput string, key []byte) ([]byte, error) {
	priv, err := rsaPrivateKey(key)
	if err != nil {
		return nil, err
	}

	digest := digestOf(r.HashFunc, signingInput)
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, r.HashFunc, digest)
	if err != nil {
		return nil, fmt.Errorf("rsa sign: %w", err)
	}
	return sig, nil
}

func (r *rsaSigningMethod) Verify(signingInput string, signature, key []byte) error {
	pub, err := rsaPublicKey(key)
	if err != nil {
		return err
	}

	digest := digestOf(r.HashFunc, signingInput)
	if err := rsa.VerifyPKCS1v15(pub, r.HashFunc, digest, signature); err != nil {
		return ErrSignatureInvalid
	}
	return nil
}

func (r *rsaSigningMethod) Alg() string {
	return r.Name
}

func (r *rsaSigningMethod) Family() Family {
	return FamilyRSA
}

func (r *rsaSigningMethod) Hash() crypto.Hash {
	return r.HashFunc
}

func digestOf(h crypto.Hash, signingInput string) []byte {
	hasher := h.New()
	hasher.Write([]byte(signingInput))
	return hasher.Sum(nil)
}

var (
	rsaRS256 = &rsaSigningMethod{"RS256", crypto.SHA256}
	rsaRS384 = &rsaSigningMethod{"RS384", crypto.SHA384}
	rsaRS512 = &rsaSigningMethod{"RS512", crypto.SHA512}
)
