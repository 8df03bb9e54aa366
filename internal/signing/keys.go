package signing

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/rsa"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var pemMarker = []byte("-----BEGIN ")

// IsPEM reports whether key carries a PEM block
func IsPEM(key []byte) bool {
	return bytes.Contains(key, pemMarker)
}

// PEMLabel returns the label of the first PEM block, e.g. "PUBLIC KEY"
func PEMLabel(key []byte) string {
	i := bytes.Index(key, pemMarker)
	if i < 0 {
		return ""
	}
	rest := key[i+len(pemMarker):]
	end := bytes.Index(rest, []byte("-----"))
	if end < 0 {
		return ""
	}
	return string(rest[:end])
}

// DefaultFamilies picks the family a verification key serves when the caller
// gave no explicit algorithm allow-list. Generic PEM blocks (PKIX public keys,
// certificates, PKCS#8 private keys) are parsed to find it; both asymmetric
// families are returned only when the key parses as neither.
func DefaultFamilies(key []byte) []Family {
	if !IsPEM(key) {
		return []Family{FamilyHMAC}
	}
	switch PEMLabel(key) {
	case "RSA PUBLIC KEY", "RSA PRIVATE KEY":
		return []Family{FamilyRSA}
	case "EC PRIVATE KEY", "EC PUBLIC KEY":
		return []Family{FamilyECDSA}
	}
	if _, err := rsaPublicKey(key); err == nil {
		return []Family{FamilyRSA}
	}
	if _, err := ecPublicKey(key); err == nil {
		return []Family{FamilyECDSA}
	}
	return []Family{FamilyRSA, FamilyECDSA}
}

func requirePEM(key []byte, family Family) error {
	if len(key) == 0 {
		return fmt.Errorf("%w: %s requires key material", ErrInvalidKey, family)
	}
	if !IsPEM(key) {
		return fmt.Errorf("%w: %s requires a PEM-encoded key, got a raw secret", ErrInvalidKey, family)
	}
	return nil
}

func rsaPrivateKey(key []byte) (*rsa.PrivateKey, error) {
	if err := requirePEM(key, FamilyRSA); err != nil {
		return nil, err
	}
	priv, err := jwt.ParseRSAPrivateKeyFromPEM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return priv, nil
}

// rsaPublicKey accepts a public key, a certificate, or a private key
func rsaPublicKey(key []byte) (*rsa.PublicKey, error) {
	if err := requirePEM(key, FamilyRSA); err != nil {
		return nil, err
	}
	pub, err := jwt.ParseRSAPublicKeyFromPEM(key)
	if err == nil {
		return pub, nil
	}
	if priv, privErr := jwt.ParseRSAPrivateKeyFromPEM(key); privErr == nil {
		return &priv.PublicKey, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
}

func ecPrivateKey(key []byte) (*ecdsa.PrivateKey, error) {
	if err := requirePEM(key, FamilyECDSA); err != nil {
		return nil, err
	}
	priv, err := jwt.ParseECPrivateKeyFromPEM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return priv, nil
}

// ecPublicKey accepts a public key, a certificate, or a private key
func ecPublicKey(key []byte) (*ecdsa.PublicKey, error) {
	if err := requirePEM(key, FamilyECDSA); err != nil {
		return nil, err
	}
	pub, err := jwt.ParseECPublicKeyFromPEM(key)
	if err == nil {
		return pub, nil
	}
	if priv, privErr := jwt.ParseECPrivateKeyFromPEM(key); privErr == nil {
		return &priv.PublicKey, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
}
