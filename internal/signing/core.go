package signing

import (
	"crypto"
	"errors"

	_ "crypto/sha256"
	_ "crypto/sha512"
)

var (
	// ErrInvalidKey is returned when key material does not fit the algorithm family.
	// It is raised before any cryptographic operation runs.
	ErrInvalidKey = errors.New("invalid key for algorithm")

	// ErrSignatureInvalid is returned when a signature does not match the signing input
	ErrSignatureInvalid = errors.New("signature verification failed")
)

// Family groups algorithms that share key material and semantics
type Family uint8

const (
	FamilyNone Family = iota
	FamilyHMAC
	FamilyRSA
	FamilyECDSA
)

func (f Family) String() string {
	switch f {
	case FamilyHMAC:
		return "HMAC"
	case FamilyRSA:
		return "RSA"
	case FamilyECDSA:
		return "ECDSA"
	default:
		return "none"
	}
}

// Method represents a signing method for JWT tokens
type Method interface {
	Alg() string
	Family() Family
	Hash() crypto.Hash
	Sign(signingInput string, key []byte) ([]byte, error)
	Verify(signingInput string, signature, key []byte) error
}

// methods is the static lookup table. It is never written after package init.
var methods = map[string]Method{
	"HS256": hmacHS256,
	"HS384": hmacHS384,
	"HS512": hmacHS512,
	"RS256": rsaRS256,
	"RS384": rsaRS384,
	"RS512": rsaRS512,
	"ES256": ecdsaES256,
	"ES384": ecdsaES384,
	"ES512": ecdsaES512,
	"none":  noneMethod,
}

// order keeps Algorithms output stable
var order = [...]string{
	"HS256", "HS384", "HS512",
	"RS256", "RS384", "RS512",
	"ES256", "ES384", "ES512",
	"none",
}

// Lookup returns the method registered for alg. Names are case-sensitive.
func Lookup(alg string) (Method, bool) {
	m, ok := methods[alg]
	return m, ok
}

// Algorithms lists the algorithm names of the given families in a fixed order
func Algorithms(families ...Family) []string {
	var out []string
	for _, alg := range order {
		f := methods[alg].Family()
		for _, want := range families {
			if f == want {
				out = append(out, alg)
				break
			}
		}
	}
	return out
}
