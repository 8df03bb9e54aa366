// Package testkeys generates throwaway PEM key material for tests.
// Keys are generated once per process and shared.
package testkeys

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"sync"
	"testing"
	"time"
)

// Pair bundles a key pair in several encodings
type Pair struct {
	Private crypto.Signer
	Public  crypto.PublicKey

	PrivatePEM  []byte // PKCS#8 "PRIVATE KEY"
	PublicPEM   []byte // PKIX "PUBLIC KEY"
	LegacyPEM   []byte // PKCS#1 "RSA PRIVATE KEY" or SEC 1 "EC PRIVATE KEY"
	Certificate []byte // self-signed "CERTIFICATE"
}

var (
	mu    sync.Mutex
	cache = map[string]*Pair{}
)

// RSA returns a shared 2048-bit RSA pair
func RSA(tb testing.TB) *Pair {
	tb.Helper()
	return get(tb, "rsa", func() (crypto.Signer, error) {
		return rsa.GenerateKey(rand.Reader, 2048)
	})
}

// EC returns a shared pair on the given curve
func EC(tb testing.TB, curve elliptic.Curve) *Pair {
	tb.Helper()
	return get(tb, "ec-"+curve.Params().Name, func() (crypto.Signer, error) {
		return ecdsa.GenerateKey(curve, rand.Reader)
	})
}

func get(tb testing.TB, name string, gen func() (crypto.Signer, error)) *Pair {
	tb.Helper()

	mu.Lock()
	defer mu.Unlock()

	if p, ok := cache[name]; ok {
		return p
	}

	priv, err := gen()
	if err != nil {
		tb.Fatalf("generating %s key: %v", name, err)
	}
	p, err := encode(priv)
	if err != nil {
		tb.Fatalf("encoding %s key: %v", name, err)
	}
	cache[name] = p
	return p
}

func encode(priv crypto.Signer) (*Pair, error) {
	pkcs8, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, err
	}
	pubDER, err := x509.MarshalPKIXPublicKey(priv.Public())
	if err != nil {
		return nil, err
	}

	var legacy []byte
	switch k := priv.(type) {
	case *rsa.PrivateKey:
		legacy = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(k)})
	case *ecdsa.PrivateKey:
		der, err := x509.MarshalECPrivateKey(k)
		if err != nil {
			return nil, err
		}
		legacy = pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der})
	}

	cert, err := selfSigned(priv)
	if err != nil {
		return nil, err
	}

	return &Pair{
		Private:     priv,
		Public:      priv.Public(),
		PrivatePEM:  pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: pkcs8}),
		PublicPEM:   pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER}),
		LegacyPEM:   legacy,
		Certificate: cert,
	}, nil
}

func selfSigned(priv crypto.Signer) ([]byte, error) {
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "jwt test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, priv.Public(), priv)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), nil
}
