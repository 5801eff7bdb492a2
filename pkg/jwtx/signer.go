package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)

	// VerificationKey is the key a verifier needs for this signer's tokens:
	// the shared secret for HMAC, the public key for asymmetric algorithms.
	VerificationKey() any
}

// MinHMACKeySize is the smallest shared secret accepted for HS256.
const MinHMACKeySize = 32

// NewSignerHS256 creates an HS256 signer from a shared secret.
func NewSignerHS256(kid string, secret []byte) (Signer, error) {
	if len(secret) < MinHMACKeySize {
		return nil, errors.New("jwtx: HS256 secret must be at least 32 bytes")
	}
	return &hs256Signer{kid: kid, secret: append([]byte(nil), secret...)}, nil
}

// NewSignerEdDSA creates an EdDSA signer from PEM bytes.
// Ed25519 keys must be in PKCS8 format.
func NewSignerEdDSA(kid string, pemKey []byte) (Signer, error) {
	return newEdDSASigner(kid, pemKey)
}

type hs256Signer struct {
	kid    string
	secret []byte
}

func (s *hs256Signer) Alg() string          { return jwt.SigningMethodHS256.Alg() }
func (s *hs256Signer) KID() string          { return s.kid }
func (s *hs256Signer) VerificationKey() any { return s.secret }

func (s *hs256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.secret)
}
