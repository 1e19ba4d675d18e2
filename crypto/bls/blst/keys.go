// Package blst implements crypto/bls/common on top of
// github.com/supranational/blst, the same curve library Prysm uses for
// its production BLS backend.
package blst

import (
	"crypto/rand"
	"fmt"

	blst "github.com/supranational/blst/bindings/go"

	"github.com/stakewise/dvt-relayer/crypto/bls/common"
)

var dstSignature = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_")

type SecretKey struct {
	p *blst.SecretKey
}

type PublicKey struct {
	p *blst.P1Affine
}

type Signature struct {
	s *blst.P2Affine
}

// RandKey generates a fresh random secret key. Used by tests and by the
// simulator-style fixtures that exercise threshold recovery end to end.
func RandKey() (*SecretKey, error) {
	var ikm [32]byte
	if _, err := rand.Read(ikm[:]); err != nil {
		return nil, fmt.Errorf("reading random seed: %w", err)
	}
	sk := blst.KeyGen(ikm[:])
	if sk == nil {
		return nil, fmt.Errorf("blst key generation failed")
	}
	return &SecretKey{p: sk}, nil
}

// SecretKeyFromBytes parses a 32-byte big-endian scalar.
func SecretKeyFromBytes(b []byte) (*SecretKey, error) {
	if len(b) != common.SecretKeyLength {
		return nil, fmt.Errorf("invalid secret key length %d", len(b))
	}
	sk := new(blst.SecretKey).Deserialize(b)
	if sk == nil {
		return nil, fmt.Errorf("invalid secret key bytes")
	}
	return &SecretKey{p: sk}, nil
}

func (s *SecretKey) PublicKey() common.PublicKey {
	pk := new(blst.P1Affine).From(s.p)
	return &PublicKey{p: pk}
}

func (s *SecretKey) Sign(msg []byte) common.Signature {
	sig := new(blst.P2Affine).Sign(s.p, msg, dstSignature)
	return &Signature{s: sig}
}

func (s *SecretKey) Marshal() []byte {
	return s.p.Serialize()
}

// PublicKeyFromBytes parses a 48-byte compressed G1 point.
func PublicKeyFromBytes(b []byte) (common.PublicKey, error) {
	if len(b) != common.PublicKeyLength {
		return nil, fmt.Errorf("invalid public key length %d", len(b))
	}
	p := new(blst.P1Affine).Uncompress(b)
	if p == nil || !p.KeyValidate() {
		return nil, fmt.Errorf("invalid public key bytes")
	}
	return &PublicKey{p: p}, nil
}

func (p *PublicKey) Marshal() []byte {
	return p.p.Compress()
}

func (p *PublicKey) Equals(other common.PublicKey) bool {
	o, ok := other.(*PublicKey)
	if !ok {
		return false
	}
	return p.p.Equals(o.p)
}

// SignatureFromBytes parses a 96-byte compressed G2 point.
func SignatureFromBytes(b []byte) (common.Signature, error) {
	if len(b) != common.SignatureLength {
		return nil, fmt.Errorf("invalid signature length %d", len(b))
	}
	s := new(blst.P2Affine).Uncompress(b)
	if s == nil || !s.SigValidate(false) {
		return nil, fmt.Errorf("invalid signature bytes")
	}
	return &Signature{s: s}, nil
}

func (s *Signature) Marshal() []byte {
	return s.s.Compress()
}

func (s *Signature) Verify(pubKey common.PublicKey, msg []byte) bool {
	pk, ok := pubKey.(*PublicKey)
	if !ok {
		return false
	}
	return s.s.Verify(false, pk.p, false, msg, dstSignature)
}
