// Package common declares the BLS primitive interfaces the rest of the
// relayer codes against, independent of the concrete curve library.
// Mirrors the shape of Prysm's crypto/bls/common package.
package common

// SecretKey is a BLS12-381 secret scalar.
type SecretKey interface {
	PublicKey() PublicKey
	Sign(msg []byte) Signature
	Marshal() []byte
}

// PublicKey is a BLS12-381 G1 point.
type PublicKey interface {
	Marshal() []byte
	Equals(PublicKey) bool
}

// Signature is a BLS12-381 G2 point.
type Signature interface {
	Marshal() []byte
	Verify(pubKey PublicKey, msg []byte) bool
}

// Sizes of the wire encodings this relayer accepts. A BLS public key is a
// compressed G1 point; a signature is a compressed G2 point.
const (
	PublicKeyLength = 48
	SignatureLength = 96
	SecretKeyLength = 32
)
