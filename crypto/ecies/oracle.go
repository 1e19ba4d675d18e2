// Package ecies encrypts re-shared exit-signature shares for the oracle
// committee, one ciphertext per oracle under its secp256k1 public key.
// Wraps github.com/ethereum/go-ethereum/crypto/ecies, the real ECIES
// implementation shipped inside go-ethereum (already a dependency of the
// execution client).
package ecies

import (
	"crypto/rand"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/crypto/ecies"
	"github.com/pkg/errors"
)

// EncryptForOracle encrypts plaintext (typically a BLS signature share)
// under the oracle's secp256k1 public key, given in the 65-byte
// uncompressed 0x04||X||Y encoding parsed by crypto.UnmarshalPubkey.
// Compressed keys are rejected.
func EncryptForOracle(oraclePubKey []byte, plaintext []byte) ([]byte, error) {
	pub, err := gethcrypto.UnmarshalPubkey(oraclePubKey)
	if err != nil {
		return nil, errors.Wrap(err, "parsing oracle public key")
	}
	eciesPub := ecies.ImportECDSAPublic(pub)
	ciphertext, err := ecies.Encrypt(rand.Reader, eciesPub, plaintext, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "ecies encrypt")
	}
	return ciphertext, nil
}
