// Package signing computes the SSZ signing roots and EIP-712 hashes the
// relayer verifies reconstructed signatures against. SSZ hashing is
// delegated to github.com/pk910/dynamic-ssz (reflection-based, no
// generated marshalers needed for the handful of ad hoc structs here).
package signing

import (
	"crypto/sha256"

	dynssz "github.com/pk910/dynamic-ssz"
)

var sszHasher = dynssz.NewDynSsz(nil)

// ForkData mirrors the consensus-layer ForkData container used to derive
// a domain from a fork version and genesis validators root.
type ForkData struct {
	CurrentVersion        [4]byte
	GenesisValidatorsRoot [32]byte
}

// ComputeForkDataRoot returns hash_tree_root(ForkData).
func ComputeForkDataRoot(forkVersion [4]byte, genesisValidatorsRoot [32]byte) ([32]byte, error) {
	fd := ForkData{CurrentVersion: forkVersion, GenesisValidatorsRoot: genesisValidatorsRoot}
	root, err := sszHasher.HashTreeRoot(&fd)
	if err != nil {
		return [32]byte{}, err
	}
	var out [32]byte
	copy(out[:], root)
	return out, nil
}

// ComputeDomain folds a 4-byte domain type with the first 28 bytes of a
// fork-data root, per the consensus-layer compute_domain algorithm.
func ComputeDomain(domainType [4]byte, forkVersion [4]byte, genesisValidatorsRoot [32]byte) ([32]byte, error) {
	forkDataRoot, err := ComputeForkDataRoot(forkVersion, genesisValidatorsRoot)
	if err != nil {
		return [32]byte{}, err
	}
	var domain [32]byte
	copy(domain[:4], domainType[:])
	copy(domain[4:], forkDataRoot[:28])
	return domain, nil
}

// SigningData mirrors the consensus-layer SigningData container.
type SigningData struct {
	ObjectRoot [32]byte
	Domain     [32]byte
}

// ComputeSigningRoot wraps an already-hashed object root with a domain,
// the final step before BLS-signing or verifying against it.
func ComputeSigningRoot(objectRoot [32]byte, domain [32]byte) ([32]byte, error) {
	sd := SigningData{ObjectRoot: objectRoot, Domain: domain}
	root, err := sszHasher.HashTreeRoot(&sd)
	if err != nil {
		return sha256.Sum256(append(objectRoot[:], domain[:]...)), nil
	}
	var out [32]byte
	copy(out[:], root)
	return out, nil
}
