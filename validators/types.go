// Package validators implements the validator lifecycle registry: the
// in-memory, process-wide mapping from public key to accumulating share
// submissions, and the aggregation pipeline that turns a quorum of
// shares into a committed signature and an oracle re-share payload.
package validators

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// ValidatorType selects the withdrawal-credentials derivation.
type ValidatorType int

const (
	V1 ValidatorType = iota + 1
	V2
)

// OraclesExitSignatureShares is the per-oracle payload produced once a
// validator's exit signature is reconstructed and re-split for the
// oracle committee: parallel lists in committee order.
type OraclesExitSignatureShares struct {
	PublicKeys              []string
	EncryptedExitSignatures []string
}

// Validator is the central mutable record tracked by the registry.
type Validator struct {
	PublicKey      string // 0x-prefixed 48-byte hex
	Vault          common.Address
	ValidatorIndex uint64
	Amount         uint64 // gwei
	ValidatorType  ValidatorType
	CreatedAt      int64 // unix seconds

	DepositShares    map[uint64][]byte // share_index -> partial signature bytes
	DepositSignature []byte            // full 96-byte signature once committed

	ExitShares    map[uint64][]byte
	ExitSignature []byte

	OraclesShares *OraclesExitSignatureShares
}

func newValidator(publicKey string, index uint64, vault common.Address, amount uint64, vt ValidatorType, now int64) *Validator {
	return &Validator{
		PublicKey:      publicKey,
		Vault:          vault,
		ValidatorIndex: index,
		Amount:         amount,
		ValidatorType:  vt,
		CreatedAt:      now,
		DepositShares:  make(map[uint64][]byte),
		ExitShares:     make(map[uint64][]byte),
	}
}

// IsSignaturesReady reports whether both the deposit and exit signatures
// have been reconstructed and committed.
func (v *Validator) IsSignaturesReady() bool {
	return len(v.DepositSignature) > 0 && len(v.ExitSignature) > 0
}

// ShareIndexesReady returns the sorted intersection of the exit-share and
// deposit-share index sets — the set of sidecars that have submitted
// both halves of their contribution.
func (v *Validator) ShareIndexesReady() []uint64 {
	var out []uint64
	for idx := range v.ExitShares {
		if _, ok := v.DepositShares[idx]; ok {
			out = append(out, idx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
