package signing

import "github.com/stakewise/dvt-relayer/config/params"

// VoluntaryExit mirrors the consensus-layer container signed by a
// validator to authorize its own exit.
type VoluntaryExit struct {
	Epoch          uint64
	ValidatorIndex uint64
}

// ExitSigningRoot derives the root the relayer verifies reconstructed
// exit signatures against: compute_signing_root(VoluntaryExit{...},
// domain=DOMAIN_VOLUNTARY_EXIT, fork=SHAPELLA_FORK).
func ExitSigningRoot(cfg params.NetworkConfig, validatorIndex uint64) ([32]byte, error) {
	domain, err := ComputeDomain(params.DomainVoluntaryExit, cfg.ShapellaForkVersion, cfg.GenesisValidatorsRoot)
	if err != nil {
		return [32]byte{}, err
	}
	exit := VoluntaryExit{Epoch: cfg.ShapellaEpoch, ValidatorIndex: validatorIndex}
	objRoot, err := sszHasher.HashTreeRoot(&exit)
	if err != nil {
		return [32]byte{}, err
	}
	var root [32]byte
	copy(root[:], objRoot)
	return ComputeSigningRoot(root, domain)
}

// DepositMessage mirrors the consensus-layer container signed by a
// validator to authorize its own deposit. Deposits always sign against
// the genesis fork version, regardless of the network's current fork.
type DepositMessage struct {
	PublicKey             []byte `ssz-size:"48"`
	WithdrawalCredentials []byte `ssz-size:"32"`
	Amount                uint64
}

// DepositSigningRoot derives the root the relayer verifies reconstructed
// deposit signatures against.
func DepositSigningRoot(cfg params.NetworkConfig, pubKey, withdrawalCredentials []byte, amountGwei uint64) ([32]byte, error) {
	domain, err := ComputeDomain(params.DomainDeposit, cfg.GenesisForkVersion, cfg.GenesisValidatorsRoot)
	if err != nil {
		return [32]byte{}, err
	}
	msg := DepositMessage{PublicKey: pubKey, WithdrawalCredentials: withdrawalCredentials, Amount: amountGwei}
	objRoot, err := sszHasher.HashTreeRoot(&msg)
	if err != nil {
		return [32]byte{}, err
	}
	var root [32]byte
	copy(root[:], objRoot)
	return ComputeSigningRoot(root, domain)
}

// DepositData mirrors the consensus-layer container hashed to produce a
// deposit's deposit_data_root, included in the on-chain deposit call.
type DepositData struct {
	PublicKey             []byte `ssz-size:"48"`
	WithdrawalCredentials []byte `ssz-size:"32"`
	Amount                uint64
	Signature             []byte `ssz-size:"96"`
}

// DepositDataRoot computes hash_tree_root(DepositData{...}).
func DepositDataRoot(pubKey, withdrawalCredentials, signature []byte, amountGwei uint64) ([32]byte, error) {
	dd := DepositData{
		PublicKey:             pubKey,
		WithdrawalCredentials: withdrawalCredentials,
		Amount:                amountGwei,
		Signature:             signature,
	}
	root, err := sszHasher.HashTreeRoot(&dd)
	if err != nil {
		return [32]byte{}, err
	}
	var out [32]byte
	copy(out[:], root)
	return out, nil
}
