package validators

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/stakewise/dvt-relayer/config/params"
	"github.com/stakewise/dvt-relayer/crypto/bls/blst"
	"github.com/stakewise/dvt-relayer/crypto/bls/common"
	"github.com/stakewise/dvt-relayer/crypto/ecies"
	"github.com/stakewise/dvt-relayer/crypto/signing"
	"github.com/stakewise/dvt-relayer/crypto/threshold"
	"github.com/stakewise/dvt-relayer/protocolconfig"
)

// ErrInvalidSignature marks a reconstructed signature that fails
// pairing verification against the validator's public key — an
// InvalidSignature error per the error-kind table: the offending
// submission is penalized, already-recorded shares are not rolled back.
var ErrInvalidSignature = errors.New("reconstructed signature failed verification")

// Aggregator ties the registry to the threshold-recovery, signing-root,
// and oracle-resharing packages: the single place both submit_exit_share
// and submit_deposit_share hand off to once a quorum of shares accrues.
type Aggregator struct {
	Registry *Registry
	Network  params.NetworkConfig
	log      *logrus.Entry
}

// NewAggregator constructs an Aggregator bound to a registry and network.
func NewAggregator(registry *Registry, network params.NetworkConfig, log *logrus.Entry) *Aggregator {
	return &Aggregator{Registry: registry, Network: network, log: log.WithField("component", "aggregator")}
}

// SubmitDepositShare is idempotent per (publicKey, shareIndex): a
// re-submission of an already-known index is a no-op. Once the share
// count reaches the network's active signature threshold it drives
// reconstruction and pairing verification against the deposit signing
// root (genesis fork version only).
func (a *Aggregator) SubmitDepositShare(publicKey string, shareIndex uint64, share []byte, threshold int) (found bool, err error) {
	return a.Registry.withLock(publicKey, func(v *Validator) error {
		if _, exists := v.DepositShares[shareIndex]; exists {
			return nil
		}
		v.DepositShares[shareIndex] = share
		if len(v.DepositShares) < threshold || len(v.DepositSignature) > 0 {
			return nil
		}
		return a.commitDeposit(v)
	})
}

// SubmitExitShare mirrors SubmitDepositShare for the exit signing root,
// and on successful commit additionally re-splits the signature for the
// oracle committee (§4.4) using protoCfg's current roster and threshold.
func (a *Aggregator) SubmitExitShare(publicKey string, shareIndex uint64, share []byte, protoCfg *protocolconfig.Config) (found bool, err error) {
	return a.Registry.withLock(publicKey, func(v *Validator) error {
		if _, exists := v.ExitShares[shareIndex]; exists {
			return nil
		}
		v.ExitShares[shareIndex] = share
		if len(v.ExitShares) < protoCfg.Threshold() || len(v.ExitSignature) > 0 {
			return nil
		}
		if err := a.commitExit(v); err != nil {
			return err
		}
		return a.reshareForOracles(v, protoCfg)
	})
}

func (a *Aggregator) commitDeposit(v *Validator) error {
	sig, err := threshold.RecoverSignature(v.DepositShares)
	if err != nil {
		return errors.Wrap(err, "recovering deposit signature")
	}
	pubKey, err := decodeBLSPublicKey(v.PublicKey)
	if err != nil {
		return err
	}
	withdrawalCredentials := WithdrawalCredentials(v.Vault, v.ValidatorType)
	root, err := signing.DepositSigningRoot(a.Network, pubKey.Marshal(), withdrawalCredentials, v.Amount)
	if err != nil {
		return errors.Wrap(err, "computing deposit signing root")
	}
	if !sig.Verify(pubKey, root[:]) {
		a.log.WithField("public_key", v.PublicKey).Warn("deposit signature failed verification")
		return ErrInvalidSignature
	}
	v.DepositSignature = sig.Marshal()
	return nil
}

func (a *Aggregator) commitExit(v *Validator) error {
	sig, err := threshold.RecoverSignature(v.ExitShares)
	if err != nil {
		return errors.Wrap(err, "recovering exit signature")
	}
	pubKey, err := decodeBLSPublicKey(v.PublicKey)
	if err != nil {
		return err
	}
	root, err := signing.ExitSigningRoot(a.Network, v.ValidatorIndex)
	if err != nil {
		return errors.Wrap(err, "computing exit signing root")
	}
	if !sig.Verify(pubKey, root[:]) {
		a.log.WithField("public_key", v.PublicKey).Warn("exit signature failed verification")
		return ErrInvalidSignature
	}
	v.ExitSignature = sig.Marshal()
	return nil
}

func (a *Aggregator) reshareForOracles(v *Validator, protoCfg *protocolconfig.Config) error {
	sig, err := blst.SignatureFromBytes(v.ExitSignature)
	if err != nil {
		return err
	}
	pubKey, err := decodeBLSPublicKey(v.PublicKey)
	if err != nil {
		return err
	}
	n := len(protoCfg.Oracles)
	shares, err := threshold.Reshare(sig, pubKey, n, protoCfg.Threshold())
	if err != nil {
		return errors.Wrap(err, "resharing exit signature for oracles")
	}
	payload := &OraclesExitSignatureShares{
		PublicKeys:              make([]string, n),
		EncryptedExitSignatures: make([]string, n),
	}
	for i, oracle := range protoCfg.Oracles {
		share := shares[i]
		payload.PublicKeys[i] = hexEncode(share.PublicKey.Marshal())
		ciphertext, err := ecies.EncryptForOracle(oracle.PublicKey, share.Signature.Marshal())
		if err != nil {
			return errors.Wrapf(err, "encrypting share for oracle %s", oracle.Address.Hex())
		}
		payload.EncryptedExitSignatures[i] = hexEncode(ciphertext)
	}
	v.OraclesShares = payload
	return nil
}

func decodeBLSPublicKey(hexStr string) (common.PublicKey, error) {
	b, err := hexDecode(hexStr)
	if err != nil {
		return nil, errors.Wrap(err, "decoding public key hex")
	}
	pk, err := blst.PublicKeyFromBytes(b)
	if err != nil {
		return nil, errors.Wrap(err, "parsing public key")
	}
	return pk, nil
}

func hexEncode(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

func hexDecode(s string) ([]byte, error) {
	if len(s) >= 2 && s[0:2] == "0x" {
		s = s[2:]
	}
	return hex.DecodeString(s)
}
