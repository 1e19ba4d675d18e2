package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Vault wraps the per-vault validatorsManagerNonce() read, used to sign
// fund/withdraw/consolidate manager signatures against the current
// on-chain nonce.
type Vault struct {
	client CallerClient
}

func NewVault(client CallerClient) *Vault {
	return &Vault{client: client}
}

// Nonce reads validatorsManagerNonce() on the given vault address.
func (v *Vault) Nonce(ctx context.Context, vault common.Address) (*big.Int, error) {
	data, err := vaultABI.Pack("validatorsManagerNonce")
	if err != nil {
		return nil, errors.Wrap(err, "packing validatorsManagerNonce call")
	}
	out, err := v.client.CallContract(ctx, ethereum.CallMsg{To: &vault, Data: data}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "calling validatorsManagerNonce")
	}
	results, err := vaultABI.Unpack("validatorsManagerNonce", out)
	if err != nil || len(results) == 0 {
		return nil, errors.Wrap(err, "unpacking validatorsManagerNonce result")
	}
	return results[0].(*big.Int), nil
}
