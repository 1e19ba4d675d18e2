package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// CallerClient is the subset of ethclient.Client the contract wrappers
// need: eth_call and log filtering, kept as an interface so tests can
// supply a fake transport without spinning up a node.
type CallerClient interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// ValidatorsRegistry wraps the on-chain deposit-contract reads and
// DepositEvent log scanning.
type ValidatorsRegistry struct {
	client  CallerClient
	address common.Address
}

func NewValidatorsRegistry(client CallerClient, address common.Address) *ValidatorsRegistry {
	return &ValidatorsRegistry{client: client, address: address}
}

// DepositRoot reads get_deposit_root() at the latest block.
func (r *ValidatorsRegistry) DepositRoot(ctx context.Context) ([32]byte, error) {
	data, err := validatorsRegistryABI.Pack("get_deposit_root")
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "packing get_deposit_root call")
	}
	out, err := r.client.CallContract(ctx, ethereum.CallMsg{To: &r.address, Data: data}, nil)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "calling get_deposit_root")
	}
	var root [32]byte
	results, err := validatorsRegistryABI.Unpack("get_deposit_root", out)
	if err != nil || len(results) == 0 {
		return [32]byte{}, errors.Wrap(err, "unpacking get_deposit_root result")
	}
	copy(root[:], results[0].([32]byte)[:])
	return root, nil
}

// DepositEvent is a decoded DepositEvent log entry.
type DepositEvent struct {
	PublicKey             []byte
	WithdrawalCredentials []byte
	Amount                []byte
	Signature             []byte
	Index                 []byte
	BlockNumber           uint64
}

// FilterDepositEvents scans [fromBlock, toBlock] inclusive for
// DepositEvent logs emitted by this contract.
func (r *ValidatorsRegistry) FilterDepositEvents(ctx context.Context, fromBlock, toBlock uint64) ([]DepositEvent, error) {
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
		Addresses: []common.Address{r.address},
		Topics:    [][]common.Hash{{validatorsRegistryABI.Events["DepositEvent"].ID}},
	}
	logs, err := r.client.FilterLogs(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "filtering DepositEvent logs")
	}
	out := make([]DepositEvent, 0, len(logs))
	for _, l := range logs {
		var ev struct {
			Pubkey                []byte
			WithdrawalCredentials []byte
			Amount                []byte
			Signature             []byte
			Index                 []byte
		}
		if err := validatorsRegistryABI.UnpackIntoInterface(&ev, "DepositEvent", l.Data); err != nil {
			return nil, errors.Wrap(err, "unpacking DepositEvent log")
		}
		out = append(out, DepositEvent{
			PublicKey:             ev.Pubkey,
			WithdrawalCredentials: ev.WithdrawalCredentials,
			Amount:                ev.Amount,
			Signature:             ev.Signature,
			Index:                 ev.Index,
			BlockNumber:           l.BlockNumber,
		})
	}
	return out, nil
}
