package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Keeper wraps ConfigUpdated log scanning on the keeper contract.
type Keeper struct {
	client  CallerClient
	address common.Address
}

func NewKeeper(client CallerClient, address common.Address) *Keeper {
	return &Keeper{client: client, address: address}
}

// ConfigUpdatedEvent is a decoded ConfigUpdated log entry.
type ConfigUpdatedEvent struct {
	ConfigIPFSHash string
	BlockNumber    uint64
}

// FilterConfigUpdated scans [fromBlock, toBlock] inclusive for
// ConfigUpdated logs.
func (k *Keeper) FilterConfigUpdated(ctx context.Context, fromBlock, toBlock uint64) ([]ConfigUpdatedEvent, error) {
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
		Addresses: []common.Address{k.address},
		Topics:    [][]common.Hash{{keeperABI.Events["ConfigUpdated"].ID}},
	}
	logs, err := k.client.FilterLogs(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "filtering ConfigUpdated logs")
	}
	out := make([]ConfigUpdatedEvent, 0, len(logs))
	for _, l := range logs {
		var ev struct{ ConfigIpfsHash string }
		if err := keeperABI.UnpackIntoInterface(&ev, "ConfigUpdated", l.Data); err != nil {
			return nil, errors.Wrap(err, "unpacking ConfigUpdated log")
		}
		out = append(out, ConfigUpdatedEvent{ConfigIPFSHash: ev.ConfigIpfsHash, BlockNumber: l.BlockNumber})
	}
	return out, nil
}
