package execution

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/stakewise/dvt-relayer/chain/ipfs"
	"github.com/stakewise/dvt-relayer/protocolconfig"
)

// protocolConfigJSON mirrors the oracle-config JSON document fetched
// from IPFS.
type protocolConfigJSON struct {
	Oracles []struct {
		Address   string `json:"address"`
		PublicKey string `json:"public_key"`
	} `json:"oracles"`
	ExitSignatureRecoverThreshold int `json:"exit_signature_recover_threshold"`
}

// ProtocolConfigCache is the periodic task that keeps protocolconfig.Config
// fresh by scanning ConfigUpdated events backwards, per §4.7.
type ProtocolConfigCache struct {
	exec   *Service
	ipfs   *ipfs.Client
	cached *protocolconfig.Config
	genesisBlock uint64
	log    *logrus.Entry
}

func NewProtocolConfigCache(exec *Service, ipfsClient *ipfs.Client, genesisBlock uint64, log *logrus.Entry) *ProtocolConfigCache {
	return &ProtocolConfigCache{
		exec:         exec,
		ipfs:         ipfsClient,
		genesisBlock: genesisBlock,
		cached:       &protocolconfig.Config{},
		log:          log.WithField("component", "protocol_config_cache"),
	}
}

// Current returns the currently cached config. Safe to call
// concurrently with ProcessBlock only because the cache's single writer
// (this task) replaces the pointer atomically via assignment; callers
// should treat the returned value as immutable.
func (c *ProtocolConfigCache) Current() *protocolconfig.Config {
	return c.cached
}

// ProcessBlock scans backwards in 12-hour windows from
// max(checkpoint_block+1, KEEPER_GENESIS_BLOCK) to the current execution
// head for the latest ConfigUpdated event. If found, refetches and
// rebuilds the config from IPFS; otherwise the cached config is reused.
// checkpoint_block always advances to the scanned head.
func (c *ProtocolConfigCache) ProcessBlock(ctx context.Context) error {
	head, err := c.exec.HeadBlockNumber(ctx)
	if err != nil {
		return errors.Wrap(err, "fetching execution head")
	}
	from := c.cached.CheckpointBlock + 1
	if from < c.genesisBlock {
		from = c.genesisBlock
	}
	if from > head {
		return nil
	}

	window := c.exec.Network().EventsBlocksRangeInterval()
	var latest *string
	for windowEnd := head; windowEnd >= from; {
		windowStart := windowEnd - window + 1
		if windowStart < from {
			windowStart = from
		}
		events, err := c.exec.Keeper().FilterConfigUpdated(ctx, windowStart, windowEnd)
		if err != nil {
			return errors.Wrap(err, "filtering ConfigUpdated events")
		}
		if len(events) > 0 {
			hash := events[len(events)-1].ConfigIPFSHash
			latest = &hash
			break
		}
		if windowStart == from {
			break
		}
		windowEnd = windowStart - 1
	}

	if latest != nil {
		cfg, err := c.fetchConfig(ctx, *latest)
		if err != nil {
			return errors.Wrap(err, "fetching protocol config from IPFS")
		}
		cfg.CheckpointBlock = head
		c.cached = cfg
		c.log.WithField("ipfs_hash", *latest).Info("refreshed protocol config")
	} else {
		next := *c.cached
		next.CheckpointBlock = head
		c.cached = &next
	}
	return nil
}

func (c *ProtocolConfigCache) fetchConfig(ctx context.Context, ipfsHash string) (*protocolconfig.Config, error) {
	raw, err := c.ipfs.FetchBytes(ctx, ipfsHash)
	if err != nil {
		return nil, err
	}
	var doc protocolConfigJSON
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing protocol config JSON")
	}
	oracles := make([]protocolconfig.Oracle, 0, len(doc.Oracles))
	for _, o := range doc.Oracles {
		pk, err := decodeHex(o.PublicKey)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding oracle public key %q", o.PublicKey)
		}
		oracles = append(oracles, protocolconfig.Oracle{
			Address:   common.HexToAddress(o.Address),
			PublicKey: pk,
		})
	}
	return &protocolconfig.Config{
		Oracles:                       oracles,
		ExitSignatureRecoverThreshold: doc.ExitSignatureRecoverThreshold,
	}, nil
}

func decodeHex(s string) ([]byte, error) {
	return common.FromHex(s), nil
}
