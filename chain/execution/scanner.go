package execution

import (
	"context"
	"encoding/binary"
	"encoding/hex"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/stakewise/dvt-relayer/chain/consensus"
	"github.com/stakewise/dvt-relayer/chain/contracts"
	"github.com/stakewise/dvt-relayer/chain/ipfs"
	"github.com/stakewise/dvt-relayer/crypto/bls/blst"
	"github.com/stakewise/dvt-relayer/crypto/signing"
	"github.com/stakewise/dvt-relayer/storage/boltdb"
)

const genesisRecordSize = 52 // 4-byte big-endian block number + 48-byte pubkey

// ErrMalformedGenesisDump is a ConfigError: the genesis validators blob
// is not a multiple of the 52-byte record size.
var ErrMalformedGenesisDump = errors.New("genesis validators dump length is not a multiple of 52")

// ParseGenesisDump is a total function over inputs whose length is a
// multiple of 52 and fails on all others, per spec's testable property.
func ParseGenesisDump(data []byte) (map[string]uint64, error) {
	if len(data)%genesisRecordSize != 0 {
		return nil, ErrMalformedGenesisDump
	}
	out := make(map[string]uint64, len(data)/genesisRecordSize)
	for off := 0; off < len(data); off += genesisRecordSize {
		blockNumber := binary.BigEndian.Uint32(data[off : off+4])
		pubKey := data[off+4 : off+genesisRecordSize]
		out["0x"+hex.EncodeToString(pubKey)] = uint64(blockNumber)
	}
	return out, nil
}

// Scanner drives the network-validators periodic scan: the in-memory
// "registered keys" set plus the durable network_validators store.
type Scanner struct {
	exec       *Service
	consensus  *consensus.Client
	ipfs       *ipfs.Client
	store      *boltdb.Store
	registered map[string]struct{}

	lastProcessedBlock uint64
	log                *logrus.Entry
}

// NewScanner constructs a Scanner; call LoadGenesis once at startup
// before the first ProcessBlock tick.
func NewScanner(exec *Service, consensusClient *consensus.Client, ipfsClient *ipfs.Client, store *boltdb.Store, log *logrus.Entry) *Scanner {
	return &Scanner{
		exec:       exec,
		consensus:  consensusClient,
		ipfs:       ipfsClient,
		store:      store,
		registered: make(map[string]struct{}),
		log:        log.WithField("component", "network_validators_scanner"),
	}
}

// LoadGenesis performs the one-time bulk load from the configured IPFS
// hash if the store is empty, per §4.6.
func (s *Scanner) LoadGenesis(ctx context.Context, genesisIPFSHash string) error {
	count, err := s.store.Count()
	if err != nil {
		return errors.Wrap(err, "counting existing network validators")
	}
	if count > 0 || genesisIPFSHash == "" {
		return s.hydrateFromStore()
	}
	raw, err := s.ipfs.FetchBytes(ctx, genesisIPFSHash)
	if err != nil {
		return errors.Wrap(err, "fetching genesis validators dump")
	}
	rows, err := ParseGenesisDump(raw)
	if err != nil {
		return errors.Wrap(err, "parsing genesis validators dump")
	}
	if err := s.store.InsertBatch(rows); err != nil {
		return errors.Wrap(err, "bulk-inserting genesis validators")
	}
	s.log.WithField("count", len(rows)).Info("loaded genesis validators dump")
	return s.hydrateFromStore()
}

func (s *Scanner) hydrateFromStore() error {
	all, err := s.store.All()
	if err != nil {
		return err
	}
	s.registered = all
	max, err := s.store.MaxBlockNumber()
	if err != nil {
		return err
	}
	s.lastProcessedBlock = max
	return nil
}

// IsRegistered reports whether pubKey is already known to the scanner.
func (s *Scanner) IsRegistered(pubKey string) bool {
	_, ok := s.registered[pubKey]
	return ok
}

// PendingDepositPublicKeys returns the set of public keys seen in
// DepositEvent logs between last_processed_block+1 and the current
// execution head, used by PublicKeysManager.Unregistered to avoid
// double-registering a validator whose deposit is in-flight but not yet
// finalized.
func (s *Scanner) PendingDepositPublicKeys(ctx context.Context) (map[string]struct{}, error) {
	head, err := s.exec.HeadBlockNumber(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetching execution head")
	}
	from := s.lastProcessedBlock + 1
	if from > head {
		return map[string]struct{}{}, nil
	}
	events, err := s.exec.ValidatorsRegistry().FilterDepositEvents(ctx, from, head)
	if err != nil {
		return nil, errors.Wrap(err, "filtering pending deposit events")
	}
	out := make(map[string]struct{}, len(events))
	for _, ev := range events {
		out["0x"+hex.EncodeToString(ev.PublicKey)] = struct{}{}
	}
	return out, nil
}

// LastProcessedBlock returns the scanner's current frontier
// (last_processed_block). It is not exported as a metric.
func (s *Scanner) LastProcessedBlock() uint64 {
	return s.lastProcessedBlock
}

// ProcessBlock runs one scan tick, per §4.6: wait for execution head to
// catch up with the consensus-finalized block, then scan new
// DepositEvent logs in sliding windows, SSZ-verifying each embedded
// deposit signature before registering the public key.
func (s *Scanner) ProcessBlock(ctx context.Context) error {
	finalizedExecutionBlock, err := s.consensus.FinalizedExecutionBlockNumber(ctx)
	if err != nil {
		return errors.Wrap(err, "fetching finalized execution block")
	}
	executionHead, err := s.exec.HeadBlockNumber(ctx)
	if err != nil {
		return errors.Wrap(err, "fetching execution head")
	}
	if executionHead < finalizedExecutionBlock {
		s.log.Debug("execution head behind consensus finalized block, waiting")
		return nil
	}

	from := s.lastProcessedBlock + 1
	to := finalizedExecutionBlock
	if from > to {
		return nil
	}

	window := s.exec.Network().EventsBlocksRangeInterval()
	for windowStart := from; windowStart <= to; windowStart += window {
		windowEnd := windowStart + window - 1
		if windowEnd > to {
			windowEnd = to
		}
		events, err := s.exec.ValidatorsRegistry().FilterDepositEvents(ctx, windowStart, windowEnd)
		if err != nil {
			return errors.Wrap(err, "filtering deposit events")
		}
		newRows := make(map[string]uint64)
		for _, ev := range events {
			pubKeyHex := "0x" + hex.EncodeToString(ev.PublicKey)
			if s.IsRegistered(pubKeyHex) {
				continue
			}
			if !s.verifyDepositSignature(ev) {
				s.log.WithField("public_key", pubKeyHex).Warn("skipping deposit event with invalid signature")
				continue
			}
			newRows[pubKeyHex] = ev.BlockNumber
		}
		if len(newRows) > 0 {
			if err := s.store.InsertBatch(newRows); err != nil {
				return errors.Wrap(err, "inserting scanned validators")
			}
			for k, v := range newRows {
				s.registered[k] = struct{}{}
				_ = v
			}
		}
	}
	s.lastProcessedBlock = to
	return nil
}

func (s *Scanner) verifyDepositSignature(ev contracts.DepositEvent) bool {
	pubKey, err := blst.PublicKeyFromBytes(ev.PublicKey)
	if err != nil {
		return false
	}
	sig, err := blst.SignatureFromBytes(ev.Signature)
	if err != nil {
		return false
	}
	if len(ev.Amount) != 8 {
		return false
	}
	amountGwei := binary.LittleEndian.Uint64(ev.Amount)
	root, err := signing.DepositSigningRoot(s.exec.Network(), ev.PublicKey, ev.WithdrawalCredentials, amountGwei)
	if err != nil {
		return false
	}
	return sig.Verify(pubKey, root[:])
}
