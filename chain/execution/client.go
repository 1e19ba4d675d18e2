// Package execution wires the execution-layer JSON-RPC client to the two
// scanner loops that drive this relayer's durable state: the
// network-validators scanner (§4.6) and the protocol-config cache
// (§4.7). Shaped after Prysm's beacon-chain/execution Service:
// functional-options constructor and an explicit Close.
package execution

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/stakewise/dvt-relayer/chain/contracts"
	"github.com/stakewise/dvt-relayer/config/params"
)

// Service owns the execution-layer client and the two contract wrappers
// the scanners read from.
type Service struct {
	client             *ethclient.Client
	network            params.NetworkConfig
	validatorsRegistry *contracts.ValidatorsRegistry
	keeper             *contracts.Keeper
	vault              *contracts.Vault
	log                *logrus.Entry

	timeout time.Duration
}

// Option configures a Service at construction time.
type Option func(*Service)

// WithTimeout bounds HeadBlockNumber calls. Calls made through the
// ValidatorsRegistry, Keeper and Vault wrappers are not bounded by it;
// they run under the caller's context only.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// New dials endpoint and constructs the contract wrappers for the given
// network. Fails fast (ConfigError) on a malformed RPC URL. For an HTTP
// endpoint no connection is made here, so an unreachable node is only
// noticed on the first call.
func New(ctx context.Context, endpoint string, network params.NetworkConfig, log *logrus.Entry, opts ...Option) (*Service, error) {
	client, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "dialing execution endpoint")
	}
	s := &Service{
		client:  client,
		network: network,
		log:     log.WithField("component", "execution"),
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.validatorsRegistry = contracts.NewValidatorsRegistry(s.client, network.ValidatorsRegistryAddress)
	s.keeper = contracts.NewKeeper(s.client, network.KeeperAddress)
	s.vault = contracts.NewVault(s.client)
	return s, nil
}

// HeadBlockNumber returns the latest execution block number known to
// the node.
func (s *Service) HeadBlockNumber(ctx context.Context) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.BlockNumber(ctx)
}

func (s *Service) ValidatorsRegistry() *contracts.ValidatorsRegistry { return s.validatorsRegistry }
func (s *Service) Keeper() *contracts.Keeper                        { return s.keeper }
func (s *Service) Vault() *contracts.Vault                          { return s.vault }
func (s *Service) Network() params.NetworkConfig                    { return s.network }

// Close releases the underlying RPC connection.
func (s *Service) Close() {
	s.client.Close()
}
