// Package settings translates CLI flags / environment variables into a
// validated Settings value, matching Prysm's per-service flags+config
// convention and the original's fully-environment-driven configuration.
package settings

import (
	"encoding/hex"
	"time"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/stakewise/dvt-relayer/config/params"
)

// Settings is the fully-resolved, validated startup configuration.
type Settings struct {
	Host string
	Port int

	Network params.NetworkConfig

	ExecutionEndpoint string
	ConsensusEndpoint string
	ExecutionTimeout  time.Duration
	ConsensusTimeout  time.Duration
	IPFSTimeout       time.Duration
	IPFSEndpoints     []string

	SignatureThreshold int
	DatabasePath       string
	ValidatorLifetime  time.Duration
	PublicKeysPath     string

	ValidatorsManagerKeyHex string

	LogLevel  string
	LogFormat string

	SentryDSN         string
	SentryEnvironment string
}

// FromCLI builds and validates a Settings from a urfave/cli Context,
// failing fast (ConfigError) on any missing required value.
func FromCLI(c *cli.Context) (*Settings, error) {
	network, err := params.ByName(c.String("network"))
	if err != nil {
		return nil, err
	}
	network.KeeperAddress = gethcommon.HexToAddress(c.String("keeper-contract-address"))
	root, err := decodeGenesisValidatorsRoot(c.String("genesis-validators-root"))
	if err != nil {
		return nil, err
	}
	network.GenesisValidatorsRoot = root
	if err := network.Validate(); err != nil {
		return nil, err
	}

	execEndpoint := c.String("execution-endpoint")
	if execEndpoint == "" {
		return nil, errors.New("execution-endpoint is required")
	}
	consensusEndpoint := c.String("consensus-endpoint")
	if consensusEndpoint == "" {
		return nil, errors.New("consensus-endpoint is required")
	}
	publicKeysPath := c.String("public-keys-path")
	if publicKeysPath == "" {
		return nil, errors.New("public-keys-path is required")
	}
	managerKey := c.String("validators-manager-key")
	if managerKey == "" {
		return nil, errors.New("validators-manager-key is required")
	}

	return &Settings{
		Host:                    c.String("host"),
		Port:                    c.Int("port"),
		Network:                 network,
		ExecutionEndpoint:       execEndpoint,
		ConsensusEndpoint:       consensusEndpoint,
		ExecutionTimeout:        c.Duration("execution-timeout"),
		ConsensusTimeout:        c.Duration("consensus-timeout"),
		IPFSTimeout:             c.Duration("ipfs-timeout"),
		IPFSEndpoints:           c.StringSlice("ipfs-fetch-endpoints"),
		SignatureThreshold:      c.Int("signature-threshold"),
		DatabasePath:            c.String("database"),
		ValidatorLifetime:       c.Duration("validator-lifetime"),
		PublicKeysPath:          publicKeysPath,
		ValidatorsManagerKeyHex: managerKey,
		LogLevel:                c.String("log-level"),
		LogFormat:               c.String("log-format"),
		SentryDSN:               c.String("sentry-dsn"),
		SentryEnvironment:       c.String("sentry-environment"),
	}, nil
}

// decodeGenesisValidatorsRoot parses a 0x-prefixed 32-byte hex root,
// failing fast (ConfigError) on a malformed or wrong-length value.
func decodeGenesisValidatorsRoot(s string) ([32]byte, error) {
	var root [32]byte
	if len(s) >= 2 && s[0:2] == "0x" {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return root, errors.Wrap(err, "parsing genesis validators root")
	}
	if len(b) != 32 {
		return root, errors.Errorf("genesis validators root must be 32 bytes, got %d", len(b))
	}
	copy(root[:], b)
	return root, nil
}
