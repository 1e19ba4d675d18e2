// Package flags declares the urfave/cli flags backing every environment
// variable in spec.md §6, each settable via EnvVars so the whole
// configuration surface is environment-driven.
package flags

import (
	"time"

	"github.com/urfave/cli/v2"
)

var (
	Host = &cli.StringFlag{
		Name:    "host",
		EnvVars: []string{"RELAYER_HOST"},
		Value:   "127.0.0.1",
		Usage:   "HTTP bind host",
	}
	Port = &cli.IntFlag{
		Name:    "port",
		EnvVars: []string{"RELAYER_PORT"},
		Value:   8000,
		Usage:   "HTTP bind port",
	}
	Network = &cli.StringFlag{
		Name:     "network",
		EnvVars:  []string{"NETWORK"},
		Required: true,
		Usage:    "one of mainnet, gnosis, holesky, hoodi, chiado",
	}
	KeeperContractAddress = &cli.StringFlag{
		Name:     "keeper-contract-address",
		EnvVars:  []string{"KEEPER_CONTRACT_ADDRESS"},
		Required: true,
		Usage:    "0x-prefixed address of the Keeper contract for the selected network",
	}
	GenesisValidatorsRoot = &cli.StringFlag{
		Name:     "genesis-validators-root",
		EnvVars:  []string{"GENESIS_VALIDATORS_ROOT"},
		Required: true,
		Usage:    "0x-prefixed 32-byte genesis validators root for the selected network",
	}
	ExecutionEndpoint = &cli.StringFlag{
		Name:     "execution-endpoint",
		EnvVars:  []string{"EXECUTION_ENDPOINT"},
		Required: true,
	}
	ConsensusEndpoint = &cli.StringFlag{
		Name:     "consensus-endpoint",
		EnvVars:  []string{"CONSENSUS_ENDPOINT"},
		Required: true,
	}
	ExecutionTimeout = &cli.DurationFlag{
		Name:    "execution-timeout",
		EnvVars: []string{"EXECUTION_TIMEOUT"},
		Value:   10 * time.Second,
	}
	ConsensusTimeout = &cli.DurationFlag{
		Name:    "consensus-timeout",
		EnvVars: []string{"CONSENSUS_TIMEOUT"},
		Value:   10 * time.Second,
	}
	IPFSTimeout = &cli.DurationFlag{
		Name:    "ipfs-timeout",
		EnvVars: []string{"IPFS_TIMEOUT"},
		Value:   15 * time.Second,
	}
	IPFSFetchEndpoints = &cli.StringSliceFlag{
		Name:    "ipfs-fetch-endpoints",
		EnvVars: []string{"IPFS_FETCH_ENDPOINTS"},
	}
	SignatureThreshold = &cli.IntFlag{
		Name:    "signature-threshold",
		EnvVars: []string{"SIGNATURE_THRESHOLD"},
		Usage:   "overrides protocol-config threshold where applicable for sidecar shares",
	}
	Database = &cli.StringFlag{
		Name:    "database",
		EnvVars: []string{"DATABASE"},
		Value:   "relayer.db",
	}
	ValidatorLifetime = &cli.DurationFlag{
		Name:    "validator-lifetime",
		EnvVars: []string{"VALIDATOR_LIFETIME"},
		Value:   3600 * time.Second,
	}
	PublicKeysPath = &cli.StringFlag{
		Name:     "public-keys-path",
		EnvVars:  []string{"PUBLIC_KEYS_PATH"},
		Required: true,
	}
	ValidatorsManagerKey = &cli.StringFlag{
		Name:     "validators-manager-key",
		EnvVars:  []string{"VALIDATORS_MANAGER_KEY"},
		Required: true,
		Usage:    "hex-encoded secp256k1 private key authorizing manager signatures",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log-level",
		EnvVars: []string{"LOG_LEVEL"},
		Value:   "info",
	}
	LogFormat = &cli.StringFlag{
		Name:    "log-format",
		EnvVars: []string{"LOG_FORMAT"},
		Value:   "plain",
		Usage:   "plain or json",
	}
	SentryDSN = &cli.StringFlag{
		Name:    "sentry-dsn",
		EnvVars: []string{"SENTRY_DSN"},
	}
	SentryEnvironment = &cli.StringFlag{
		Name:    "sentry-environment",
		EnvVars: []string{"SENTRY_ENVIRONMENT"},
	}
)

// All is the full flag set registered on the relayer's cli.App.
var All = []cli.Flag{
	Host, Port, Network, KeeperContractAddress, GenesisValidatorsRoot,
	ExecutionEndpoint, ConsensusEndpoint,
	ExecutionTimeout, ConsensusTimeout, IPFSTimeout, IPFSFetchEndpoints,
	SignatureThreshold, Database, ValidatorLifetime, PublicKeysPath,
	ValidatorsManagerKey, LogLevel, LogFormat, SentryDSN, SentryEnvironment,
}
