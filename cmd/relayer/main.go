// Command relayer is the DVT relayer's single entry point: it loads
// configuration, constructs the explicit Service value (spec.md §9),
// starts the HTTP server and the three periodic tasks, and tears
// everything down cleanly on signal.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	apiserver "github.com/stakewise/dvt-relayer/api/server"
	"github.com/stakewise/dvt-relayer/api/server/httprest"
	"github.com/stakewise/dvt-relayer/chain/consensus"
	"github.com/stakewise/dvt-relayer/chain/execution"
	"github.com/stakewise/dvt-relayer/chain/ipfs"
	"github.com/stakewise/dvt-relayer/cmd/relayer/flags"
	"github.com/stakewise/dvt-relayer/config/settings"
	"github.com/stakewise/dvt-relayer/logging"
	"github.com/stakewise/dvt-relayer/service"
	"github.com/stakewise/dvt-relayer/storage/boltdb"
	"github.com/stakewise/dvt-relayer/tasks"
	"github.com/stakewise/dvt-relayer/validators"
)

func main() {
	app := cli.NewApp()
	app.Name = "relayer"
	app.Usage = "DVT relayer: validator registration, exit-signature aggregation, and oracle resharing"
	app.Flags = flags.All
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := settings.FromCLI(c)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log := logging.Configure(cfg.LogLevel, cfg.LogFormat)
	log = logging.AttachSentryHook(log, cfg.SentryDSN, cfg.SentryEnvironment)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	managerKey, err := crypto.HexToECDSA(trimHexPrefix(cfg.ValidatorsManagerKeyHex))
	if err != nil {
		return fmt.Errorf("parsing validators manager key: %w", err)
	}

	store, err := boltdb.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	execService, err := execution.New(ctx, cfg.ExecutionEndpoint, cfg.Network, log, execution.WithTimeout(cfg.ExecutionTimeout))
	if err != nil {
		return fmt.Errorf("constructing execution client: %w", err)
	}
	defer execService.Close()

	consensusClient := consensus.New(cfg.ConsensusEndpoint, cfg.ConsensusTimeout)
	ipfsClient := ipfs.New(cfg.IPFSEndpoints, cfg.IPFSTimeout)

	scanner := execution.NewScanner(execService, consensusClient, ipfsClient, store, log)
	if err := scanner.LoadGenesis(ctx, cfg.Network.GenesisValidatorsIPFSHash); err != nil {
		return fmt.Errorf("loading genesis validators: %w", err)
	}

	protoCfgCache := execution.NewProtocolConfigCache(execService, ipfsClient, cfg.Network.KeeperGenesisBlock, log)

	registry := validators.NewRegistry(log)
	aggregator := validators.NewAggregator(registry, cfg.Network, log)
	publicKeysManager, err := validators.NewPublicKeysManager(cfg.PublicKeysPath, consensusClient, scanner)
	if err != nil {
		return fmt.Errorf("loading public keys: %w", err)
	}

	svc := &service.Service{
		Network:              cfg.Network,
		Execution:            execService,
		Consensus:            consensusClient,
		IPFS:                 ipfsClient,
		Store:                store,
		Scanner:              scanner,
		ProtocolConfigCache:  protoCfgCache,
		Registry:             registry,
		Aggregator:           aggregator,
		PublicKeysManager:    publicKeysManager,
		ValidatorsManagerKey: managerKey,
		SignatureThreshold:   cfg.SignatureThreshold,
		ValidatorLifetime:    cfg.ValidatorLifetime,
		Log:                  log,
	}

	router := apiserver.NewRouter(svc)
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	server := httprest.New(addr, router, log)
	server.Start()

	tickInterval := time.Duration(cfg.Network.SecondsPerBlock) * time.Second
	scheduler := tasks.NewScheduler(log,
		tasks.Task{Name: "network_validators_scan", Interval: tickInterval, Fn: scanner.ProcessBlock},
		tasks.Task{Name: "protocol_config_cache", Interval: tickInterval, Fn: protoCfgCache.ProcessBlock},
		tasks.Task{Name: "validator_cleanup", Interval: tickInterval, Fn: tasks.CleanupValidators(registry, cfg.ValidatorLifetime)},
	)
	go scheduler.Run(ctx)

	waitForShutdown(ctx, cancel, log)
	return server.Stop(context.Background())
}

func waitForShutdown(ctx context.Context, cancel context.CancelFunc, log *logrus.Entry) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
		log.Info("shutdown signal received")
		cancel()
	case <-ctx.Done():
	}
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0:2] == "0x" {
		return s[2:]
	}
	return s
}
