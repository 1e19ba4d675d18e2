// Package service assembles every component into a single explicit
// value constructed at startup, replacing the source's process-wide
// AppState singleton (spec.md §9 design note): no hidden globals, every
// handler and task closes over this Service instead.
package service

import (
	"crypto/ecdsa"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stakewise/dvt-relayer/chain/consensus"
	"github.com/stakewise/dvt-relayer/chain/execution"
	"github.com/stakewise/dvt-relayer/chain/ipfs"
	"github.com/stakewise/dvt-relayer/config/params"
	"github.com/stakewise/dvt-relayer/storage/boltdb"
	"github.com/stakewise/dvt-relayer/validators"
)

// Service is the single value holding every stateful component the
// relayer's handlers and periodic tasks operate on.
type Service struct {
	Network params.NetworkConfig

	Execution           *execution.Service
	Consensus           *consensus.Client
	IPFS                *ipfs.Client
	Store               *boltdb.Store
	Scanner             *execution.Scanner
	ProtocolConfigCache *execution.ProtocolConfigCache

	Registry          *validators.Registry
	Aggregator        *validators.Aggregator
	PublicKeysManager *validators.PublicKeysManager

	ValidatorsManagerKey   *ecdsa.PrivateKey
	SignatureThreshold     int
	ValidatorLifetime      time.Duration

	Log *logrus.Entry
}
