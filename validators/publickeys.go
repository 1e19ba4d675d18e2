package validators

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// ErrEmptyPublicKeysFile is a ConfigError: the CSV loader requires at
// least one row.
var ErrEmptyPublicKeysFile = errors.New("public keys file contains no rows")

// ConsensusClient is the minimal surface PublicKeysManager needs from
// the consensus-layer REST client to refresh the registered set.
type ConsensusClient interface {
	RegisteredPublicKeys(ctx context.Context) (map[string]struct{}, error)
}

// PendingDepositSource supplies the set of public keys seen in
// DepositEvent logs between the scanner's frontier and chain head, so a
// deposit that is in-flight but not yet finalized isn't re-registered.
type PendingDepositSource interface {
	PendingDepositPublicKeys(ctx context.Context) (map[string]struct{}, error)
}

// PublicKeysManager loads the operator's configured public keys from a
// CSV file at startup and computes, on demand, the subset not yet
// registered on-chain and without an in-flight deposit. Grounded on the
// original's PublicKeysManager (load_from_file / fetch_registered /
// get_unregistered).
type PublicKeysManager struct {
	mu       sync.RWMutex
	ordered  []string // CSV order, preserved
	consensus ConsensusClient
	pending  PendingDepositSource
}

// NewPublicKeysManager loads publicKeys from path: one 0x-prefixed
// 48-byte hex BLS key per line, whitespace stripped, blank lines
// skipped. Fails fast (ConfigError) if the file is missing, malformed,
// or empty.
func NewPublicKeysManager(path string, consensus ConsensusClient, pending PendingDepositSource) (*PublicKeysManager, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening public keys file")
	}
	defer f.Close()

	var keys []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := validatePublicKeyHex(line); err != nil {
			return nil, errors.Wrapf(err, "invalid public key %q", line)
		}
		keys = append(keys, strings.ToLower(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading public keys file")
	}
	if len(keys) == 0 {
		return nil, ErrEmptyPublicKeysFile
	}
	return &PublicKeysManager{ordered: keys, consensus: consensus, pending: pending}, nil
}

func validatePublicKeyHex(s string) error {
	b, err := hexDecode(s)
	if err != nil {
		return err
	}
	if len(b) != 48 {
		return errors.Errorf("expected 48 bytes, got %d", len(b))
	}
	return nil
}

// Configured returns the full CSV-ordered list, unfiltered.
func (m *PublicKeysManager) Configured() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.ordered))
	copy(out, m.ordered)
	return out
}

// Unregistered computes configured − registered − pending, preserving
// CSV order, per §4.10.
func (m *PublicKeysManager) Unregistered(ctx context.Context) ([]string, error) {
	registered, err := m.consensus.RegisteredPublicKeys(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetching registered public keys")
	}
	pending, err := m.pending.PendingDepositPublicKeys(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetching pending deposit public keys")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for _, k := range m.ordered {
		if _, ok := registered[k]; ok {
			continue
		}
		if _, ok := pending[k]; ok {
			continue
		}
		out = append(out, k)
	}
	return out, nil
}
