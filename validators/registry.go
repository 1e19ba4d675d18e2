package validators

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
)

// entry pairs a Validator with the mutex that serializes mutations
// against it, so two concurrent /exit-signature calls for the same key
// cannot race on reaching the aggregation threshold.
type entry struct {
	mu sync.Mutex
	v  *Validator
}

// Registry is the in-memory, process-wide mapping from validator public
// key to its accumulating record. A registry-level RWMutex protects the
// map structure itself; an entry-level mutex serializes mutations within
// a single validator's record. The registry does not survive a process
// restart.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	log     *logrus.Entry
}

// NewRegistry constructs an empty registry.
func NewRegistry(log *logrus.Entry) *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		log:     log.WithField("component", "validator_registry"),
	}
}

// GetOrCreate returns the existing entry for publicKey if its
// validator_index matches; otherwise it creates a fresh record (dropping
// any shares the previous record held), per spec's index-mismatch
// replace rule.
func (r *Registry) GetOrCreate(publicKey string, index uint64, vault common.Address, amount uint64, vt ValidatorType, now int64) *Validator {
	r.mu.Lock()
	e, ok := r.entries[publicKey]
	if !ok {
		e = &entry{}
		r.entries[publicKey] = e
	}
	r.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.v != nil && e.v.ValidatorIndex == index {
		return e.v
	}
	e.v = newValidator(publicKey, index, vault, amount, vt, now)
	return e.v
}

// Get returns the validator for publicKey, if present.
func (r *Registry) Get(publicKey string) (*Validator, bool) {
	r.mu.RLock()
	e, ok := r.entries[publicKey]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.v, e.v != nil
}

// withLock runs fn while holding the per-validator lock for publicKey,
// returning (false, nil) if the key is unknown (NotFoundError per §7,
// silently dropped by callers).
func (r *Registry) withLock(publicKey string, fn func(v *Validator) error) (bool, error) {
	r.mu.RLock()
	e, ok := r.entries[publicKey]
	r.mu.RUnlock()
	if !ok {
		return false, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.v == nil {
		return false, nil
	}
	return true, fn(e.v)
}

// All returns a snapshot slice of every registered validator, for GET
// /exits. Reads may observe partially-updated state, as permitted by the
// concurrency model.
func (r *Registry) All() []*Validator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Validator, 0, len(r.entries))
	for _, e := range r.entries {
		e.mu.Lock()
		if e.v != nil {
			out = append(out, e.v)
		}
		e.mu.Unlock()
	}
	return out
}

// EvictExpired deletes every record whose CreatedAt is older than ttl,
// run once per cleanup-task tick.
func (r *Registry) EvictExpired(now time.Time, ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	cutoff := now.Add(-ttl).Unix()
	for key, e := range r.entries {
		e.mu.Lock()
		expired := e.v != nil && e.v.CreatedAt < cutoff
		e.mu.Unlock()
		if expired {
			delete(r.entries, key)
			evicted++
		}
	}
	if evicted > 0 {
		r.log.WithField("count", evicted).Info("evicted expired validators")
	}
	return evicted
}
