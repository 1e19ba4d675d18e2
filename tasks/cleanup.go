package tasks

import (
	"context"
	"time"

	"github.com/stakewise/dvt-relayer/validators"
)

// CleanupValidators wraps validators.Registry.EvictExpired as a Task
// function, per §4.8: every tick, delete records older than ttl.
func CleanupValidators(registry *validators.Registry, ttl time.Duration) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		registry.EvictExpired(time.Now(), ttl)
		return nil
	}
}
