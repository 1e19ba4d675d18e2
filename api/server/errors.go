package apiserver

import "github.com/pkg/errors"

var (
	errEmptyAmounts    = errors.New("amounts must be non-empty")
	errMismatchedLists = errors.New("public_keys and amounts must be non-empty and the same length")
	errEmptyShares     = errors.New("shares must be non-empty")

	errMismatchedConsolidateLists = errors.New("source_public_keys and target_public_keys must be non-empty and the same length")
)
