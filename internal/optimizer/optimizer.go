// Package optimizer provides the execution engine for feed optimization:
// the contract every optimizer implements, the fault-isolation wrapper
// around each run, the registry that holds the available optimizers,
// and the runner that executes a scheduled pipeline against one batch.
package optimizer

import (
	"errors"
	"slices"

	"github.com/feedtools/feed-optimizer/internal/types"
)

// ErrNotImplemented indicates an optimizer was registered without a
// working Apply implementation. Unlike data errors raised while
// transforming a batch, this is a programmer error: Process propagates
// it instead of converting it into a failure result.
var ErrNotImplemented = errors.New("optimizer does not implement Apply")

// Optimizer is the contract every transformation rule satisfies.
//
// Parameter returns the stable kebab-case identifier used as the
// caller-facing selector flag, the result-map key, and the value
// matched against per-product exclusion lists. It must never change
// across releases without migration consideration.
//
// Apply receives a mutable batch and is expected to mutate products in
// place, returning how many products it modified and how many it
// skipped due to per-product exclusion. Apply is never invoked
// directly by external callers; all execution goes through Process so
// the isolation guarantees hold uniformly.
type Optimizer interface {
	Parameter() string
	Apply(batch *types.Batch, language, country, currency string) (types.Counts, error)
}

// Factory builds an optimizer instance for one pipeline run, receiving
// the batch-scoped mined attributes shared read-only across the run.
type Factory func(mined types.MinedAttributes) Optimizer

// ExclusionSpecified reports whether the entry's exclusion list names
// the given optimizer parameter. Optimizers consult this at the top of
// their Apply body before touching the product.
func ExclusionSpecified(entry *types.Entry, parameter string) bool {
	if entry == nil {
		return false
	}
	return slices.Contains(entry.ExcludeOptimizers, parameter)
}
