package optimizer

import (
	"log"

	"github.com/feedtools/feed-optimizer/internal/types"
)

// minedAttributeUsers names the optimizers that consume batch-scoped
// mined attributes. Mining is skipped entirely when none of them is
// scheduled, so batches that never touch titles or descriptions do not
// pay the mining cost.
var minedAttributeUsers = map[string]bool{
	"title-optimizer":       true,
	"description-optimizer": true,
}

// AttributeMiner produces per-product mined attributes for a batch. It
// is invoked at most once per pipeline run.
type AttributeMiner interface {
	MineAndInsertAttributesForBatch(batch *types.Batch) types.MinedAttributes
}

// Runner executes one full pipeline over one registry's optimizers.
// Optimizers run strictly sequentially: later optimizers may depend on
// earlier optimizers' mutations. A Runner holds no per-request state
// and is safe for concurrent use.
type Runner struct {
	registry *Registry
	miner    AttributeMiner
	runLast  []string
}

// NewRunner creates a runner over a registry. The miner may be nil
// when attribute mining is unavailable; mined-attribute consumers then
// receive an empty mapping.
func NewRunner(registry *Registry, miner AttributeMiner) *Runner {
	return &Runner{
		registry: registry,
		miner:    miner,
		runLast:  RunLastOptimizers,
	}
}

// Run executes every selected optimizer found in the registry, in
// deterministic order, against the batch. The input batch is never
// mutated; the returned batch is the accumulated output of all
// successful optimizers. A single optimizer failure degrades to a
// no-op for that optimizer and the run always continues through the
// full schedule. The returned error is non-nil only for structurally
// broken optimizers (ErrNotImplemented), which must surface loudly.
func (r *Runner) Run(batch *types.Batch, params *types.OptimizeParams) (*types.Batch, *Results, error) {
	registrations, err := r.registry.Optimizers()
	if err != nil {
		return nil, nil, err
	}
	factories := factoryIndex(registrations)

	order := ComputeOrder(params.SelectedOptimizers, r.runLast)
	working := batch.Clone()
	results := NewResults()

	mined := types.MinedAttributes{}
	if r.miner != nil && r.minedAttributesRequired(order, factories) {
		mined = r.miner.MineAndInsertAttributesForBatch(working)
	}

	for _, parameter := range order {
		factory, ok := factories[parameter]
		if !ok {
			continue
		}
		log.Printf("Running optimization %s with language %s", parameter, params.Language)
		optimized, result, err := Process(factory(mined), working, params.Language, params.Country, params.Currency)
		if err != nil {
			return nil, nil, err
		}
		working = optimized
		results.Set(parameter, result)
	}

	return working, results, nil
}

// minedAttributesRequired reports whether any scheduled optimizer that
// actually exists in the registry consumes mined attributes.
func (r *Runner) minedAttributesRequired(order []string, factories map[string]Factory) bool {
	for _, parameter := range order {
		if !minedAttributeUsers[parameter] {
			continue
		}
		if _, ok := factories[parameter]; ok {
			return true
		}
	}
	return false
}
