package plugins

import (
	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

// MyPlugin demonstrates the structure of a user-built optimizer. It
// returns the product data without modifying it.
type MyPlugin struct{}

// Parameter implements optimizer.Optimizer.
func (p *MyPlugin) Parameter() string {
	return "my-plugin"
}

// Apply implements optimizer.Optimizer.
func (p *MyPlugin) Apply(batch *types.Batch, _, _, _ string) (types.Counts, error) {
	var counts types.Counts

	// Logic can be added like this --
	// for _, entry := range batch.Entries {
	// 	entry.Product["custom-field"] = "custom-value"
	// 	counts.Optimized++
	// 	optimizer.SetOptimizationTracking(entry.Product, optimizer.TagSanitized)
	// }
	_ = batch

	return counts, nil
}

var _ optimizer.Optimizer = (*MyPlugin)(nil)
