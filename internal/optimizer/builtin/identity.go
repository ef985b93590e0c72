package builtin

import (
	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

// IdentityOptimizer returns the product data without modifying it. It
// only demonstrates the logical structure of an optimizer.
type IdentityOptimizer struct{}

// Parameter implements optimizer.Optimizer.
func (o *IdentityOptimizer) Parameter() string {
	return "identity-optimizer"
}

// Apply implements optimizer.Optimizer.
func (o *IdentityOptimizer) Apply(_ *types.Batch, _, _, _ string) (types.Counts, error) {
	return types.Counts{}, nil
}

var _ optimizer.Optimizer = (*IdentityOptimizer)(nil)
