package builtin

import (
	"log"

	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

// maxSizeLength is the size attribute character limit.
// Reference: https://support.google.com/merchants/answer/6324492
const maxSizeLength = 100

// SizeLengthOptimizer trims the sizes attribute to one value of at
// most the character limit.
type SizeLengthOptimizer struct{}

// Parameter implements optimizer.Optimizer.
func (o *SizeLengthOptimizer) Parameter() string {
	return "size-length-optimizer"
}

// Apply implements optimizer.Optimizer.
func (o *SizeLengthOptimizer) Apply(batch *types.Batch, _, _, _ string) (types.Counts, error) {
	var counts types.Counts
	for _, entry := range batch.Entries {
		if optimizer.ExclusionSpecified(entry, o.Parameter()) {
			counts.Excluded++
			continue
		}
		product := entry.Product
		if _, ok := product["sizes"]; !ok {
			continue
		}
		sizes := getStrings(product, "sizes")
		if len(sizes) == 0 {
			continue
		}
		optimized := []string{truncate(sizes[0], maxSizeLength)}
		if len(sizes) != 1 || optimized[0] != sizes[0] {
			product["sizes"] = optimized
			log.Printf("Modified item %s: Trimmed sizes attribute: %v",
				getString(product, "offerId"), optimized)
			counts.Optimized++
			setSanitized(product)
		}
	}
	return counts, nil
}
