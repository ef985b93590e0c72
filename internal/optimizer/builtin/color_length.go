package builtin

import (
	"log"
	"strings"

	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

// Content API limits on the color attribute.
// Reference: https://support.google.com/merchants/answer/6324487
const (
	maxColorCount       = 3
	maxColorLengthEach  = 40
	maxColorLengthTotal = 100
	colorSeparator      = "/"
)

// ColorLengthOptimizer fixes color lists violating the per-color
// length, color count, or total length limits.
type ColorLengthOptimizer struct{}

// Parameter implements optimizer.Optimizer.
func (o *ColorLengthOptimizer) Parameter() string {
	return "color-length-optimizer"
}

// Apply implements optimizer.Optimizer.
func (o *ColorLengthOptimizer) Apply(batch *types.Batch, _, _, _ string) (types.Counts, error) {
	var counts types.Counts
	for _, entry := range batch.Entries {
		if optimizer.ExclusionSpecified(entry, o.Parameter()) {
			counts.Excluded++
			continue
		}
		product := entry.Product
		if _, ok := product["color"]; !ok {
			continue
		}
		original := getString(product, "color")
		colors := strings.Split(original, colorSeparator)
		colors = cutListElementsOverMaxLength(colors, maxColorLengthEach)
		colors = cutListToLimitLength(colors, maxColorCount)
		colors = cutListToLimitConcatenatedLength(colors, colorSeparator, maxColorLengthTotal)
		optimized := strings.Join(colors, colorSeparator)

		if optimized != original {
			product["color"] = optimized
			log.Printf("Modified item %s: Shortened color list: %s",
				getString(product, "offerId"), optimized)
			counts.Optimized++
			setSanitized(product)
		}
	}
	return counts, nil
}
