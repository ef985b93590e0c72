package builtin

import (
	"log"

	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

// maxProductTypes is the effective productTypes element limit.
// Reference: https://support.google.com/merchants/answer/6324406
const maxProductTypes = 10

// ProductTypeLengthOptimizer drops extra productTypes elements beyond
// the limit.
type ProductTypeLengthOptimizer struct{}

// Parameter implements optimizer.Optimizer.
func (o *ProductTypeLengthOptimizer) Parameter() string {
	return "product-type-length-optimizer"
}

// Apply implements optimizer.Optimizer.
func (o *ProductTypeLengthOptimizer) Apply(batch *types.Batch, _, _, _ string) (types.Counts, error) {
	var counts types.Counts
	for _, entry := range batch.Entries {
		if optimizer.ExclusionSpecified(entry, o.Parameter()) {
			counts.Excluded++
			continue
		}
		product := entry.Product
		if _, ok := product["productTypes"]; !ok {
			continue
		}
		productTypes := getStrings(product, "productTypes")
		optimized := cutListToLimitLength(productTypes, maxProductTypes)
		if len(optimized) != len(productTypes) {
			product["productTypes"] = optimized
			log.Printf("Modified item %s: Removing the last items from productTypes: %v",
				getString(product, "offerId"), productTypes)
			counts.Optimized++
			setSanitized(product)
		}
	}
	return counts, nil
}
