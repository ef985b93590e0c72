package builtin

import (
	"log"

	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

// IdentifierExistsOptimizer clears identifierExists when it is false
// but a brand, gtin, or mpn is present; deleting the field defaults it
// to true in Content API.
// Reference: https://support.google.com/merchants/answer/6324478
type IdentifierExistsOptimizer struct{}

// Parameter implements optimizer.Optimizer.
func (o *IdentifierExistsOptimizer) Parameter() string {
	return "identifier-exists-optimizer"
}

// Apply implements optimizer.Optimizer.
func (o *IdentifierExistsOptimizer) Apply(batch *types.Batch, _, _, _ string) (types.Counts, error) {
	var counts types.Counts
	for _, entry := range batch.Entries {
		if optimizer.ExclusionSpecified(entry, o.Parameter()) {
			counts.Excluded++
			continue
		}
		product := entry.Product
		identifierExists, present := product["identifierExists"].(bool)
		if !present || identifierExists {
			continue
		}
		hasIdentifier := getString(product, "brand") != "" ||
			getString(product, "gtin") != "" ||
			getString(product, "mpn") != ""
		if hasIdentifier {
			log.Printf("Modified item %s: Clearing identifierExists to prevent disapproval",
				getString(product, "offerId"))
			delete(product, "identifierExists")
			counts.Optimized++
			setSanitized(product)
		}
	}
	return counts, nil
}
