package builtin

import (
	"log"
	"slices"
	"strings"

	"github.com/feedtools/feed-optimizer/internal/config"
	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

const (
	shoppingExclusionConfigName = "shopping_exclusion_optimizer_config"
	excludedDestinationsKey     = "excludedDestinations"
	includedDestinationsKey     = "includedDestinations"
	shoppingAdsDestination      = "Shopping_ads"
	freeListingsDestination     = "Free_listings"
)

// ShoppingExclusionOptimizer excludes products detected as not meant
// for Shopping from the Shopping_ads and Free_listings destinations
// instead of letting them be disapproved.
type ShoppingExclusionOptimizer struct {
	cfg *config.Loader
}

// Parameter implements optimizer.Optimizer.
func (o *ShoppingExclusionOptimizer) Parameter() string {
	return "shopping-exclusion-optimizer"
}

// Apply implements optimizer.Optimizer.
func (o *ShoppingExclusionOptimizer) Apply(batch *types.Batch, language, _, _ string) (types.Counts, error) {
	var counts types.Counts
	cfg, err := o.cfg.ForLanguage(shoppingExclusionConfigName, language)
	if err != nil {
		return counts, err
	}
	exactMatches := make(map[string]bool)
	for _, pattern := range config.StringList(cfg, "shopping_exclusion_patterns_exact_match") {
		exactMatches[strings.ToLower(pattern)] = true
	}

	for _, entry := range batch.Entries {
		if optimizer.ExclusionSpecified(entry, o.Parameter()) {
			counts.Excluded++
			continue
		}
		product := entry.Product
		if !exactMatches[strings.ToLower(getString(product, "title"))] {
			continue
		}
		excludeFromShopping(product)
		log.Printf("Modified item %s: Excluded non-Shopping product from Shopping destinations",
			getString(product, "offerId"))
		counts.Optimized++
		setSanitized(product)
	}
	return counts, nil
}

// excludeFromShopping appends the Shopping destinations to the
// product's excluded list and removes them from its included list.
func excludeFromShopping(product map[string]any) {
	excluded := getStrings(product, excludedDestinationsKey)
	for _, destination := range []string{shoppingAdsDestination, freeListingsDestination} {
		if !slices.Contains(excluded, destination) {
			excluded = append(excluded, destination)
		}
	}
	product[excludedDestinationsKey] = excluded

	if _, ok := product[includedDestinationsKey]; ok {
		included := getStrings(product, includedDestinationsKey)
		included = slices.DeleteFunc(included, func(destination string) bool {
			return destination == shoppingAdsDestination || destination == freeListingsDestination
		})
		product[includedDestinationsKey] = included
	}
}
