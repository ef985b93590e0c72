package builtin

import (
	"log"
	"strings"

	"github.com/feedtools/feed-optimizer/internal/config"
	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

const adultConfigName = "adult_optimizer_config"

// AdultOptimizer sets the adult attribute on products whose product
// types or category-specific tokens mark them as adult-oriented.
// Reference: https://support.google.com/merchants/answer/6150138
type AdultOptimizer struct {
	cfg *config.Loader
}

// Parameter implements optimizer.Optimizer.
func (o *AdultOptimizer) Parameter() string {
	return "adult-optimizer"
}

// Apply implements optimizer.Optimizer.
func (o *AdultOptimizer) Apply(batch *types.Batch, language, _, _ string) (types.Counts, error) {
	var counts types.Counts
	cfg, err := o.cfg.ForLanguage(adultConfigName, language)
	if err != nil {
		return counts, err
	}
	adultTypes := lowerSet(config.StringList(cfg, "adult_product_types"))
	categoryTokens := config.StringMap(cfg, "adult_google_product_categories")

	for _, entry := range batch.Entries {
		if optimizer.ExclusionSpecified(entry, o.Parameter()) {
			counts.Excluded++
			continue
		}
		product := entry.Product
		if getBool(product, "adult") {
			continue
		}

		if productTypeIsAdult(getStrings(product, "productTypes"), adultTypes) {
			log.Printf("Product ID: %s With type %v was determined to be adult",
				getString(product, "offerId"), product["productTypes"])
			product["adult"] = true
			counts.Optimized++
			setSanitized(product)
			continue
		}

		tokens := tokensForCategory(categoryTokens, getString(product, "googleProductCategory"))
		if len(tokens) == 0 {
			continue
		}
		shouldBeAdult := len(tokens) == 1 && tokens[0] == "*"
		if !shouldBeAdult {
			adultTokens := lowerSet(tokens)
			shouldBeAdult = fieldContainsToken(getString(product, "title"), adultTokens) ||
				fieldContainsToken(getString(product, "description"), adultTokens)
		}
		if shouldBeAdult {
			log.Printf("Product ID: %s was determined to be adult from its category tokens",
				getString(product, "offerId"))
			product["adult"] = true
			counts.Optimized++
			setSanitized(product)
		}
	}
	return counts, nil
}

func productTypeIsAdult(productTypes []string, adultTypes map[string]bool) bool {
	for _, productType := range productTypes {
		if adultTypes[strings.ToLower(productType)] {
			return true
		}
	}
	return false
}

// tokensForCategory returns the token list configured for the deepest
// configured category matching the product's category path.
func tokensForCategory(categoryTokens map[string][]string, category string) []string {
	if category == "" {
		return nil
	}
	if tokens, ok := categoryTokens[category]; ok {
		return tokens
	}
	for configured, tokens := range categoryTokens {
		if strings.HasPrefix(category, configured) {
			return tokens
		}
	}
	return nil
}
