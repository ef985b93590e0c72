package builtin

import (
	"log"
	"regexp"

	"github.com/feedtools/feed-optimizer/internal/config"
	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

const freeShippingConfigName = "free_shipping_optimizer_config"

// FreeShippingOptimizer sets a zero-price shipping attribute when the
// title matches a configured free-shipping pattern and no exclusion
// pattern (e.g. a region carve-out) is present. It must run before the
// title optimizers, which may strip the patterns it detects.
// Reference: https://support.google.com/merchants/answer/6324484
type FreeShippingOptimizer struct {
	cfg *config.Loader
}

// Parameter implements optimizer.Optimizer.
func (o *FreeShippingOptimizer) Parameter() string {
	return "free-shipping-optimizer"
}

// Apply implements optimizer.Optimizer.
func (o *FreeShippingOptimizer) Apply(batch *types.Batch, language, country, currency string) (types.Counts, error) {
	var counts types.Counts
	cfg, err := o.cfg.ForLanguage(freeShippingConfigName, language)
	if err != nil {
		return counts, err
	}
	freeShipping, err := compilePatterns(config.StringList(cfg, "free_shipping_patterns"))
	if err != nil {
		return counts, err
	}
	exclusions, err := compilePatterns(config.StringList(cfg, "shipping_exclusion_patterns"))
	if err != nil {
		return counts, err
	}

	for _, entry := range batch.Entries {
		if optimizer.ExclusionSpecified(entry, o.Parameter()) {
			counts.Excluded++
			continue
		}
		product := entry.Product
		title := getString(product, "title")
		if !anyPatternMatches(freeShipping, title) || anyPatternMatches(exclusions, title) {
			continue
		}
		if hasZeroShipping(product, country, currency) {
			continue
		}
		product["shipping"] = []any{map[string]any{
			"country": country,
			"price": map[string]any{
				"value":    "0",
				"currency": currency,
			},
		}}
		log.Printf("Modified item %s: Set free shipping from title pattern",
			getString(product, "offerId"))
		counts.Optimized++
		setOptimized(product)
	}
	return counts, nil
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

func anyPatternMatches(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// hasZeroShipping reports whether the product already carries a
// zero-price shipping attribute for the country and currency.
func hasZeroShipping(product map[string]any, country, currency string) bool {
	shipping, ok := product["shipping"].([]any)
	if !ok {
		return false
	}
	for _, item := range shipping {
		entry, ok := item.(map[string]any)
		if !ok || entry["country"] != country {
			continue
		}
		price, ok := entry["price"].(map[string]any)
		if ok && price["value"] == "0" && price["currency"] == currency {
			return true
		}
	}
	return false
}
