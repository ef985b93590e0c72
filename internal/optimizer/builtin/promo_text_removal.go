package builtin

import (
	"log"
	"strings"

	"github.com/feedtools/feed-optimizer/internal/config"
	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

const promoTextConfigName = "promo_text_removal_optimizer_config"

// PromoTextRemovalOptimizer strips promotional text (configured
// per-language regex patterns and exact phrases) from titles.
// Promotional text in titles causes disapproval.
type PromoTextRemovalOptimizer struct {
	cfg *config.Loader
}

// Parameter implements optimizer.Optimizer.
func (o *PromoTextRemovalOptimizer) Parameter() string {
	return "promo-text-removal-optimizer"
}

// Apply implements optimizer.Optimizer.
func (o *PromoTextRemovalOptimizer) Apply(batch *types.Batch, language, _, _ string) (types.Counts, error) {
	var counts types.Counts
	cfg, err := o.cfg.ForLanguage(promoTextConfigName, language)
	if err != nil {
		return counts, err
	}
	patterns, err := compilePatterns(config.StringList(cfg, "promo_text_patterns"))
	if err != nil {
		return counts, err
	}
	phrases := config.StringList(cfg, "promo_text_phrases")

	for _, entry := range batch.Entries {
		if optimizer.ExclusionSpecified(entry, o.Parameter()) {
			counts.Excluded++
			continue
		}
		product := entry.Product
		original := getString(product, "title")
		if original == "" {
			continue
		}
		cleaned := original
		for _, re := range patterns {
			cleaned = re.ReplaceAllString(cleaned, "")
		}
		for _, phrase := range phrases {
			cleaned = strings.ReplaceAll(cleaned, phrase, "")
		}
		cleaned = strings.Join(strings.Fields(cleaned), " ")

		if cleaned != original {
			product["title"] = cleaned
			log.Printf("Modified item %s: Removed promo text, new title is: %s",
				getString(product, "offerId"), cleaned)
			counts.Optimized++
			setSanitized(product)
		}
	}
	return counts, nil
}
