package builtin

import (
	"log"
	"strings"

	"github.com/feedtools/feed-optimizer/internal/config"
	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

const (
	conditionNew        = "new"
	conditionUsed       = "used"
	conditionConfigName = "condition_optimizer_config"
	categorySeparator   = " > "
)

// ConditionOptimizer resets condition from "new" to "used" when
// used-item tokens from the per-language config appear in the title or
// description. Categories listed in the config's exclusion list are
// skipped entirely.
// Reference: https://support.google.com/merchants/answer/6324469
type ConditionOptimizer struct {
	cfg *config.Loader
}

// Parameter implements optimizer.Optimizer.
func (o *ConditionOptimizer) Parameter() string {
	return "condition-optimizer"
}

// Apply implements optimizer.Optimizer.
func (o *ConditionOptimizer) Apply(batch *types.Batch, language, _, _ string) (types.Counts, error) {
	var counts types.Counts
	cfg, err := o.cfg.ForLanguage(conditionConfigName, language)
	if err != nil {
		return counts, err
	}
	baseTokens := config.StringList(cfg, "used_tokens")
	categoryTokens := config.StringMap(cfg, "target_product_types")
	excludedCategories := lowerSet(config.StringList(cfg, "excluded_product_categories"))

	for _, entry := range batch.Entries {
		if optimizer.ExclusionSpecified(entry, o.Parameter()) {
			counts.Excluded++
			continue
		}
		product := entry.Product
		category := getString(product, "googleProductCategory")
		if fieldContainsToken(category, excludedCategories) {
			log.Printf("Product ID: %s With Category %s was flagged for exclusion of the condition check",
				getString(product, "offerId"), category)
			continue
		}
		if getString(product, "condition") != conditionNew {
			continue
		}

		usedTokens := lowerSet(baseTokens)
		levels := strings.Split(category, categorySeparator)
		if len(levels) > 0 {
			for _, token := range categoryTokens[levels[len(levels)-1]] {
				usedTokens[strings.ToLower(token)] = true
			}
		}

		if fieldContainsToken(getString(product, "title"), usedTokens) ||
			fieldContainsToken(getString(product, "description"), usedTokens) {
			product["condition"] = conditionUsed
			log.Printf("Modified item %s: Setting new product to used.",
				getString(product, "offerId"))
			counts.Optimized++
			setSanitized(product)
		}
	}
	return counts, nil
}
