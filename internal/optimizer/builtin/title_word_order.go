package builtin

import (
	"log"
	"strings"

	"github.com/feedtools/feed-optimizer/internal/config"
	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

const titleWordOrderConfigName = "title_word_order_optimizer_config"

// titleFrontThreshold: keywords already within this many characters of
// the front are considered prominent enough and left alone.
const titleFrontThreshold = 25

// TitleWordOrderOptimizer moves high-performing keywords (the word mix
// model output, configured per language) to the front of the title.
// It is a member of the run-last set: it must see the final title text
// after every other title mutation.
type TitleWordOrderOptimizer struct {
	cfg *config.Loader
}

// Parameter implements optimizer.Optimizer.
func (o *TitleWordOrderOptimizer) Parameter() string {
	return "title-word-order-optimizer"
}

// Apply implements optimizer.Optimizer.
func (o *TitleWordOrderOptimizer) Apply(batch *types.Batch, language, _, _ string) (types.Counts, error) {
	var counts types.Counts
	cfg, err := o.cfg.ForLanguage(titleWordOrderConfigName, language)
	if err != nil {
		return counts, err
	}
	keywords := config.StringList(cfg, "high_performing_keywords")
	if len(keywords) == 0 {
		return counts, nil
	}

	for _, entry := range batch.Entries {
		if optimizer.ExclusionSpecified(entry, o.Parameter()) {
			counts.Excluded++
			continue
		}
		product := entry.Product
		title := getString(product, "title")
		if title == "" {
			continue
		}
		reordered := promoteKeywords(title, keywords)
		if reordered != title {
			product["title"] = truncate(reordered, maxTitleLength)
			log.Printf("Modified item %s: Reordered title keywords: %s",
				getString(product, "offerId"), product["title"])
			counts.Optimized++
			optimizer.SetOptimizationTracking(product, optimizer.TagWordMixModel)
		}
	}
	return counts, nil
}

// promoteKeywords copies high-performing keywords found deep in the
// title to the front, in bracketed form, keeping the original text
// intact behind them.
func promoteKeywords(title string, keywords []string) string {
	lowerTitle := strings.ToLower(title)
	var promoted []string
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		pos := strings.Index(lowerTitle, strings.ToLower(keyword))
		if pos <= titleFrontThreshold {
			continue
		}
		promoted = append(promoted, "["+keyword+"]")
	}
	if len(promoted) == 0 {
		return title
	}
	return strings.Join(promoted, " ") + " " + title
}
