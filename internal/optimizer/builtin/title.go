package builtin

import (
	"log"
	"strings"

	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

// charsToUseWhenCreatingTitle is the number of description characters
// used to seed a missing title.
const charsToUseWhenCreatingTitle = 34

// minedAttributeAppendOrder fixes the order in which mined attributes
// are appended so identical inputs always produce identical titles.
var minedAttributeAppendOrder = []string{"gender", "color", "sizes", "brand"}

// TitleOptimizer performs full title optimization: creates a title
// from the description when missing, fixes title length, and appends
// mined attributes (gender, color, sizes, brand) while preserving the
// original title text.
type TitleOptimizer struct {
	mined types.MinedAttributes
}

// Parameter implements optimizer.Optimizer.
func (o *TitleOptimizer) Parameter() string {
	return "title-optimizer"
}

// Apply implements optimizer.Optimizer.
func (o *TitleOptimizer) Apply(batch *types.Batch, _, _, _ string) (types.Counts, error) {
	var counts types.Counts
	for _, entry := range batch.Entries {
		if optimizer.ExclusionSpecified(entry, o.Parameter()) {
			counts.Excluded++
			continue
		}
		product := entry.Product
		originalTitle := getString(product, "title")
		if originalTitle == "" {
			originalTitle = createTitleFromDescription(product)
			product["title"] = originalTitle
		}
		originalLength := runeLen(originalTitle)

		optimizeTitleLength(product)
		o.appendMinedAttributes(product, originalLength)

		if getString(product, "title") != originalTitle {
			counts.Optimized++
		}
	}
	return counts, nil
}

// appendMinedAttributes appends the product's mined attribute values
// to the title, never cutting into the first charsToPreserve
// characters of the original title.
func (o *TitleOptimizer) appendMinedAttributes(product map[string]any, charsToPreserve int) {
	if len(o.mined) == 0 {
		return
	}
	attributes := o.mined[getString(product, "offerId")]
	if len(attributes) == 0 {
		return
	}

	var keywords []string
	for _, name := range minedAttributeAppendOrder {
		switch value := attributes[name].(type) {
		case string:
			keywords = append(keywords, value)
		case []string:
			keywords = append(keywords, value...)
		case []any:
			for _, item := range value {
				if s, ok := item.(string); ok {
					keywords = append(keywords, s)
				}
			}
		}
	}
	if len(keywords) == 0 {
		return
	}

	title := getString(product, "title")
	appended := appendKeywordsToField(title, keywords, charsToPreserve, maxTitleLength)
	if appended == title {
		return
	}
	product["title"] = appended
	setOptimized(product)
}

func createTitleFromDescription(product map[string]any) string {
	description := getString(product, "description")
	if description == "" {
		return ""
	}
	title := strings.TrimSpace(truncate(description, charsToUseWhenCreatingTitle)) + "…"
	log.Printf("Modified item %s: Created title: %s", getString(product, "offerId"), title)
	return title
}

// optimizeTitleLength truncates over-long titles and complements
// truncated titles from the description, mirroring the standalone
// title length rule so either optimizer can run alone.
func optimizeTitleLength(product map[string]any) {
	title := getString(product, "title")
	if runeLen(title) > maxTitleLength {
		product["title"] = truncate(title, maxTitleLength)
		log.Printf("Modified item %s: Truncating title: %s",
			getString(product, "offerId"), product["title"])
		setSanitized(product)
		return
	}

	description := getString(product, "description")
	trimmed := trailingDotsPattern.ReplaceAllString(title, "")
	if trimmed != "" && trimmed != description && strings.HasPrefix(description, trimmed) {
		product["title"] = truncate(description, maxTitleLength)
		log.Printf("Modified item %s: Populating title with description due to detected title truncation: %s",
			getString(product, "offerId"), product["title"])
		setOptimized(product)
	}
}
