package builtin

import (
	"log"
	"regexp"
	"strings"

	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

// maxTitleLength is the Content API title character limit.
// Reference: https://support.google.com/merchants/answer/6324415
const maxTitleLength = 150

var trailingDotsPattern = regexp.MustCompile(`[.…]+$`)

// TitleLengthOptimizer fixes title length. Titles over the limit are
// truncated, and titles detected to be truncated forms of the
// description are repopulated from the description.
type TitleLengthOptimizer struct{}

// Parameter implements optimizer.Optimizer.
func (o *TitleLengthOptimizer) Parameter() string {
	return "title-length-optimizer"
}

// Apply implements optimizer.Optimizer.
func (o *TitleLengthOptimizer) Apply(batch *types.Batch, _, _, _ string) (types.Counts, error) {
	var counts types.Counts
	for _, entry := range batch.Entries {
		if optimizer.ExclusionSpecified(entry, o.Parameter()) {
			counts.Excluded++
			continue
		}
		product := entry.Product
		itemID := getString(product, "offerId")
		title := getString(product, "title")
		description := getString(product, "description")
		titleWithoutTrailingDots := trailingDotsPattern.ReplaceAllString(title, "")

		switch {
		case runeLen(title) > maxTitleLength:
			product["title"] = truncate(title, maxTitleLength)
			log.Printf("Modified item %s: Truncating title: %s", itemID, product["title"])
			counts.Optimized++
			setSanitized(product)
		case titleWithoutTrailingDots != description &&
			titleWithoutTrailingDots != "" &&
			strings.HasPrefix(description, titleWithoutTrailingDots):
			product["title"] = truncate(description, maxTitleLength)
			log.Printf("Modified item %s: Populating title with description due to detected title truncation: %s",
				itemID, product["title"])
			counts.Optimized++
			setOptimized(product)
		}
	}
	return counts, nil
}
