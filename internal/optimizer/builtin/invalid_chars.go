package builtin

import (
	"log"
	"strings"

	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

// Unicode private use area code points are not valid in Merchant
// Center fields even though UTF-8/16 encoding is supported.
// Reference: https://support.google.com/merchants/answer/160079
const (
	privateUseAreaStart = 0xE000
	privateUseAreaEnd   = 0xF8FF
)

var fieldsToSanitize = []string{"description", "title"}

// InvalidCharsOptimizer removes characters in the Unicode private use
// area from the title and description.
type InvalidCharsOptimizer struct{}

// Parameter implements optimizer.Optimizer.
func (o *InvalidCharsOptimizer) Parameter() string {
	return "invalid-chars-optimizer"
}

// Apply implements optimizer.Optimizer.
func (o *InvalidCharsOptimizer) Apply(batch *types.Batch, _, _, _ string) (types.Counts, error) {
	var counts types.Counts
	for _, entry := range batch.Entries {
		if optimizer.ExclusionSpecified(entry, o.Parameter()) {
			counts.Excluded++
			continue
		}
		product := entry.Product
		if sanitizeFields(product, fieldsToSanitize) {
			counts.Optimized++
			setSanitized(product)
		}
	}
	return counts, nil
}

func sanitizeFields(product map[string]any, fields []string) bool {
	sanitized := false
	for _, field := range fields {
		value := getString(product, field)
		if value == "" {
			continue
		}
		cleaned := strings.Map(func(r rune) rune {
			if r >= privateUseAreaStart && r <= privateUseAreaEnd {
				return -1
			}
			return r
		}, value)
		if cleaned != value {
			log.Printf("Modified item %s: Removing invalid chars from [%s]",
				getString(product, "offerId"), field)
			product[field] = cleaned
			sanitized = true
		}
	}
	return sanitized
}
