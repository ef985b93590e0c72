package builtin

import (
	"log"
	"strings"
	"unicode"

	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

// invalidMPNValues are normalized mpn values known to cause
// disapproval.
// Reference: https://support.google.com/merchants/answer/6324482
var invalidMPNValues = map[string]bool{
	"":              true,
	"0":             true,
	"00000000":      true,
	"0000000000":    true,
	"0001":          true,
	"1":             true,
	"10":            true,
	"100":           true,
	"2":             true,
	"3":             true,
	"4":             true,
	"5":             true,
	"6":             true,
	"7":             true,
	"8":             true,
	"9":             true,
	"custommade":    true,
	"default":       true,
	"doesnotapply":  true,
	"false":         true,
	"mpn":           true,
	"na":            true,
	"no":            true,
	"none":          true,
	"notapplicable": true,
	"notavailable":  true,
	"null":          true,
	"true":          true,
	"unknown":       true,
	"yes":           true,
}

// MPNOptimizer removes placeholder mpn values that would cause the
// product to be disapproved.
type MPNOptimizer struct{}

// Parameter implements optimizer.Optimizer.
func (o *MPNOptimizer) Parameter() string {
	return "mpn-optimizer"
}

// Apply implements optimizer.Optimizer.
func (o *MPNOptimizer) Apply(batch *types.Batch, _, _, _ string) (types.Counts, error) {
	var counts types.Counts
	for _, entry := range batch.Entries {
		if optimizer.ExclusionSpecified(entry, o.Parameter()) {
			counts.Excluded++
			continue
		}
		product := entry.Product
		if _, ok := product["mpn"]; !ok {
			continue
		}
		normalized := normalizeMPN(getString(product, "mpn"))
		if invalidMPNValues[normalized] {
			log.Printf("Modified item %s: Removing invalid MPN [%s]",
				getString(product, "offerId"), normalized)
			delete(product, "mpn")
			counts.Optimized++
			setSanitized(product)
		}
	}
	return counts, nil
}

// normalizeMPN lowercases the mpn and strips punctuation and
// whitespace so trivially-disguised placeholder values still match the
// blacklist.
func normalizeMPN(mpn string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(mpn) {
		if unicode.IsPunct(r) || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
