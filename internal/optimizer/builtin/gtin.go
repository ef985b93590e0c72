package builtin

import (
	"log"
	"strconv"
	"strings"

	"github.com/feedtools/feed-optimizer/internal/optimizer"
	"github.com/feedtools/feed-optimizer/internal/types"
)

// GTIN validation constants.
// References:
//   - https://support.google.com/merchants/answer/6324461
//   - https://www.gs1.org/services/how-calculate-check-digit-manually
var (
	validGTINLengths  = map[int]bool{8: true, 12: true, 13: true, 14: true}
	couponPrefixes    = []string{"981", "982", "983", "984", "99", "05"}
	restrictedRanges  = [][2]int{{20, 29}, {40, 49}, {200, 299}}
	invalidBulkDigit  = byte('9')
	sequentialPattern = "123456789"
)

// GTINOptimizer removes gtin values that fail format, prefix-range, or
// check-digit validation, preventing the product from being
// disapproved for an invalid identifier.
type GTINOptimizer struct{}

// Parameter implements optimizer.Optimizer.
func (o *GTINOptimizer) Parameter() string {
	return "gtin-optimizer"
}

// Apply implements optimizer.Optimizer.
func (o *GTINOptimizer) Apply(batch *types.Batch, _, _, _ string) (types.Counts, error) {
	var counts types.Counts
	for _, entry := range batch.Entries {
		if optimizer.ExclusionSpecified(entry, o.Parameter()) {
			counts.Excluded++
			continue
		}
		product := entry.Product
		if _, ok := product["gtin"]; !ok {
			continue
		}
		gtin := getString(product, "gtin")
		if gtinFailsFormatCheck(gtin) ||
			gtinUsesBulkIndicator(gtin) ||
			gtinUsesReservedRange(gtin) ||
			gtinUsesCouponRange(gtin) ||
			gtinFailsChecksum(gtin) {
			delete(product, "gtin")
			log.Printf("Modified item %s: Cleared invalid gtin: %s to prevent disapproval",
				getString(product, "offerId"), gtin)
			counts.Optimized++
			setSanitized(product)
		}
	}
	return counts, nil
}

func gtinFailsFormatCheck(gtin string) bool {
	if !isAllDigits(gtin) || !validGTINLengths[len(gtin)] {
		return true
	}
	return containsRepeatingDigits(gtin[:len(gtin)-1]) || strings.HasPrefix(gtin, sequentialPattern)
}

// gtinUsesBulkIndicator reports whether a 14-digit gtin starts with
// the bulk indicator digit 9, which Content API rejects.
func gtinUsesBulkIndicator(gtin string) bool {
	return len(gtin) == 14 && gtin[0] == invalidBulkDigit
}

func gtinUsesReservedRange(gtin string) bool {
	companyPrefix, err := strconv.Atoi(gtin[1:4])
	if err != nil {
		return false
	}
	for _, r := range restrictedRanges {
		if companyPrefix >= r[0] && companyPrefix <= r[1] {
			return true
		}
	}
	return false
}

func gtinUsesCouponRange(gtin string) bool {
	for _, prefix := range couponPrefixes {
		if strings.HasPrefix(gtin[1:], prefix) {
			return true
		}
	}
	return false
}

func gtinFailsChecksum(gtin string) bool {
	padded := strings.Repeat("0", 14-len(gtin)) + gtin
	existing := int(padded[13] - '0')
	return calculateCheckDigit(padded[:13]) != existing
}

// calculateCheckDigit computes the GS1 check digit for a gtin without
// its final digit: odd positions weighted by three, summed with even
// positions, rounded up to the next multiple of ten.
func calculateCheckDigit(partial string) int {
	sum := 0
	for i, c := range partial {
		digit := int(c - '0')
		if i%2 == 0 {
			sum += digit * 3
		} else {
			sum += digit
		}
	}
	return (sum+9)/10*10 - sum
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func containsRepeatingDigits(s string) bool {
	if s == "" {
		return false
	}
	return strings.Count(s, s[:1]) == len(s)
}
