package optimizer

import (
	"log"
	"os"
	"strings"
)

// TrackingTag categorizes the change an optimizer made to a product so
// it can be tracked downstream in reporting.
type TrackingTag string

const (
	// TagSanitized marks that invalid data was removed or corrected;
	// without the fix the product would have been disapproved.
	TagSanitized TrackingTag = "sanitized"
	// TagOptimized marks that valid data was modified in an attempt to
	// improve performance.
	TagOptimized TrackingTag = "optimized"
	// TagWordMixModel marks that word-mix-model title reordering was
	// applied.
	TagWordMixModel TrackingTag = "wmm"
)

// trackingFieldEnv names the env var holding the product field used to
// record tracking tags. Empty or unset means the customer opted out.
const trackingFieldEnv = "PRODUCT_TRACKING_FIELD"

// trackingTagSeparator joins tag categories when more than one applies
// to the same product within a single run.
const trackingTagSeparator = "-"

// SetOptimizationTracking records a tracking tag on a product.
//
// The tracking field is customer-configured and must be one of the
// custom label fields; any other configured name is logged and ignored
// so a misconfigured deployment cannot break optimization. When the
// field already holds tags, the new category is appended in insertion
// order; applying the same category twice never duplicates it.
func SetOptimizationTracking(product map[string]any, tag TrackingTag) {
	trackingField := os.Getenv(trackingFieldEnv)
	if trackingField == "" {
		// Client does not want to perform item tracking.
		return
	}

	if !strings.HasPrefix(trackingField, "customLabel") {
		log.Printf("Failed to set product tracking. Product tracking field is not a custom label: %s", trackingField)
		return
	}

	current, _ := product[trackingField].(string)
	product[trackingField] = combineTrackingTags(current, tag)
}

// combineTrackingTags merges a new tag category into the existing
// tracking value. Categories keep the order in which they were first
// applied; re-applying a category is a no-op.
func combineTrackingTags(current string, tag TrackingTag) string {
	if current == "" {
		return string(tag)
	}
	for _, existing := range strings.Split(current, trackingTagSeparator) {
		if existing == string(tag) {
			return current
		}
	}
	return current + trackingTagSeparator + string(tag)
}
