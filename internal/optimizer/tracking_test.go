package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetOptimizationTracking_SetsTag(t *testing.T) {
	t.Setenv("PRODUCT_TRACKING_FIELD", "customLabel4")

	product := map[string]any{"offerId": "1111"}
	SetOptimizationTracking(product, TagSanitized)

	assert.Equal(t, "sanitized", product["customLabel4"])
}

func TestSetOptimizationTracking_CombinesTagsInInsertionOrder(t *testing.T) {
	t.Setenv("PRODUCT_TRACKING_FIELD", "customLabel0")

	product := map[string]any{}
	SetOptimizationTracking(product, TagSanitized)
	SetOptimizationTracking(product, TagOptimized)
	SetOptimizationTracking(product, TagWordMixModel)

	assert.Equal(t, "sanitized-optimized-wmm", product["customLabel0"])
}

func TestSetOptimizationTracking_RepeatedTagIsIdempotent(t *testing.T) {
	t.Setenv("PRODUCT_TRACKING_FIELD", "customLabel0")

	product := map[string]any{}
	SetOptimizationTracking(product, TagOptimized)
	SetOptimizationTracking(product, TagSanitized)
	SetOptimizationTracking(product, TagOptimized)

	assert.Equal(t, "optimized-sanitized", product["customLabel0"])
}

func TestSetOptimizationTracking_UnsetFieldIsNoOp(t *testing.T) {
	t.Setenv("PRODUCT_TRACKING_FIELD", "")

	product := map[string]any{}
	SetOptimizationTracking(product, TagSanitized)

	assert.Empty(t, product)
}

func TestSetOptimizationTracking_NonCustomLabelFieldIsNoOp(t *testing.T) {
	t.Setenv("PRODUCT_TRACKING_FIELD", "description")

	product := map[string]any{"description": "keep me"}
	SetOptimizationTracking(product, TagSanitized)

	assert.Equal(t, "keep me", product["description"],
		"a misconfigured tracking field must never clobber product data")
}

func TestCombineTrackingTags(t *testing.T) {
	tests := []struct {
		name    string
		current string
		tag     TrackingTag
		want    string
	}{
		{"empty value", "", TagSanitized, "sanitized"},
		{"append new tag", "sanitized", TagOptimized, "sanitized-optimized"},
		{"existing first tag", "sanitized-optimized", TagSanitized, "sanitized-optimized"},
		{"existing last tag", "sanitized-optimized", TagOptimized, "sanitized-optimized"},
		{"third tag", "sanitized-optimized", TagWordMixModel, "sanitized-optimized-wmm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, combineTrackingTags(tt.current, tt.tag))
		})
	}
}
