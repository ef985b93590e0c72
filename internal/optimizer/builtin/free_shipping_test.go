package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const freeShippingTestConfig = `{
  "free_shipping_patterns": ["free\\s+shipping"],
  "shipping_exclusion_patterns": ["free\\s+shipping\\s+over"]
}`

func freeShippingTestOptimizer(t *testing.T) *FreeShippingOptimizer {
	t.Helper()
	loader := testConfigLoader(t, map[string]string{
		"free_shipping_optimizer_config_en": freeShippingTestConfig,
	})
	return &FreeShippingOptimizer{cfg: loader}
}

func TestFreeShippingOptimizer_SetsZeroShipping(t *testing.T) {
	opt := freeShippingTestOptimizer(t)
	batch := singleProductBatch(map[string]any{
		"title": "Desk lamp with free shipping",
	})

	counts, err := opt.Apply(batch, "en", "us", "USD")

	require.NoError(t, err)
	assert.Equal(t, 1, counts.Optimized)
	shipping, ok := batch.Entries[0].Product["shipping"].([]any)
	require.True(t, ok)
	require.Len(t, shipping, 1)
	item := shipping[0].(map[string]any)
	assert.Equal(t, "us", item["country"])
	assert.Equal(t, map[string]any{"value": "0", "currency": "USD"}, item["price"])
}

func TestFreeShippingOptimizer_ExclusionPatternBlocks(t *testing.T) {
	opt := freeShippingTestOptimizer(t)
	batch := singleProductBatch(map[string]any{
		"title": "Desk lamp with free shipping over $50",
	})

	counts, err := opt.Apply(batch, "en", "us", "USD")

	require.NoError(t, err)
	assert.Equal(t, 0, counts.Optimized)
	_, present := batch.Entries[0].Product["shipping"]
	assert.False(t, present)
}

func TestFreeShippingOptimizer_ExistingZeroShippingUntouched(t *testing.T) {
	opt := freeShippingTestOptimizer(t)
	batch := singleProductBatch(map[string]any{
		"title": "Desk lamp with free shipping",
		"shipping": []any{map[string]any{
			"country": "us",
			"price":   map[string]any{"value": "0", "currency": "USD"},
		}},
	})

	counts, err := opt.Apply(batch, "en", "us", "USD")

	require.NoError(t, err)
	assert.Equal(t, 0, counts.Optimized)
}

func TestFreeShippingOptimizer_NoPatternNoChange(t *testing.T) {
	opt := freeShippingTestOptimizer(t)
	batch := singleProductBatch(map[string]any{
		"title": "Desk lamp",
	})

	counts, err := opt.Apply(batch, "en", "us", "USD")

	require.NoError(t, err)
	assert.Equal(t, 0, counts.Optimized)
	_, present := batch.Entries[0].Product["shipping"]
	assert.False(t, present)
}

func TestIdentifierExistsOptimizer_ClearsFalseWithBrand(t *testing.T) {
	batch := singleProductBatch(map[string]any{
		"identifierExists": false,
		"brand":            "Acme",
	})

	counts, err := (&IdentifierExistsOptimizer{}).Apply(batch, "en", "us", "USD")

	require.NoError(t, err)
	assert.Equal(t, 1, counts.Optimized)
	_, present := batch.Entries[0].Product["identifierExists"]
	assert.False(t, present)
}

func TestIdentifierExistsOptimizer_FalseWithoutIdentifiersKept(t *testing.T) {
	batch := singleProductBatch(map[string]any{
		"identifierExists": false,
	})

	counts, err := (&IdentifierExistsOptimizer{}).Apply(batch, "en", "us", "USD")

	require.NoError(t, err)
	assert.Equal(t, 0, counts.Optimized)
	assert.Equal(t, false, batch.Entries[0].Product["identifierExists"])
}
