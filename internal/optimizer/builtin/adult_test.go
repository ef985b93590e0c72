package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adultTestConfig = `{
  "adult_product_types": ["lingerie"],
  "adult_google_product_categories": {
    "apparel > underwear > lingerie": ["*"],
    "health & beauty > personal care": ["intimate massager"]
  }
}`

func adultTestOptimizer(t *testing.T) *AdultOptimizer {
	t.Helper()
	loader := testConfigLoader(t, map[string]string{
		"adult_optimizer_config_en": adultTestConfig,
	})
	return &AdultOptimizer{cfg: loader}
}

func TestAdultOptimizer_ProductTypeMatch(t *testing.T) {
	opt := adultTestOptimizer(t)
	batch := singleProductBatch(map[string]any{
		"productTypes": []any{"Lingerie"},
	})

	counts, err := opt.Apply(batch, "en", "us", "USD")

	require.NoError(t, err)
	assert.Equal(t, 1, counts.Optimized)
	assert.Equal(t, true, batch.Entries[0].Product["adult"])
}

func TestAdultOptimizer_WildcardCategory(t *testing.T) {
	opt := adultTestOptimizer(t)
	batch := singleProductBatch(map[string]any{
		"googleProductCategory": "apparel > underwear > lingerie",
		"title":                 "Completely innocuous title",
	})

	counts, err := opt.Apply(batch, "en", "us", "USD")

	require.NoError(t, err)
	assert.Equal(t, 1, counts.Optimized)
	assert.Equal(t, true, batch.Entries[0].Product["adult"])
}

func TestAdultOptimizer_CategoryTokenNeedsTitleMatch(t *testing.T) {
	opt := adultTestOptimizer(t)

	t.Run("token in title", func(t *testing.T) {
		batch := singleProductBatch(map[string]any{
			"googleProductCategory": "health & beauty > personal care",
			"title":                 "Intimate massager with charger",
		})

		counts, err := opt.Apply(batch, "en", "us", "USD")

		require.NoError(t, err)
		assert.Equal(t, 1, counts.Optimized)
		assert.Equal(t, true, batch.Entries[0].Product["adult"])
	})

	t.Run("token absent", func(t *testing.T) {
		batch := singleProductBatch(map[string]any{
			"googleProductCategory": "health & beauty > personal care",
			"title":                 "Electric toothbrush",
		})

		counts, err := opt.Apply(batch, "en", "us", "USD")

		require.NoError(t, err)
		assert.Equal(t, 0, counts.Optimized)
		_, present := batch.Entries[0].Product["adult"]
		assert.False(t, present)
	})
}

func TestAdultOptimizer_AlreadyAdultUntouched(t *testing.T) {
	opt := adultTestOptimizer(t)
	batch := singleProductBatch(map[string]any{
		"adult":        true,
		"productTypes": []any{"Lingerie"},
	})

	counts, err := opt.Apply(batch, "en", "us", "USD")

	require.NoError(t, err)
	assert.Equal(t, 0, counts.Optimized)
}

func TestAdultOptimizer_HonorsExclusion(t *testing.T) {
	opt := adultTestOptimizer(t)
	batch := singleProductBatch(map[string]any{
		"productTypes": []any{"Lingerie"},
	})
	batch.Entries[0].ExcludeOptimizers = []string{"adult-optimizer"}

	counts, err := opt.Apply(batch, "en", "us", "USD")

	require.NoError(t, err)
	assert.Equal(t, 0, counts.Optimized)
	assert.Equal(t, 1, counts.Excluded)
	_, present := batch.Entries[0].Product["adult"]
	assert.False(t, present)
}
