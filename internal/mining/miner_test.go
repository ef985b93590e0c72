package mining

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedtools/feed-optimizer/internal/config"
	"github.com/feedtools/feed-optimizer/internal/types"
)

const minerTestConfig = `{
  "female_terms": ["women", "ladies"],
  "male_terms": ["men"],
  "unisex_terms": ["unisex"],
  "colors": ["black", "navy", "red", "green", "white"]
}`

func testMiner(t *testing.T) *Miner {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "attribute_miner_config_en.json")
	require.NoError(t, os.WriteFile(path, []byte(minerTestConfig), 0o644))
	return NewMiner("en", "us", config.NewLoader(dir))
}

func minerBatch(product map[string]any) *types.Batch {
	if _, ok := product["offerId"]; !ok {
		product["offerId"] = "1111"
	}
	return &types.Batch{Entries: []*types.Entry{{Product: product}}}
}

func TestMiner_MinesGenderFromTitle(t *testing.T) {
	batch := minerBatch(map[string]any{
		"title": "Women's black rain jacket",
	})

	mined := testMiner(t).MineAndInsertAttributesForBatch(batch)

	require.Contains(t, mined, "1111")
	assert.Equal(t, "female", mined["1111"]["gender"])
	assert.Equal(t, "female", batch.Entries[0].Product["gender"],
		"mined gender is inserted into the product")
}

func TestMiner_FemaleTermsWinOverMaleSubstring(t *testing.T) {
	// "women" contains "men"; the female term list is checked first.
	batch := minerBatch(map[string]any{
		"title": "Jacket for women",
	})

	mined := testMiner(t).MineAndInsertAttributesForBatch(batch)

	assert.Equal(t, "female", mined["1111"]["gender"])
}

func TestMiner_ExistingGenderFieldNormalized(t *testing.T) {
	batch := minerBatch(map[string]any{
		"title":  "Plain jacket",
		"gender": "Female",
	})

	mined := testMiner(t).MineAndInsertAttributesForBatch(batch)

	assert.Equal(t, "female", mined["1111"]["gender"])
}

func TestMiner_MinesColorsUpToCap(t *testing.T) {
	batch := minerBatch(map[string]any{
		"title":       "Jacket in black, navy and red",
		"description": "Also available in green and white.",
	})

	mined := testMiner(t).MineAndInsertAttributesForBatch(batch)

	assert.Equal(t, "black/navy/red", mined["1111"]["color"])
	assert.Equal(t, "black/navy/red", batch.Entries[0].Product["color"])
}

func TestMiner_ExistingColorFieldNotOverwritten(t *testing.T) {
	batch := minerBatch(map[string]any{
		"title": "Jacket in black",
		"color": "purple",
	})

	mined := testMiner(t).MineAndInsertAttributesForBatch(batch)

	_, ok := mined["1111"]
	assert.False(t, ok)
	assert.Equal(t, "purple", batch.Entries[0].Product["color"])
}

func TestMiner_MinesSizeFromTitle(t *testing.T) {
	batch := minerBatch(map[string]any{
		"title": "Rain jacket XL waterproof",
	})

	mined := testMiner(t).MineAndInsertAttributesForBatch(batch)

	assert.Equal(t, []string{"XL"}, mined["1111"]["sizes"])
}

func TestMiner_MissingConfigDegradesToEmpty(t *testing.T) {
	miner := NewMiner("en", "us", config.NewLoader(t.TempDir()))
	batch := minerBatch(map[string]any{
		"title": "Women's black jacket",
	})

	mined := miner.MineAndInsertAttributesForBatch(batch)

	assert.Empty(t, mined)
	assert.NotContains(t, batch.Entries[0].Product, "sizes")
}

func TestNormalizeGender(t *testing.T) {
	assert.Equal(t, "female", normalizeGender("FEMALE"))
	assert.Equal(t, "male", normalizeGender("male"))
	assert.Equal(t, "unisex", normalizeGender("Unisex"))
	assert.Equal(t, "", normalizeGender("womens"))
}
