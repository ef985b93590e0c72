package builtin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedtools/feed-optimizer/internal/types"
)

func TestDescriptionOptimizer_StripsHTML(t *testing.T) {
	batch := singleProductBatch(map[string]any{
		"description": "<p>Soft <b>cotton</b> shirt</p><br><ul><li>machine washable</li></ul>",
	})

	counts, err := (&DescriptionOptimizer{}).Apply(batch, "en", "us", "USD")

	require.NoError(t, err)
	assert.Equal(t, 1, counts.Optimized)
	assert.Equal(t, "Soft cotton shirt machine washable", batch.Entries[0].Product["description"])
}

func TestDescriptionOptimizer_TruncatesOverlongDescription(t *testing.T) {
	batch := singleProductBatch(map[string]any{
		"description": strings.Repeat("a", 5100),
	})

	counts, err := (&DescriptionOptimizer{}).Apply(batch, "en", "us", "USD")

	require.NoError(t, err)
	assert.Equal(t, 1, counts.Optimized)
	assert.Len(t, batch.Entries[0].Product["description"], 5000)
}

func TestDescriptionOptimizer_AppendsMinedAttributes(t *testing.T) {
	opt := &DescriptionOptimizer{mined: types.MinedAttributes{
		"1111": {
			"gender": "women",
			"color":  []string{"navy"},
		},
	}}
	batch := singleProductBatch(map[string]any{
		"description": "A lightweight rain jacket.",
	})

	counts, err := opt.Apply(batch, "en", "us", "USD")

	require.NoError(t, err)
	assert.Equal(t, 1, counts.Optimized)
	description := batch.Entries[0].Product["description"].(string)
	assert.Contains(t, description, "women")
	assert.Contains(t, description, "navy")
	assert.True(t, strings.HasPrefix(description, "A lightweight rain jacket."),
		"original text must stay at the front")
}

func TestDescriptionOptimizer_PlainDescriptionUntouched(t *testing.T) {
	batch := singleProductBatch(map[string]any{
		"description": "Already a fine description.",
	})

	counts, err := (&DescriptionOptimizer{}).Apply(batch, "en", "us", "USD")

	require.NoError(t, err)
	assert.Equal(t, 0, counts.Optimized)
	assert.Equal(t, "Already a fine description.", batch.Entries[0].Product["description"])
}

func TestDescriptionOptimizer_HonorsExclusion(t *testing.T) {
	batch := singleProductBatch(map[string]any{
		"description": "<p>markup</p>",
	})
	batch.Entries[0].ExcludeOptimizers = []string{"description-optimizer"}

	counts, err := (&DescriptionOptimizer{}).Apply(batch, "en", "us", "USD")

	require.NoError(t, err)
	assert.Equal(t, 0, counts.Optimized)
	assert.Equal(t, 1, counts.Excluded)
	assert.Equal(t, "<p>markup</p>", batch.Entries[0].Product["description"])
}

func TestStripHTML(t *testing.T) {
	text, err := stripHTML("<div>one<br>two</div>")
	require.NoError(t, err)
	assert.Equal(t, "one two", text)

	text, err = stripHTML("<p>Soft cotton shirt</p><ul><li>machine washable</li></ul>")
	require.NoError(t, err)
	assert.Equal(t, "Soft cotton shirt machine washable", text)
}
