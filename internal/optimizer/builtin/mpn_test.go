package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMPNOptimizer_RemovesPlaceholderValues(t *testing.T) {
	tests := []struct {
		name string
		mpn  string
	}{
		{"literal placeholder", "N/A"},
		{"disguised placeholder", "does-not-apply"},
		{"spaced placeholder", "not available"},
		{"zero", "0"},
		{"default", "DEFAULT"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := singleProductBatch(map[string]any{"mpn": tt.mpn})

			counts, err := (&MPNOptimizer{}).Apply(batch, "en", "us", "USD")

			require.NoError(t, err)
			assert.Equal(t, 1, counts.Optimized)
			_, present := batch.Entries[0].Product["mpn"]
			assert.False(t, present)
		})
	}
}

func TestMPNOptimizer_KeepsRealMPN(t *testing.T) {
	batch := singleProductBatch(map[string]any{"mpn": "GO12345OOGLE"})

	counts, err := (&MPNOptimizer{}).Apply(batch, "en", "us", "USD")

	require.NoError(t, err)
	assert.Equal(t, 0, counts.Optimized)
	assert.Equal(t, "GO12345OOGLE", batch.Entries[0].Product["mpn"])
}

func TestMPNOptimizer_HonorsExclusion(t *testing.T) {
	batch := singleProductBatch(map[string]any{"mpn": "N/A"})
	batch.Entries[0].ExcludeOptimizers = []string{"mpn-optimizer"}

	counts, err := (&MPNOptimizer{}).Apply(batch, "en", "us", "USD")

	require.NoError(t, err)
	assert.Equal(t, 0, counts.Optimized)
	assert.Equal(t, 1, counts.Excluded)
	assert.Equal(t, "N/A", batch.Entries[0].Product["mpn"])
}

func TestNormalizeMPN(t *testing.T) {
	assert.Equal(t, "doesnotapply", normalizeMPN("Does Not Apply"))
	assert.Equal(t, "na", normalizeMPN("n/a"))
	assert.Equal(t, "abc123", normalizeMPN("ABC-123"))
}
