package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeOrder(t *testing.T) {
	runLast := []string{"title-word-order-optimizer"}

	tests := []struct {
		name     string
		selected []string
		want     []string
	}{
		{
			name:     "run-last member moved to end",
			selected: []string{"title-optimizer", "title-word-order-optimizer", "mpn-optimizer"},
			want:     []string{"title-optimizer", "mpn-optimizer", "title-word-order-optimizer"},
		},
		{
			name:     "run-last member selected first still runs last",
			selected: []string{"title-word-order-optimizer", "title-optimizer", "mpn-optimizer"},
			want:     []string{"title-optimizer", "mpn-optimizer", "title-word-order-optimizer"},
		},
		{
			name:     "selection order preserved",
			selected: []string{"mpn-optimizer", "gtin-optimizer", "title-optimizer"},
			want:     []string{"mpn-optimizer", "gtin-optimizer", "title-optimizer"},
		},
		{
			name:     "only run-last member selected",
			selected: []string{"title-word-order-optimizer"},
			want:     []string{"title-word-order-optimizer"},
		},
		{
			name:     "empty selection",
			selected: nil,
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeOrder(tt.selected, runLast))
		})
	}
}

func TestComputeOrder_Deterministic(t *testing.T) {
	selected := []string{"b-optimizer", "title-word-order-optimizer", "a-optimizer"}

	first := ComputeOrder(selected, RunLastOptimizers)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ComputeOrder(selected, RunLastOptimizers))
	}
}

func TestComputeOrder_MultipleRunLastKeepRelativeOrder(t *testing.T) {
	runLast := []string{"x-optimizer", "y-optimizer"}
	selected := []string{"y-optimizer", "a-optimizer", "x-optimizer", "b-optimizer"}

	got := ComputeOrder(selected, runLast)

	assert.Equal(t, []string{"a-optimizer", "b-optimizer", "y-optimizer", "x-optimizer"}, got)
}
