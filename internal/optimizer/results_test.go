package optimizer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedtools/feed-optimizer/internal/types"
)

func TestResults_MarshalPreservesInsertionOrder(t *testing.T) {
	results := NewResults()
	results.Set("z-optimizer", types.SuccessResult(2))
	results.Set("a-optimizer", types.SuccessResult(0))
	results.Set("m-optimizer", types.FailureResult("boom"))

	data, err := json.Marshal(results)
	require.NoError(t, err)

	want := `{` +
		`"z-optimizer":{"result":"success","num_of_products_optimized":2,"error_msg":""},` +
		`"a-optimizer":{"result":"success","num_of_products_optimized":0,"error_msg":""},` +
		`"m-optimizer":{"result":"failure","num_of_products_optimized":0,"error_msg":"boom"}` +
		`}`
	assert.JSONEq(t, want, string(data))
	assert.Equal(t, want, string(data), "member order must be insertion order")
}

func TestResults_SetOverwritesInPlace(t *testing.T) {
	results := NewResults()
	results.Set("a-optimizer", types.SuccessResult(1))
	results.Set("b-optimizer", types.SuccessResult(2))
	results.Set("a-optimizer", types.SuccessResult(9))

	assert.Equal(t, []string{"a-optimizer", "b-optimizer"}, results.Keys())
	got, ok := results.Get("a-optimizer")
	require.True(t, ok)
	assert.Equal(t, 9, got.NumOfProductsOptimized)
	assert.Equal(t, 2, results.Len())
}

func TestResults_UnmarshalRoundTrip(t *testing.T) {
	original := NewResults()
	original.Set("b-optimizer", types.SuccessResult(3))
	original.Set("a-optimizer", types.FailureResult("bad data"))

	data, err := json.Marshal(original)
	require.NoError(t, err)

	restored := NewResults()
	require.NoError(t, json.Unmarshal(data, restored))

	assert.Equal(t, original.Keys(), restored.Keys())
	for _, key := range original.Keys() {
		want, _ := original.Get(key)
		got, ok := restored.Get(key)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestResults_EmptyMarshalsToEmptyObject(t *testing.T) {
	data, err := json.Marshal(NewResults())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}
