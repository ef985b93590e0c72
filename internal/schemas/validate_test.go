package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchRequestSchema_IsValidJSON(t *testing.T) {
	var v any
	assert.NoError(t, json.Unmarshal([]byte(batchRequestSchema), &v))
}

func TestValidateBatchRequest_Valid(t *testing.T) {
	body := `{
		"entries": [{
			"batchId": 0,
			"merchantId": 12345,
			"method": "insert",
			"productId": "online:en:us:1111",
			"product": {"offerId": "1111", "title": "a title"}
		}]
	}`

	assert.NoError(t, ValidateBatchRequest([]byte(body)))
}

func TestValidateBatchRequest_MinimalEntry(t *testing.T) {
	assert.NoError(t, ValidateBatchRequest([]byte(`{"entries": [{"product": {}}]}`)))
}

func TestValidateBatchRequest_EmptyEntries(t *testing.T) {
	assert.NoError(t, ValidateBatchRequest([]byte(`{"entries": []}`)))
}

func TestValidateBatchRequest_Violations(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing entries", `{}`},
		{"entries not an array", `{"entries": {}}`},
		{"entry missing product", `{"entries": [{"batchId": 1}]}`},
		{"batchId wrong type", `{"entries": [{"batchId": "one", "product": {}}]}`},
		{"product not an object", `{"entries": [{"product": "nope"}]}`},
		{"excludeOptimizers wrong element type", `{"entries": [{"product": {}, "excludeOptimizers": [1]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBatchRequest([]byte(tt.body))

			require.Error(t, err)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidationError_MessageListsFields(t *testing.T) {
	err := ValidateBatchRequest([]byte(`{"entries": [{"batchId": "one", "product": {}}]}`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "batchId")
}
