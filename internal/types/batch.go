// Package types provides type definitions for structured data used throughout the feed-optimizer system.
package types

// Batch represents one Content API custombatch request body: the unit
// of work for a single optimization run.
type Batch struct {
	Entries []*Entry `json:"entries"`
}

// Entry wraps exactly one product resource plus its batch metadata.
// ExcludeOptimizers lists optimizer parameters this product opts out of.
type Entry struct {
	BatchID           int64          `json:"batchId,omitempty"`
	MerchantID        int64          `json:"merchantId,omitempty"`
	Method            string         `json:"method,omitempty"`
	ProductID         string         `json:"productId,omitempty"`
	Product           map[string]any `json:"product"`
	ExcludeOptimizers []string       `json:"excludeOptimizers,omitempty"`
}

// MinedAttributes maps a product's offerId to the attributes mined for
// it (attribute name -> mined value). Computed at most once per
// pipeline run and shared read-only across optimizers.
type MinedAttributes map[string]map[string]any

// Clone returns a deep copy of the batch. Optimizers mutate the copy so
// a failing optimizer can never corrupt the caller's batch.
func (b *Batch) Clone() *Batch {
	if b == nil {
		return nil
	}
	out := &Batch{Entries: make([]*Entry, len(b.Entries))}
	for i, e := range b.Entries {
		out.Entries[i] = e.Clone()
	}
	return out
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	out := *e
	out.Product = cloneMap(e.Product)
	if e.ExcludeOptimizers != nil {
		out.ExcludeOptimizers = append([]string(nil), e.ExcludeOptimizers...)
	}
	return &out
}

// cloneValue deep-copies any JSON-compatible value. Scalars are
// returned as-is since they are immutable.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	default:
		return v
	}
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// OfferID returns the product's offerId, or an empty string when unset.
func (e *Entry) OfferID() string {
	if e == nil || e.Product == nil {
		return ""
	}
	id, _ := e.Product["offerId"].(string)
	return id
}

// StringField returns the named product field as a string, or an empty
// string when the field is unset or not a string.
func (e *Entry) StringField(name string) string {
	if e == nil || e.Product == nil {
		return ""
	}
	s, _ := e.Product[name].(string)
	return s
}
