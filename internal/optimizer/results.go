package optimizer

import (
	"bytes"
	"encoding/json"

	"github.com/feedtools/feed-optimizer/internal/types"
)

// Results is an insertion-ordered map from optimizer parameter to the
// optimizer's run result. External callers assert on the serialization
// order, which is the execution order, so a plain map will not do.
type Results struct {
	keys   []string
	values map[string]types.Result
}

// NewResults creates an empty result map.
func NewResults() *Results {
	return &Results{values: make(map[string]types.Result)}
}

// Set records a result. First insertion fixes the parameter's position;
// setting an existing parameter overwrites its value in place.
func (r *Results) Set(parameter string, result types.Result) {
	if _, exists := r.values[parameter]; !exists {
		r.keys = append(r.keys, parameter)
	}
	r.values[parameter] = result
}

// Get returns the result recorded for a parameter.
func (r *Results) Get(parameter string) (types.Result, bool) {
	result, ok := r.values[parameter]
	return result, ok
}

// Keys returns the parameters in insertion order.
func (r *Results) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len returns the number of recorded results.
func (r *Results) Len() int {
	return len(r.keys)
}

// MarshalJSON serializes the results as a JSON object whose members
// appear in insertion order.
func (r *Results) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores a result map, preserving the object's member
// order as insertion order.
func (r *Results) UnmarshalJSON(data []byte) error {
	r.keys = nil
	r.values = make(map[string]types.Result)

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // consume '{'
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)
		var result types.Result
		if err := dec.Decode(&result); err != nil {
			return err
		}
		r.Set(key, result)
	}
	_, err := dec.Token() // consume '}'
	return err
}
