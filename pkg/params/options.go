package params

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Options is an ordered bag of extra request fields forwarded to the upstream
// API without validation. The zero value and a nil *Options are both empty.
type Options struct {
	pairs *orderedmap.OrderedMap[string, interface{}]
}

func NewOptions() *Options {
	return &Options{pairs: orderedmap.New[string, interface{}]()}
}

// Set adds or replaces a field, keeping its first insertion position.
func (o *Options) Set(key string, value interface{}) *Options {
	if o.pairs == nil {
		o.pairs = orderedmap.New[string, interface{}]()
	}
	o.pairs.Set(key, value)
	return o
}

func (o *Options) Get(key string) (interface{}, bool) {
	if o == nil || o.pairs == nil {
		return nil, false
	}
	return o.pairs.Get(key)
}

func (o *Options) Len() int {
	if o == nil || o.pairs == nil {
		return 0
	}
	return o.pairs.Len()
}

// Each visits fields in insertion order.
func (o *Options) Each(fn func(key string, value interface{})) {
	if o == nil || o.pairs == nil {
		return
	}
	for pair := o.pairs.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

func (o *Options) MarshalJSON() ([]byte, error) {
	if o == nil || o.pairs == nil {
		return []byte("{}"), nil
	}
	return o.pairs.MarshalJSON()
}

func (o *Options) UnmarshalJSON(data []byte) error {
	pairs := orderedmap.New[string, interface{}]()
	if err := pairs.UnmarshalJSON(data); err != nil {
		return err
	}
	o.pairs = pairs
	return nil
}

// SplitJSON decodes a JSON object, returning the raw values of the known keys
// and every other key as Options in document order.
func SplitJSON(data []byte, known ...string) (map[string]json.RawMessage, *Options, error) {
	fields := orderedmap.New[string, json.RawMessage]()
	if err := fields.UnmarshalJSON(data); err != nil {
		return nil, nil, fmt.Errorf("invalid JSON object: %w", err)
	}

	isKnown := make(map[string]bool, len(known))
	for _, k := range known {
		isKnown[k] = true
	}

	found := make(map[string]json.RawMessage)
	extra := NewOptions()
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		if isKnown[pair.Key] {
			found[pair.Key] = pair.Value
			continue
		}
		var value interface{}
		if err := json.Unmarshal(pair.Value, &value); err != nil {
			return nil, nil, fmt.Errorf("invalid value for %q: %w", pair.Key, err)
		}
		extra.Set(pair.Key, value)
	}
	return found, extra, nil
}
