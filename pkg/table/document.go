package table

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const shapeDocument = "document"

// Document is a JSON object passed through unchanged. Top-level keys keep
// their response order; nested values decode as generic maps and slices.
type Document struct {
	raw    json.RawMessage
	fields *Record
}

// DecodeDocument accepts any JSON object body.
func DecodeDocument(body []byte) (*Document, error) {
	if len(body) == 0 {
		return nil, shapeErrorf(shapeDocument, "empty body")
	}

	fields := orderedmap.New[string, interface{}]()
	if err := fields.UnmarshalJSON(body); err != nil {
		return nil, &ShapeError{Shape: shapeDocument, Reason: "body is not a JSON object", Err: err}
	}

	return &Document{
		raw:    append(json.RawMessage(nil), body...),
		fields: fields,
	}, nil
}

// Raw returns the body exactly as received.
func (d *Document) Raw() json.RawMessage {
	return d.raw
}

func (d *Document) Keys() []string {
	keys := make([]string, 0, d.fields.Len())
	for pair := d.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func (d *Document) Get(key string) (interface{}, bool) {
	return d.fields.Get(key)
}

// Decode unmarshals the document into a typed value.
func (d *Document) Decode(v interface{}) error {
	if err := json.Unmarshal(d.raw, v); err != nil {
		return &ShapeError{Shape: shapeDocument, Reason: "cannot decode into target", Err: err}
	}
	return nil
}

func (d *Document) MarshalJSON() ([]byte, error) {
	return d.raw, nil
}
