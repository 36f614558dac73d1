package params

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"naver-go/pkg/logger"
)

// MissingFieldError reports a required request field that was left empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %q is missing", e.Field)
}

// InvalidFieldError reports a request field whose value was rejected locally.
type InvalidFieldError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid value %v for field %q: %v", e.Value, e.Field, e.Err)
}

func (e *InvalidFieldError) Unwrap() error {
	return e.Err
}

// Payload is the ordered set of fields sent upstream: required fields first,
// then optional fields, then extras.
type Payload struct {
	fields    *orderedmap.OrderedMap[string, interface{}]
	required  map[string]bool
	defaulted map[string]bool
	log       *logger.Logger
}

func NewPayload() *Payload {
	return &Payload{
		fields:    orderedmap.New[string, interface{}](),
		required:  make(map[string]bool),
		defaulted: make(map[string]bool),
		log:       logger.Component("params"),
	}
}

// Require sets a field that must be present and non-empty.
func (p *Payload) Require(key string, value interface{}) *Payload {
	p.required[key] = true
	p.fields.Set(key, value)
	return p
}

// Default sets value, or fallback when value is empty. An extra may replace
// the field but never remove it.
func (p *Payload) Default(key string, value, fallback interface{}) *Payload {
	if isEmpty(value) {
		value = fallback
	}
	p.defaulted[key] = true
	p.fields.Set(key, value)
	return p
}

// Optional sets a field only when value is non-empty.
func (p *Payload) Optional(key string, value interface{}) *Payload {
	if isEmpty(value) {
		return p
	}
	p.fields.Set(key, value)
	return p
}

// Merge applies extras last. Extras override optional and defaulted fields
// and a nil extra removes an optional one; required fields are never
// replaced and defaulted fields are never removed.
func (p *Payload) Merge(extra *Options) *Payload {
	extra.Each(func(key string, value interface{}) {
		if p.required[key] {
			p.log.WithField("field", key).Warn("Ignoring extra option that targets a required field")
			return
		}
		if value == nil {
			if p.defaulted[key] {
				p.log.WithField("field", key).Warn("Ignoring nil extra option for a defaulted field")
				return
			}
			p.fields.Delete(key)
			return
		}
		p.fields.Set(key, value)
	})
	return p
}

// Validate returns a *MissingFieldError for the first empty required field.
func (p *Payload) Validate() error {
	for pair := p.fields.Oldest(); pair != nil; pair = pair.Next() {
		if p.required[pair.Key] && isEmpty(pair.Value) {
			return &MissingFieldError{Field: pair.Key}
		}
	}
	return nil
}

func (p *Payload) Get(key string) (interface{}, bool) {
	return p.fields.Get(key)
}

func (p *Payload) Keys() []string {
	keys := make([]string, 0, p.fields.Len())
	for pair := p.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func (p *Payload) MarshalJSON() ([]byte, error) {
	return p.fields.MarshalJSON()
}

// EachQuery visits fields as query-string pairs. Slices are comma-joined.
func (p *Payload) EachQuery(fn func(key, value string)) {
	for pair := p.fields.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, FormatValue(pair.Value))
	}
}

// FormatValue renders a field value the way Naver query strings expect it.
func FormatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case []string:
		return strings.Join(v, ",")
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = FormatValue(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(value)
}

func isEmpty(value interface{}) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return rv.IsZero()
}
