// Package headers implements the case-insensitive, multi-valued header store shared by the mock
// request and response.
package headers

import (
	"iter"
	"maps"
	"net/http"
	"slices"
	"strings"
)

const (
	referer  = "referer"
	referrer = "referrer"
)

func normalize(name string) string {
	return strings.ToLower(name)
}

// Headers maps lower-cased field names to their values. The zero value is an empty store.
type Headers struct {
	values map[string][]string
}

func New() *Headers {
	return &Headers{values: make(map[string][]string)}
}

func FromMap(m map[string]string) *Headers {
	headers := New()
	for name, value := range m {
		headers.Set(name, value)
	}
	return headers
}

func FromHTTPHeader(header http.Header) *Headers {
	headers := New()
	for name, values := range header {
		headers.Set(name, values...)
	}
	return headers
}

// key returns the key name is stored under. Referer and referrer share one entry, kept under the
// spelling that was stored first.
func (headers *Headers) key(name string) string {
	key := normalize(name)
	if headers == nil || headers.values == nil {
		return key
	}
	if _, ok := headers.values[key]; ok {
		return key
	}

	var alias string
	switch key {
	case referer:
		alias = referrer
	case referrer:
		alias = referer
	default:
		return key
	}

	if _, ok := headers.values[alias]; ok {
		return alias
	}
	return key
}

func (headers *Headers) lookup(name string) ([]string, bool) {
	if headers == nil || headers.values == nil {
		return nil, false
	}

	values, ok := headers.values[headers.key(name)]
	return values, ok
}

// Get returns the value of name, with multiple values joined by ", ". An absent field yields "".
func (headers *Headers) Get(name string) string {
	values, _ := headers.lookup(name)
	return strings.Join(values, ", ")
}

func (headers *Headers) Lookup(name string) ([]string, bool) {
	values, ok := headers.lookup(name)
	if !ok {
		return nil, false
	}
	return slices.Clone(values), true
}

// GetAll returns the values of name; it is empty when the field is absent.
func (headers *Headers) GetAll(name string) []string {
	values, _ := headers.Lookup(name)
	if values == nil {
		return []string{}
	}
	return values
}

func (headers *Headers) Has(name string) bool {
	_, ok := headers.lookup(name)
	return ok
}

// Set replaces the values of name. Without values the field holds a single empty value.
func (headers *Headers) Set(name string, values ...string) {
	if headers.values == nil {
		headers.values = make(map[string][]string)
	}
	if len(values) == 0 {
		values = []string{""}
	}
	headers.values[headers.key(name)] = slices.Clone(values)
}

func (headers *Headers) Append(name string, values ...string) {
	if len(values) == 0 {
		return
	}

	existing, ok := headers.lookup(name)
	if !ok {
		headers.Set(name, values...)
		return
	}

	headers.values[headers.key(name)] = append(slices.Clone(existing), values...)
}

func (headers *Headers) Delete(name string) {
	if headers == nil || headers.values == nil {
		return
	}
	delete(headers.values, headers.key(name))
}

func (headers *Headers) Len() int {
	if headers == nil {
		return 0
	}
	return len(headers.values)
}

// Keys yields the lower-cased field names in sorted order.
func (headers *Headers) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		if headers == nil {
			return
		}
		for _, key := range slices.Sorted(maps.Keys(headers.values)) {
			if !yield(key) {
				return
			}
		}
	}
}

func (headers *Headers) Values() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for key := range headers.Keys() {
			if !yield(slices.Clone(headers.values[key])) {
				return
			}
		}
	}
}

func (headers *Headers) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for key := range headers.Keys() {
			if !yield(key, slices.Clone(headers.values[key])) {
				return
			}
		}
	}
}

func (headers *Headers) Clone() *Headers {
	clone := New()
	for key, values := range headers.All() {
		clone.values[key] = values
	}
	return clone
}

// Map returns a shallow copy keyed by lower-cased field name.
func (headers *Headers) Map() map[string][]string {
	m := make(map[string][]string, headers.Len())
	for key, values := range headers.All() {
		m[key] = values
	}
	return m
}

// HTTPHeader returns a copy with canonicalized field names.
func (headers *Headers) HTTPHeader() http.Header {
	header := make(http.Header, headers.Len())
	for key, values := range headers.All() {
		header[http.CanonicalHeaderKey(key)] = values
	}
	return header
}
