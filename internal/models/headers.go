package models

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
)

// Headers is an insertion-ordered header collection.
//
// Keys are case-sensitive. Set on a key that is already present replaces its value
// (last write wins) while the key keeps its original position, so encoding order is the
// order in which keys were first set. A nil *Headers behaves as an empty, read-only collection.
type Headers struct {
	keys   []string
	values map[string]string
}

// NewHeaders builds a collection from a flat list of key/value pairs.
// A trailing key without a value is stored with an empty value.
func NewHeaders(kv ...string) *Headers {
	h := &Headers{values: make(map[string]string, len(kv)/2)}
	for i := 0; i < len(kv); i += 2 {
		v := ""
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		h.Set(kv[i], v)
	}
	return h
}

// Set stores value under key.
func (h *Headers) Set(key, value string) {
	if h.values == nil {
		h.values = make(map[string]string)
	}
	if _, found := h.values[key]; !found {
		h.keys = append(h.keys, key)
	}
	h.values[key] = value
}

// Get returns the value stored under key and whether it was present.
func (h *Headers) Get(key string) (string, bool) {
	if h == nil {
		return "", false
	}
	v, found := h.values[key]
	return v, found
}

// Value returns the value stored under key, or an empty string.
func (h *Headers) Value(key string) string {
	v, _ := h.Get(key)
	return v
}

// Has reports whether key is present.
func (h *Headers) Has(key string) bool {
	_, found := h.Get(key)
	return found
}

// Del removes key.
func (h *Headers) Del(key string) {
	if h == nil {
		return
	}
	if _, found := h.values[key]; !found {
		return
	}
	delete(h.values, key)
	h.keys = slices.DeleteFunc(h.keys, func(k string) bool { return k == key })
}

// Len returns the number of distinct keys.
func (h *Headers) Len() int {
	if h == nil {
		return 0
	}
	return len(h.keys)
}

// Keys returns the keys in insertion order.
func (h *Headers) Keys() []string {
	if h == nil {
		return nil
	}
	return slices.Clone(h.keys)
}

// All iterates over the key/value pairs in insertion order.
func (h *Headers) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if h == nil {
			return
		}
		for _, k := range h.keys {
			if !yield(k, h.values[k]) {
				return
			}
		}
	}
}

// Map returns a plain map copy, losing order.
func (h *Headers) Map() map[string]string {
	m := make(map[string]string, h.Len())
	for k, v := range h.All() {
		m[k] = v
	}
	return m
}

// Clone returns an independent copy.
func (h *Headers) Clone() *Headers {
	c := &Headers{values: make(map[string]string, h.Len())}
	for k, v := range h.All() {
		c.Set(k, v)
	}
	return c
}

// String renders the headers as "key: value" pairs, for debugging.
func (h *Headers) String() string {
	out := make([]string, 0, h.Len())
	for k, v := range h.All() {
		out = append(out, k+": "+v)
	}
	return fmt.Sprint(out)
}

// LogValue groups the headers for structured logging.
func (h *Headers) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, h.Len())
	for k, v := range h.All() {
		attrs = append(attrs, slog.String(k, v))
	}
	return slog.GroupValue(attrs...)
}
