package domain

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Mapping is a key/value document whose keys keep the order they were read in.
// Values are opaque; only key presence is ever compared.
type Mapping struct {
	pairs *orderedmap.OrderedMap[string, string]
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{pairs: orderedmap.New[string, string]()}
}

// MappingOf builds a mapping from alternating key, value arguments.
// Handy for assembling small documents inline.
func MappingOf(kv ...string) *Mapping {
	m := NewMapping()
	for i := 0; i+1 < len(kv); i += 2 {
		m.Set(kv[i], kv[i+1])
	}
	return m
}

// Set stores value under key. A repeated key keeps its first position and
// reports false.
func (m *Mapping) Set(key, value string) bool {
	_, present := m.pairs.Set(key, value)
	return !present
}

func (m *Mapping) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.pairs.Get(key)
	return ok
}

func (m *Mapping) Get(key string) (string, bool) {
	return m.pairs.Get(key)
}

func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return m.pairs.Len()
}

// Keys returns the keys in document order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, m.pairs.Len())
	for pair := m.pairs.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}
