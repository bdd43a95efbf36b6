package metric

import (
	"math"
	"sort"
)

// Set is a collection of named values produced by one chart evaluation
type Set struct {
	names  map[string]Name
	values map[string]float64
}

// NewSet returns an empty set
func NewSet() *Set {
	return &Set{names: make(map[string]Name), values: make(map[string]float64)}
}

// Add stores v under n, replacing any earlier value with the same name
func (s *Set) Add(n Name, v float64) {
	key := n.String()
	s.names[key] = n
	s.values[key] = v
}

// Get returns the value stored under the marshalled name key
func (s *Set) Get(key string) (float64, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Len returns the number of values in the set
func (s *Set) Len() int {
	return len(s.values)
}

// Keys returns the marshalled names in sorted order
func (s *Set) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the values keyed by marshalled name.  NaN values, which are not
// representable in YAML or logfmt consumers, are left out.
func (s *Set) Map() map[string]float64 {
	out := make(map[string]float64, len(s.values))
	for k, v := range s.values {
		if math.IsNaN(v) {
			continue
		}
		out[k] = v
	}
	return out
}
