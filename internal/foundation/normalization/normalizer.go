// Package normalization maps loosely written configuration strings onto
// typed enum values.
package normalization

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Normalizer converts strings to a comparable enum type after trimming and
// case folding them.
type Normalizer[T comparable] struct {
	name         string
	values       map[string]T
	defaultValue T
	keys         []string
}

// New creates a normalizer for the enum called name. The keys of values are
// normalized as well, so callers may register them in any case.
func New[T comparable](name string, values map[string]T, defaultValue T) *Normalizer[T] {
	n := &Normalizer[T]{
		name:         name,
		values:       make(map[string]T, len(values)),
		defaultValue: defaultValue,
		keys:         make([]string, 0, len(values)),
	}
	for k, v := range values {
		key := Clean(k)
		n.values[key] = v
		n.keys = append(n.keys, key)
	}
	slices.Sort(n.keys)
	return n
}

// Clean is the normalization applied to every input: surrounding space is
// trimmed and the rest is Unicode case folded.
func Clean(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Normalize returns the enum value for raw, or the default when raw is not
// recognized. An empty string also yields the default.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.values[Clean(raw)]; ok {
		return v
	}
	return n.defaultValue
}

// NormalizeWithValidation returns an error naming the valid options when raw
// is not recognized. Empty input yields the default without error.
func (n *Normalizer[T]) NormalizeWithValidation(raw string) (T, error) {
	cleaned := Clean(raw)
	if cleaned == "" {
		return n.defaultValue, nil
	}
	if v, ok := n.values[cleaned]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %v", n.name, raw, n.keys)
}

// IsValid reports whether raw names a registered value.
func (n *Normalizer[T]) IsValid(raw string) bool {
	_, ok := n.values[Clean(raw)]
	return ok
}

// ValidValues returns the registered keys in sorted order.
func (n *Normalizer[T]) ValidValues() []string {
	return slices.Clone(n.keys)
}
