// ABOUTME: Measurement kinds tracked by an exercise type.
// ABOUTME: Kinds serialize as a sorted, comma-joined subset of distance/reps/time/weight.
package models

import (
	"fmt"
	"sort"
	"strings"
)

// Kind is one measurement an exercise type records.
type Kind string

const (
	KindDistance Kind = "distance"
	KindReps     Kind = "reps"
	KindTime     Kind = "time"
	KindWeight   Kind = "weight"
)

// AllKinds lists every valid kind in canonical order.
var AllKinds = []Kind{KindDistance, KindReps, KindTime, KindWeight}

// IsValidKind checks if a string names a known kind.
func IsValidKind(s string) bool {
	for _, k := range AllKinds {
		if string(k) == s {
			return true
		}
	}
	return false
}

// Kinds is a set of measurement kinds kept sorted and free of duplicates.
type Kinds []Kind

// NewKinds builds a normalized Kinds value.
func NewKinds(kinds ...Kind) Kinds {
	seen := make(map[Kind]bool, len(kinds))
	out := make(Kinds, 0, len(kinds))
	for _, k := range kinds {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseKinds parses a comma-joined kinds string such as "reps,weight".
// Order and surrounding whitespace are ignored; unknown names are an error.
func ParseKinds(s string) (Kinds, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("no measurement kinds given")
	}
	var kinds []Kind
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if !IsValidKind(part) {
			return nil, fmt.Errorf("unknown measurement kind: %s", part)
		}
		kinds = append(kinds, Kind(part))
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("no measurement kinds given")
	}
	return NewKinds(kinds...), nil
}

// Has reports whether k is part of the set.
func (ks Kinds) Has(k Kind) bool {
	for _, kind := range ks {
		if kind == k {
			return true
		}
	}
	return false
}

// String returns the canonical comma-joined form.
func (ks Kinds) String() string {
	parts := make([]string, len(ks))
	for i, k := range ks {
		parts[i] = string(k)
	}
	return strings.Join(parts, ",")
}

// MarshalText encodes the kinds in canonical comma-joined form.
func (ks Kinds) MarshalText() ([]byte, error) {
	return []byte(ks.String()), nil
}

// UnmarshalText parses the comma-joined form. Empty input yields no kinds.
func (ks *Kinds) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*ks = nil
		return nil
	}
	parsed, err := ParseKinds(string(text))
	if err != nil {
		return err
	}
	*ks = parsed
	return nil
}
