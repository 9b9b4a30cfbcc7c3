// Package filter decides whether a walked entry satisfies the configured
// name and type constraints. Everything here is pure: no I/O, no state
// beyond the immutable FilterSet.
package filter

import (
	"regexp"

	"github.com/mlioz/findr/pkg/filesystem"
)

// allTypes is the number of distinct types a user can ask for.
const allTypes = 3

// FilterSet holds the name patterns and entry types applied to every entry.
// An empty pattern list matches every name; an empty type set matches every type.
type FilterSet struct {
	names []*regexp.Regexp
	types map[filesystem.EntryType]struct{}
}

// NewFilterSet builds a FilterSet from compiled patterns and types.
// Duplicate types are collapsed and Unknown is ignored.
func NewFilterSet(names []*regexp.Regexp, types []filesystem.EntryType) *FilterSet {
	f := &FilterSet{
		names: make([]*regexp.Regexp, len(names)),
		types: make(map[filesystem.EntryType]struct{}, len(types)),
	}
	copy(f.names, names)
	for _, t := range types {
		if t == filesystem.Unknown {
			continue
		}
		f.types[t] = struct{}{}
	}
	return f
}

// MatchAll returns a FilterSet that accepts every entry.
func MatchAll() *FilterSet {
	return NewFilterSet(nil, nil)
}

// MatchName reports whether name (a base name, not a full path) matches
// any pattern. Patterns are unanchored.
func (f *FilterSet) MatchName(name string) bool {
	if len(f.names) == 0 {
		return true
	}
	for _, re := range f.names {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// MatchType reports whether t is one of the configured types. Asking for
// all three types is the same as asking for none, so even Unknown nodes
// pass in that case.
func (f *FilterSet) MatchType(t filesystem.EntryType) bool {
	if len(f.types) == 0 || len(f.types) == allTypes {
		return true
	}
	_, ok := f.types[t]
	return ok
}

// Match is MatchName(e.Name) && MatchType(e.Type).
func (f *FilterSet) Match(e filesystem.Entry) bool {
	return f.MatchName(e.Name) && f.MatchType(e.Type)
}

// Patterns returns the source of each name pattern, in order.
func (f *FilterSet) Patterns() []string {
	out := make([]string, len(f.names))
	for i, re := range f.names {
		out[i] = re.String()
	}
	return out
}
