package filter

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mlioz/findr/pkg/filesystem"
)

var everyType = []filesystem.EntryType{
	filesystem.Directory,
	filesystem.File,
	filesystem.SymbolicLink,
	filesystem.Unknown,
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

func TestMatchName_EmptyMatchesEverything(t *testing.T) {
	f := NewFilterSet(nil, []filesystem.EntryType{filesystem.File})

	for _, name := range []string{"", ".", "a.txt", "sub", "weird name\twith tab"} {
		assert.True(t, f.MatchName(name), "name %q", name)
	}
}

func TestMatchName(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		entry    string
		want     bool
	}{
		{name: "suffix match", patterns: []string{`\.log$`}, entry: "b.log", want: true},
		{name: "suffix miss", patterns: []string{`\.log$`}, entry: "b.log.gz", want: false},
		{name: "unanchored substring", patterns: []string{"ub"}, entry: "sub", want: true},
		{name: "any pattern suffices", patterns: []string{`\.txt$`, `\.log$`}, entry: "b.log", want: true},
		{name: "no pattern matches", patterns: []string{`\.txt$`, `\.md$`}, entry: "b.log", want: false},
		{name: "case sensitive", patterns: []string{"^A"}, entry: "a.txt", want: false},
		{name: "inline case folding", patterns: []string{"(?i)^A"}, entry: "a.txt", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilterSet(compile(tt.patterns...), nil)
			assert.Equal(t, tt.want, f.MatchName(tt.entry))
		})
	}
}

func TestMatchName_BaseNameOnly(t *testing.T) {
	f := NewFilterSet(compile("^sub"), nil)

	entry := filesystem.Entry{Path: "sub/b.log", Name: "b.log", Type: filesystem.File}
	assert.False(t, f.Match(entry), "pattern must not see parent directories")
}

func TestMatchType_EmptyMatchesEverything(t *testing.T) {
	f := NewFilterSet(compile("x"), nil)

	for _, typ := range everyType {
		assert.True(t, f.MatchType(typ), "type %v", typ)
	}
}

func TestMatchType_SingleType(t *testing.T) {
	for _, configured := range []filesystem.EntryType{filesystem.Directory, filesystem.File, filesystem.SymbolicLink} {
		f := NewFilterSet(nil, []filesystem.EntryType{configured})
		for _, typ := range everyType {
			assert.Equal(t, typ == configured, f.MatchType(typ), "configured %v, entry %v", configured, typ)
		}
	}
}

func TestMatchType_TwoTypes(t *testing.T) {
	f := NewFilterSet(nil, []filesystem.EntryType{filesystem.File, filesystem.SymbolicLink})

	assert.True(t, f.MatchType(filesystem.File))
	assert.True(t, f.MatchType(filesystem.SymbolicLink))
	assert.False(t, f.MatchType(filesystem.Directory))
	assert.False(t, f.MatchType(filesystem.Unknown))
}

func TestMatchType_AllThreeEqualsNone(t *testing.T) {
	all := NewFilterSet(nil, []filesystem.EntryType{
		filesystem.Directory, filesystem.File, filesystem.SymbolicLink,
	})
	none := MatchAll()

	for _, typ := range everyType {
		assert.Equal(t, none.MatchType(typ), all.MatchType(typ), "type %v", typ)
	}
}

func TestMatchType_DuplicatesCollapse(t *testing.T) {
	f := NewFilterSet(nil, []filesystem.EntryType{
		filesystem.File, filesystem.File, filesystem.Directory,
	})

	assert.False(t, f.MatchType(filesystem.SymbolicLink))
	assert.True(t, f.MatchType(filesystem.File))
}

func TestMatch_CombinesWithAnd(t *testing.T) {
	f := NewFilterSet(compile(`\.log$`), []filesystem.EntryType{filesystem.File})

	tests := []struct {
		entry filesystem.Entry
		want  bool
	}{
		{entry: filesystem.Entry{Name: "b.log", Type: filesystem.File}, want: true},
		{entry: filesystem.Entry{Name: "b.log", Type: filesystem.Directory}, want: false},
		{entry: filesystem.Entry{Name: "a.txt", Type: filesystem.File}, want: false},
		{entry: filesystem.Entry{Name: "sub", Type: filesystem.Directory}, want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Match(tt.entry), "entry %+v", tt.entry)
	}
}

func TestNewFilterSet_CopiesInput(t *testing.T) {
	patterns := compile(`\.log$`)
	f := NewFilterSet(patterns, nil)

	patterns[0] = regexp.MustCompile(`\.txt$`)

	assert.Equal(t, []string{`\.log$`}, f.Patterns())
	assert.True(t, f.MatchName("b.log"))
}
