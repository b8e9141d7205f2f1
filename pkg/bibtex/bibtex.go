// Package bibtex reads, sorts and rewrites BibTeX databases.
//
// The parser understands the subset of BibTeX needed to reorder entries:
// @type{key, field = value, ...} with brace- or quote-delimited values,
// plus @string, @preamble and @comment blocks, which are kept verbatim.
// Text between entries is not preserved.
package bibtex

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// DefaultBannedFields are dropped by reference managers' exports more
// often than anyone wants them in a shared bibliography.
var DefaultBannedFields = []string{"abstract", "file", "keywords", "mendeley-tags"}

// Field is one "name = value" pair. Value holds the raw BibTeX value,
// delimiters included, e.g. {Knuth, Donald} or "1984" or month.
type Field struct {
	Name  string
	Value string
}

// Entry is a bibliography record.
type Entry struct {
	Type   string // Lower-case entry type, e.g. "article"
	Key    string
	Fields []Field
	Line   int // 1-based line of the '@'
}

// Field returns the raw value of a field, matched case-insensitively.
func (e *Entry) Field(name string) (string, bool) {
	for _, f := range e.Fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// Block is a @string, @preamble or @comment block.
type Block struct {
	Type string // Lower-case block type
	Body string // Text between the delimiters
}

// Library is a parsed BibTeX database.
type Library struct {
	Blocks  []Block
	Entries []*Entry
}

// Keys returns the entry keys in their current order.
func (l *Library) Keys() []string {
	keys := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Sort orders entries by key, ignoring case, and reports whether the order
// changed.
func (l *Library) Sort() bool {
	before := l.Keys()
	sort.SliceStable(l.Entries, func(i, j int) bool {
		return strings.ToLower(l.Entries[i].Key) < strings.ToLower(l.Entries[j].Key)
	})
	after := l.Keys()
	for i := range before {
		if before[i] != after[i] {
			return true
		}
	}
	return false
}

// DropFields removes the named fields from every entry and returns how
// many were removed.
func (l *Library) DropFields(names ...string) int {
	banned := make(map[string]bool, len(names))
	for _, n := range names {
		banned[strings.ToLower(strings.TrimSpace(n))] = true
	}
	removed := 0
	for _, e := range l.Entries {
		kept := e.Fields[:0]
		for _, f := range e.Fields {
			if banned[strings.ToLower(f.Name)] {
				removed++
				continue
			}
			kept = append(kept, f)
		}
		e.Fields = kept
	}
	return removed
}

// Format renders the library: blocks first, then entries, separated by
// blank lines, with one field per line.
func (l *Library) Format() string {
	var b strings.Builder
	write := func(s string) {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(s)
	}
	for _, blk := range l.Blocks {
		write(fmt.Sprintf("@%s{%s}\n", blk.Type, blk.Body))
	}
	for _, e := range l.Entries {
		var eb strings.Builder
		fmt.Fprintf(&eb, "@%s{%s", e.Type, e.Key)
		for _, f := range e.Fields {
			fmt.Fprintf(&eb, ",\n  %s = %s", f.Name, f.Value)
		}
		eb.WriteString("\n}\n")
		write(eb.String())
	}
	return b.String()
}

// ParseFile reads and parses a .bib file.
func ParseFile(path string) (*Library, error) {
	data, err := os.ReadFile(path) //nolint:gosec // paths come from the hook invocation
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	lib, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return lib, nil
}
