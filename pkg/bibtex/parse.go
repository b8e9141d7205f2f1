package bibtex

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateKey is returned when two entries share a key.
var ErrDuplicateKey = errors.New("duplicate entry key")

// SyntaxError reports malformed input at a line.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

type parser struct {
	text string
	pos  int
}

func (p *parser) line(offset int) int {
	return strings.Count(p.text[:offset], "\n") + 1
}

func (p *parser) errorf(offset int, format string, args ...any) error {
	return &SyntaxError{Line: p.line(offset), Msg: fmt.Sprintf(format, args...)}
}

// Parse parses BibTeX source. Keys are unique, compared without case.
func Parse(text string) (*Library, error) {
	p := &parser{text: text}
	lib := &Library{}
	seen := make(map[string]int)

	for {
		at := strings.IndexByte(p.text[p.pos:], '@')
		if at < 0 {
			return lib, nil
		}
		start := p.pos + at
		p.pos = start + 1

		typ := p.ident()
		if typ == "" {
			// An '@' in free text, such as an e-mail address.
			continue
		}
		typ = strings.ToLower(typ)
		p.skipSpace()

		body, err := p.delimited(start, typ)
		if err != nil {
			return nil, err
		}

		switch typ {
		case "string", "preamble", "comment":
			lib.Blocks = append(lib.Blocks, Block{Type: typ, Body: body})
			continue
		}

		entry, err := parseEntry(body)
		if err != nil {
			return nil, p.errorf(start, "@%s: %v", typ, err)
		}
		entry.Type = typ
		entry.Line = p.line(start)

		lower := strings.ToLower(entry.Key)
		if first, dup := seen[lower]; dup {
			return nil, fmt.Errorf("line %d: %w %q (first defined on line %d)", entry.Line, ErrDuplicateKey, entry.Key, first)
		}
		seen[lower] = entry.Line
		lib.Entries = append(lib.Entries, entry)
	}
}

func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.text) {
		c := p.text[p.pos]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			p.pos++
			continue
		}
		break
	}
	return p.text[start:p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.text) && strings.IndexByte(" \t\r\n", p.text[p.pos]) >= 0 {
		p.pos++
	}
}

// delimited consumes {...} or (...) and returns the text in between.
// Braces nest; parentheses only close at brace depth zero.
func (p *parser) delimited(start int, typ string) (string, error) {
	if p.pos >= len(p.text) {
		return "", p.errorf(start, "unterminated @%s", typ)
	}
	open := p.text[p.pos]
	if open != '{' && open != '(' {
		return "", p.errorf(start, "expected { or ( after @%s", typ)
	}
	bodyStart := p.pos + 1
	depth := 0
	for i := bodyStart; i < len(p.text); i++ {
		switch c := p.text[i]; {
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == '}' && open == '{':
			p.pos = i + 1
			return p.text[bodyStart:i], nil
		case c == ')' && open == '(' && depth == 0:
			p.pos = i + 1
			return p.text[bodyStart:i], nil
		}
	}
	return "", p.errorf(start, "unterminated @%s", typ)
}

// parseEntry splits "key, name = value, ..." into an Entry.
func parseEntry(body string) (*Entry, error) {
	parts := splitTopLevel(body)
	key := strings.TrimSpace(parts[0])
	if key == "" {
		return nil, errors.New("missing entry key")
	}
	entry := &Entry{Key: key}
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("entry %s: field %q has no value", key, part)
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			return nil, fmt.Errorf("entry %s: malformed field %q", key, part)
		}
		entry.Fields = append(entry.Fields, Field{Name: name, Value: value})
	}
	return entry, nil
}

// splitTopLevel splits at commas outside braces and quotes.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	quoted := false
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '"':
			if depth == 0 {
				quoted = !quoted
			}
		case ',':
			if depth == 0 && !quoted {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	return append(parts, s[last:])
}
