// Package query compiles free-text search input into a matcher for
// device searchable text. Terms combine with AND semantics, match
// case-insensitively at any position, and support * and ? globs plus
// single- or double-quoted terms with embedded whitespace.
package query

import (
	"regexp"
	"strings"
)

// Matcher tests candidate strings against a compiled query.
// A Matcher is immutable once built.
type Matcher struct {
	terms []*regexp.Regexp
}

// Compile turns raw search input into a Matcher. Compilation never
// fails: malformed input degrades to a best-effort matcher, and empty
// input compiles to a matcher that accepts everything.
func Compile(raw string) *Matcher {
	m := &Matcher{}
	for _, term := range tokenize(raw) {
		pattern := globToRegexp(term)
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			// Escaping makes this unreachable, but a term must
			// never take the whole query down.
			continue
		}
		m.terms = append(m.terms, re)
	}
	return m
}

// Test reports whether every term of the query matches somewhere in
// the candidate, in any order. An empty query matches everything.
func (m *Matcher) Test(candidate string) bool {
	for _, re := range m.terms {
		if !re.MatchString(candidate) {
			return false
		}
	}
	return true
}

// Empty reports whether the query has no terms.
func (m *Matcher) Empty() bool {
	return len(m.terms) == 0
}

// tokenize splits raw input into terms. A term is a maximal run of
// non-space, non-quote characters, or a '...'/"..." quoted run with
// the quotes stripped. An unterminated quote ends the term at end of
// input rather than raising an error.
func tokenize(raw string) []string {
	var terms []string
	var current strings.Builder
	var quote rune

	flush := func() {
		if current.Len() > 0 {
			terms = append(terms, current.String())
			current.Reset()
		}
	}

	for _, r := range raw {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				flush()
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			flush()
			quote = r
		case r == ' ' || r == '\t' || r == '\n':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return terms
}

// globToRegexp escapes regexp metacharacters in a term, then maps the
// glob characters: * becomes "any run of characters" and ? becomes
// "any single character".
func globToRegexp(term string) string {
	var b strings.Builder
	for _, r := range term {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '.', '+', '^', '$', '{', '}', '(', ')', '|', '[', ']', '\\':
			b.WriteRune('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
