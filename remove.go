package textprep

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// RemovePatterns deletes every match of p from text. It is meant for values
// that stand alone, such as a single token or term, where deleting a match
// cannot glue two words together.
func RemovePatterns(text string, p *Pattern) string {
	spans := p.matches(text)
	if len(spans) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range spans {
		b.WriteString(text[last:m[0]])
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// RemovePatternsSpaced deletes every match of p from running text without
// fusing the characters on either side of a match into a new token. A single
// space stands in for a removed match whenever the output so far ends in a
// non-space character and the text continues with a non-space character;
// nothing is inserted at the end of the input.
//
//	"the quick fox jumps" - fox  → "the quick  jumps"
//	"a,b" - ","                  → "a b"
func RemovePatternsSpaced(text string, p *Pattern) string {
	spans := p.matches(text)
	if len(spans) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range spans {
		b.WriteString(text[last:m[0]])
		last = m[1]
		if needsSeparator(b.String(), text[last:]) {
			b.WriteByte(' ')
		}
	}
	b.WriteString(text[last:])
	return b.String()
}

func needsSeparator(before, after string) bool {
	if before == "" || after == "" {
		return false
	}
	prev, _ := utf8.DecodeLastRuneInString(before)
	next, _ := utf8.DecodeRuneInString(after)
	return !unicode.IsSpace(prev) && !unicode.IsSpace(next)
}

// isWordBoundary reports whether position i of s separates a word character
// from a non-word character, using Unicode classes rather than ASCII.
func isWordBoundary(s string, i int) bool {
	before := false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		before = isWordRune(r)
	}
	after := false
	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		after = isWordRune(r)
	}
	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
