package textprep

import (
	"fmt"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════════
// PREPARATION FLAGS
// ═══════════════════════════════════════════════════════════════════════════════
// Every transformation the pipeline knows about owns one bit. Callers OR the
// bits together and hand a single value to Prepare:
//
//	flags := StripCase | StripPunctuation | StripStopwords | StripWhitespace
//
// Some names are unions of primitive bits (StripArticles covers both article
// kinds). A union behaves exactly like passing its parts together.
//
// The bit positions are stable: they are persisted in configuration files and
// passed around as plain integers, so never renumber an existing flag.
// ═══════════════════════════════════════════════════════════════════════════════

// Flags is a bitmask of requested transformations.
type Flags uint32

const (
	StripCorruptUTF8        Flags = 1 << 0
	StripCase               Flags = 1 << 1
	StemWords               Flags = 1 << 2
	TagPartOfSpeech         Flags = 1 << 3
	StripWhitespace         Flags = 1 << 5
	StripPunctuation        Flags = 1 << 6
	StripNumbers            Flags = 1 << 7
	StripNonLetters         Flags = 1 << 8
	StripIndefiniteArticles Flags = 1 << 9
	StripDefiniteArticles   Flags = 1 << 10
	StripPrepositions       Flags = 1 << 13
	StripPronouns           Flags = 1 << 14
	StripStopwords          Flags = 1 << 16
	StripSparseTerms        Flags = 1 << 17
	StripFrequentTerms      Flags = 1 << 18
	StripHTMLTags           Flags = 1 << 20

	StripArticles = StripIndefiniteArticles | StripDefiniteArticles
)

// flagNames lists the primitive flags in bit order. Unions are resolved by
// ParseFlags but never printed.
var flagNames = []struct {
	flag Flags
	name string
}{
	{StripCorruptUTF8, "strip_corrupt_utf8"},
	{StripCase, "strip_case"},
	{StemWords, "stem_words"},
	{TagPartOfSpeech, "tag_part_of_speech"},
	{StripWhitespace, "strip_whitespace"},
	{StripPunctuation, "strip_punctuation"},
	{StripNumbers, "strip_numbers"},
	{StripNonLetters, "strip_non_letters"},
	{StripIndefiniteArticles, "strip_indefinite_articles"},
	{StripDefiniteArticles, "strip_definite_articles"},
	{StripPrepositions, "strip_prepositions"},
	{StripPronouns, "strip_pronouns"},
	{StripStopwords, "strip_stopwords"},
	{StripSparseTerms, "strip_sparse_terms"},
	{StripFrequentTerms, "strip_frequent_terms"},
	{StripHTMLTags, "strip_html_tags"},
}

var unionNames = map[string]Flags{
	"strip_articles": StripArticles,
}

// Has reports whether every bit of other is set in f.
func (f Flags) Has(other Flags) bool {
	return other != 0 && f&other == other
}

// Any reports whether at least one bit of other is set in f.
func (f Flags) Any(other Flags) bool {
	return f&other != 0
}

// String renders the set bits as snake_case names joined by "|".
// Unknown bits are appended in hex.
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	rest := f
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
			rest &^= fn.flag
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// FlagNames returns every accepted flag name, primitives in bit order
// followed by the unions.
func FlagNames() []string {
	names := make([]string, 0, len(flagNames)+len(unionNames))
	for _, fn := range flagNames {
		names = append(names, fn.name)
	}
	names = append(names, "strip_articles")
	return names
}

// LookupFlag returns the flag registered under name.
func LookupFlag(name string) (Flags, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if f, ok := unionNames[name]; ok {
		return f, true
	}
	for _, fn := range flagNames {
		if fn.name == name {
			return fn.flag, true
		}
	}
	return 0, false
}

// ParseFlags ORs together the named flags. Names are case-insensitive and
// may also be given comma separated in a single element.
func ParseFlags(names []string) (Flags, error) {
	var f Flags
	for _, entry := range names {
		for _, name := range strings.Split(entry, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			bit, ok := LookupFlag(name)
			if !ok {
				return 0, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
			}
			f |= bit
		}
	}
	return f, nil
}
