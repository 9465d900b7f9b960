package textprep

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// ═══════════════════════════════════════════════════════════════════════════════
// PATTERN COMPOSITION
// ═══════════════════════════════════════════════════════════════════════════════
// All regex based removals of one Prepare call run as a single pass. Each
// enabled rule contributes a fragment, and the fragments are joined by
// alternation:
//
//	StripPunctuation  → [!"#…]+
//	StripNumbers      → \d+
//	StripStopwords    → (?P<words>through|about|the|…)
//
//	combined          → ([!"#…]+)|((?P<words>…))|(\d+)
//
// Word lists become one alternation. RE2's \b only knows ASCII word
// characters, so the alternation is captured in the "words" group and the
// remover rejects any of its matches that do not sit on Unicode word
// boundaries.
// ═══════════════════════════════════════════════════════════════════════════════

const (
	nonLetterFragment   = `[^\p{L}\p{M}\s]`
	punctuationFragment = `[!"#$%&'()*+,\-./:;<=>?@\[\\\]^_` + "`" + `{|}~“”‘’«»–—…]+`
	numberFragment      = `\d+`

	wordsGroup = "words"
)

// Fragment is one regex component contributed by a single rule.
type Fragment struct {
	Source string
	// Words marks the word-list alternation, whose matches must sit on word
	// boundaries.
	Words bool
}

// FragmentSet is a de-duplicated collection of fragments.
type FragmentSet map[Fragment]struct{}

func (s FragmentSet) add(f Fragment) {
	s[f] = struct{}{}
}

// Sorted returns the fragments ordered by source so the combined pattern is
// the same on every run.
func (s FragmentSet) Sorted() []Fragment {
	out := make([]Fragment, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return !out[i].Words && out[j].Words
	})
	return out
}

// Pattern is a compiled, combined removal pattern. A nil *Pattern matches
// nothing.
type Pattern struct {
	re        *regexp.Regexp
	wordGroup int
}

// String returns the combined source, or "" for the nil pattern.
func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	return p.re.String()
}

// Regexp exposes the compiled expression.
func (p *Pattern) Regexp() *regexp.Regexp {
	if p == nil {
		return nil
	}
	return p.re
}

// matches returns the non-empty match spans of p in s, dropping word-list
// matches that are glued to neighbouring word characters. After a dropped
// match the search resumes one rune past its start, so a shorter or
// overlapping alternative can still match.
func (p *Pattern) matches(s string) [][2]int {
	if p == nil {
		return nil
	}
	var spans [][2]int
	for pos := 0; pos <= len(s); {
		rejected := -1
		for _, m := range p.re.FindAllStringSubmatchIndex(s[pos:], -1) {
			start, end := pos+m[0], pos+m[1]
			if start == end {
				continue
			}
			if p.wordGroup > 0 && m[2*p.wordGroup] >= 0 &&
				!(isWordBoundary(s, start) && isWordBoundary(s, end)) {
				rejected = start
				break
			}
			spans = append(spans, [2]int{start, end})
		}
		if rejected < 0 {
			break
		}
		_, size := utf8.DecodeRuneInString(s[rejected:])
		pos = rejected + size
	}
	return spans
}

// Composer turns flags, a language and caller supplied extras into a
// Pattern.
type Composer struct {
	Cache *PatternCache
	Words WordLists
}

// NewComposer returns a composer. Nil arguments fall back to the package
// cache and the builtin word lists.
func NewComposer(cache *PatternCache, words WordLists) *Composer {
	if cache == nil {
		cache = defaultCache
	}
	if words == nil {
		words = NewBuiltinWordLists()
	}
	return &Composer{Cache: cache, Words: words}
}

// Build collects the fragments requested by flags.
func (c *Composer) Build(lang language.Tag, flags Flags, extraPatterns, extraWords []string) FragmentSet {
	set := make(FragmentSet)

	if flags.Has(StripNonLetters) {
		set.add(Fragment{Source: nonLetterFragment})
	} else {
		if flags.Has(StripPunctuation) {
			set.add(Fragment{Source: punctuationFragment})
		}
		if flags.Has(StripNumbers) {
			set.add(Fragment{Source: numberFragment})
		}
	}

	words := make(map[string]struct{})
	union := func(list []string) {
		for _, w := range list {
			if w != "" {
				words[w] = struct{}{}
			}
		}
	}

	if flags.Has(StripArticles) {
		union(c.Words.IndefiniteArticles(lang))
		union(c.Words.DefiniteArticles(lang))
	} else {
		if flags.Has(StripIndefiniteArticles) {
			union(c.Words.IndefiniteArticles(lang))
		}
		if flags.Has(StripDefiniteArticles) {
			union(c.Words.DefiniteArticles(lang))
		}
	}
	if flags.Has(StripPrepositions) {
		union(c.Words.Prepositions(lang))
	}
	if flags.Has(StripPronouns) {
		union(c.Words.Pronouns(lang))
	}
	if flags.Has(StripStopwords) {
		union(c.Words.Stopwords(lang))
	}
	union(extraWords)

	if len(words) > 0 {
		set.add(wordFragment(words))
	}
	for _, p := range extraPatterns {
		if p != "" {
			set.add(Fragment{Source: p})
		}
	}
	return set
}

// Combine joins the fragments into one pattern. An empty set yields the nil
// pattern, a single fragment is used verbatim, several are grouped and joined
// by alternation.
func (c *Composer) Combine(set FragmentSet) (*Pattern, error) {
	if len(set) == 0 {
		return nil, nil
	}
	fragments := set.Sorted()

	var source string
	if len(fragments) == 1 {
		source = fragments[0].Source
	} else {
		parts := make([]string, len(fragments))
		for i, f := range fragments {
			parts[i] = "(" + f.Source + ")"
		}
		source = strings.Join(parts, "|")
	}

	re, err := c.Cache.GetOrCompile(source)
	if err != nil {
		return nil, fmt.Errorf("compiling removal pattern: %w", err)
	}

	p := &Pattern{re: re}
	for _, f := range fragments {
		if f.Words {
			p.wordGroup = re.SubexpIndex(wordsGroup)
			break
		}
	}
	return p, nil
}

// Compose is Build followed by Combine.
func (c *Composer) Compose(lang language.Tag, flags Flags, extraPatterns, extraWords []string) (*Pattern, error) {
	return c.Combine(c.Build(lang, flags, extraPatterns, extraWords))
}

// CompileWords builds a pattern matching any of words as whole words.
func (c *Composer) CompileWords(words ...string) (*Pattern, error) {
	return c.Compose(language.Und, 0, nil, words)
}

// wordFragment escapes the words and orders them longest first, so that an
// alternative is never shadowed by one of its own prefixes.
func wordFragment(words map[string]struct{}) Fragment {
	list := make([]string, 0, len(words))
	for w := range words {
		list = append(list, w)
	}
	sort.Slice(list, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(list[i]), utf8.RuneCountInString(list[j])
		if li != lj {
			return li > lj
		}
		return list[i] < list[j]
	})
	for i, w := range list {
		list[i] = regexp.QuoteMeta(w)
	}
	return Fragment{
		Source: "(?P<" + wordsGroup + ">" + strings.Join(list, "|") + ")",
		Words:  true,
	}
}
