package textprep

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var (
	scriptBlocks = &Pattern{re: regexp.MustCompile(`(?i)<script\b[^>]*>[\s\S]*?</script\s*>`)}
	styleBlocks  = &Pattern{re: regexp.MustCompile(`(?i)<style\b[^>]*>[\s\S]*?</style\s*>`)}
	markupTags   = &Pattern{re: regexp.MustCompile(`<[^>]*>`)}

	// corruptToSpace turns every ill-formed UTF-8 byte, and any U+FFFD left by
	// an earlier lossy decode, into a space.
	corruptToSpace = runes.Map(func(r rune) rune {
		if r == utf8.RuneError {
			return ' '
		}
		return r
	})
)

func identity(s string) (string, error) { return s, nil }

func pure(fn func(string) string) func(string) (string, error) {
	return func(s string) (string, error) { return fn(s), nil }
}

func scrubMutation() mutation {
	fn := pure(func(s string) string {
		out, _, err := transform.String(corruptToSpace, s)
		if err != nil {
			return s
		}
		return out
	})
	return mutation{op: OpScrubCorrupt, text: fn, item: fn}
}

func foldCaseMutation(lang language.Tag) mutation {
	caser := cases.Lower(lang)
	fn := pure(caser.String)
	return mutation{op: OpFoldCase, text: fn, item: fn}
}

func stripHTMLMutation() mutation {
	return mutation{op: OpStripHTML, text: pure(stripHTML)}
}

func stripHTML(s string) string {
	s = RemovePatternsSpaced(s, scriptBlocks)
	s = RemovePatternsSpaced(s, styleBlocks)
	return RemovePatternsSpaced(s, markupTags)
}

func patternMutation(p *Pattern) mutation {
	if p == nil {
		return mutation{op: OpRemovePattern, text: identity, item: identity, optional: true}
	}
	return mutation{
		op:   OpRemovePattern,
		text: pure(func(s string) string { return RemovePatternsSpaced(s, p) }),
		item: pure(func(s string) string { return RemovePatterns(s, p) }),
	}
}

func squashMutation() mutation {
	return mutation{op: OpSquashWhitespace, text: pure(squashWhitespace), optional: true}
}

func squashWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func stemMutation(s Stemmer, lang language.Tag) mutation {
	return mutation{
		op:   OpStem,
		text: func(text string) (string, error) { return stemText(s, lang, text) },
		item: func(word string) (string, error) { return s.Stem(lang, word) },
	}
}

// ScrubCorrupt replaces invalid UTF-8 sequences with spaces.
func ScrubCorrupt(d Document) error {
	return d.apply(scrubMutation())
}

// FoldCase lowercases d using the case rules of its language.
func FoldCase(d Document) error {
	return d.apply(foldCaseMutation(d.Language()))
}

// StripHTML removes <script> and <style> blocks including their content,
// then any remaining tag markup. Only TextDocument supports it.
func StripHTML(d Document) error {
	return d.apply(stripHTMLMutation())
}

// SquashWhitespace collapses whitespace runs to one space and trims both
// ends. Documents other than TextDocument are left untouched.
func SquashWhitespace(d Document) error {
	return d.apply(squashMutation())
}

// RemovePattern deletes every match of p. A nil pattern is a no-op.
func RemovePattern(d Document, p *Pattern) error {
	if p == nil {
		return nil
	}
	return d.apply(patternMutation(p))
}

// RemovePatternSource compiles source through the package cache and removes
// its matches.
func RemovePatternSource(d Document, source string) error {
	p, err := defaultComposer().Compose(d.Language(), 0, []string{source}, nil)
	if err != nil {
		return err
	}
	return RemovePattern(d, p)
}

// RemoveWords deletes whole-word occurrences of words.
func RemoveWords(d Document, words ...string) error {
	p, err := defaultComposer().CompileWords(words...)
	if err != nil {
		return err
	}
	return RemovePattern(d, p)
}

// Stem replaces words with their stems. Running text is tokenized and the
// stems are joined with single spaces.
func Stem(d Document, s Stemmer) error {
	return d.apply(stemMutation(s, d.Language()))
}

// TagPOS always fails: no tagger is available.
func TagPOS(d Document) error {
	return &OpError{Op: OpTagPartOfSpeech, Kind: d.Kind(), Err: ErrNotImplemented}
}

func defaultComposer() *Composer {
	return NewComposer(defaultCache, builtinWords)
}

var builtinWords = NewBuiltinWordLists()

// ScrubCorrupt scrubs every document.
func (c *Corpus) ScrubCorrupt() error { return c.each(ScrubCorrupt) }

// FoldCase lowercases every document.
func (c *Corpus) FoldCase() error { return c.each(FoldCase) }

// StripHTML strips markup from every document.
func (c *Corpus) StripHTML() error { return c.each(StripHTML) }

// SquashWhitespace squashes whitespace in each document in turn.
func (c *Corpus) SquashWhitespace() error { return c.each(SquashWhitespace) }

// RemovePattern removes matches of p from every document.
func (c *Corpus) RemovePattern(p *Pattern) error {
	if p == nil {
		return nil
	}
	return c.each(func(d Document) error { return RemovePattern(d, p) })
}

// RemoveWords removes whole-word occurrences of words from every document.
func (c *Corpus) RemoveWords(words ...string) error {
	p, err := defaultComposer().CompileWords(words...)
	if err != nil {
		return err
	}
	return c.RemovePattern(p)
}

// Stem stems every document.
func (c *Corpus) Stem(s Stemmer) error {
	return c.each(func(d Document) error { return Stem(d, s) })
}

// TagPOS always fails, even for an empty corpus.
func (c *Corpus) TagPOS() error {
	return fmt.Errorf("%s: %w", OpTagPartOfSpeech, ErrNotImplemented)
}
