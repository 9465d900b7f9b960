// ═══════════════════════════════════════════════════════════════════════════════
// TOKENIZATION AND STEMMING
// ═══════════════════════════════════════════════════════════════════════════════
// Two pieces of text analysis sit underneath the preparation pipeline:
//
//  1. Tokenization → split running text into words. The corpus lexicon and
//     inverse index count these, and term/token documents are built from them.
//  2. Stemming     → reduce a word to its root form ("running" → "run").
//
// EXAMPLE:
// --------
// Input:    "The Quick Brown Foxes!"
// Tokenize: ["The", "Quick", "Brown", "Foxes"]
// Stem:     ["the", "quick", "brown", "fox"]
//
// Tokenization keeps case. Lowercasing is its own pipeline stage
// (StripCase), so counting "The" and "the" separately is up to the caller.
// ═══════════════════════════════════════════════════════════════════════════════

package textprep

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
	"golang.org/x/text/language"
)

// Tokenize splits text into words.
//
// Any character that is not a letter, a combining mark or a number is a
// delimiter:
//
//	"hello-world"      → ["hello", "world"]
//	"user@email.com"   → ["user", "email", "com"]
//	"price: $9.99"     → ["price", "9", "99"]
//	"café"             → ["café"]
func Tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsMark(r) && !unicode.IsNumber(r)
	})
}

// Stemmer reduces words to their stems. Implementations report an error for
// languages they cannot handle.
type Stemmer interface {
	Stem(lang language.Tag, word string) (string, error)
}

// snowballLanguages maps base languages to the stemmer names understood by
// the snowball package.
var snowballLanguages = map[language.Base]string{
	language.MustParseBase("en"): "english",
	language.MustParseBase("es"): "spanish",
	language.MustParseBase("fr"): "french",
	language.MustParseBase("ru"): "russian",
	language.MustParseBase("sv"): "swedish",
	language.MustParseBase("no"): "norwegian",
	language.MustParseBase("hu"): "hungarian",
}

// SnowballStemmer stems with the Snowball (Porter2 family) algorithms.
//
// Stop words are stemmed too: removing them is the job of StripStopwords,
// and a stemmer that silently skipped them would make the two stages
// interfere.
type SnowballStemmer struct{}

func (SnowballStemmer) Stem(lang language.Tag, word string) (string, error) {
	b, ok := base(lang)
	name, known := snowballLanguages[b]
	if !ok || !known {
		return "", fmt.Errorf("%w: no stemmer for %s", ErrUnknownLanguage, lang)
	}
	if word == "" {
		return "", nil
	}
	return snowball.Stem(word, name, true)
}

// stemText tokenizes text, stems each token and joins the stems with single
// spaces.
func stemText(s Stemmer, lang language.Tag, text string) (string, error) {
	tokens := Tokenize(text)
	for i, tok := range tokens {
		stem, err := s.Stem(lang, tok)
		if err != nil {
			return "", err
		}
		tokens[i] = stem
	}
	return strings.Join(tokens, " "), nil
}
