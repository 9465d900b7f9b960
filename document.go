package textprep

import (
	"fmt"
	"os"

	"golang.org/x/text/language"
)

// Kind identifies a document representation.
type Kind int

const (
	KindText Kind = iota
	KindTokens
	KindTerms
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindTokens:
		return "tokens"
	case KindTerms:
		return "terms"
	case KindFile:
		return "file"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Op names a document operation. It labels errors, logs and metrics.
type Op int

const (
	OpScrubCorrupt Op = iota + 1
	OpFoldCase
	OpStripHTML
	OpRemovePattern
	OpSquashWhitespace
	OpStem
	OpTagPartOfSpeech
)

func (o Op) String() string {
	switch o {
	case OpScrubCorrupt:
		return "scrub_corrupt"
	case OpFoldCase:
		return "fold_case"
	case OpStripHTML:
		return "strip_html"
	case OpRemovePattern:
		return "remove_pattern"
	case OpSquashWhitespace:
		return "squash_whitespace"
	case OpStem:
		return "stem"
	case OpTagPartOfSpeech:
		return "tag_part_of_speech"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// mutation describes one operation in the two shapes a representation may
// need it in: over a whole running text, or over an independent token or
// term. A nil shape means the operation cannot be expressed that way; when
// optional is set, representations lacking the shape skip it instead of
// failing.
type mutation struct {
	op       Op
	text     func(string) (string, error)
	item     func(string) (string, error)
	optional bool
}

// Document is a unit of text in one of four representations: TextDocument,
// TokenDocument, TermDocument and FileDocument. The set is closed; the
// operations in this package decide per representation whether they apply,
// are skipped or fail with ErrUnsupported.
type Document interface {
	// Language selects word lists, case rules and the stemmer.
	Language() language.Tag
	Kind() Kind
	// Terms returns occurrence counts per term, the input of the corpus
	// lexicon and inverse index.
	Terms() (map[string]int, error)

	apply(m mutation) error
}

// ═══════════════════════════════════════════════════════════════════════════════
// TEXT DOCUMENT
// ═══════════════════════════════════════════════════════════════════════════════

// TextDocument owns a single mutable string.
type TextDocument struct {
	text string
	lang language.Tag
}

func NewTextDocument(text string, lang language.Tag) *TextDocument {
	return &TextDocument{text: text, lang: lang}
}

func (d *TextDocument) Text() string           { return d.text }
func (d *TextDocument) SetText(text string)    { d.text = text }
func (d *TextDocument) Language() language.Tag { return d.lang }
func (d *TextDocument) Kind() Kind             { return KindText }

func (d *TextDocument) Terms() (map[string]int, error) {
	return countTerms(Tokenize(d.text)), nil
}

func (d *TextDocument) apply(m mutation) error {
	if m.text == nil {
		if m.optional {
			return nil
		}
		return unsupported(m.op, KindText)
	}
	out, err := m.text(d.text)
	if err != nil {
		return &OpError{Op: m.op, Kind: KindText, Err: err}
	}
	d.text = out
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════════
// TOKEN DOCUMENT
// ═══════════════════════════════════════════════════════════════════════════════

// TokenDocument owns an ordered token sequence. Operations rewrite each token
// in place; a token emptied by a removal stays as "" so positions are kept.
type TokenDocument struct {
	tokens []string
	lang   language.Tag
}

func NewTokenDocument(tokens []string, lang language.Tag) *TokenDocument {
	return &TokenDocument{tokens: append([]string(nil), tokens...), lang: lang}
}

// NewTokenDocumentFromText splits text with Tokenize.
func NewTokenDocumentFromText(text string, lang language.Tag) *TokenDocument {
	return &TokenDocument{tokens: Tokenize(text), lang: lang}
}

// Tokens returns a copy of the token sequence.
func (d *TokenDocument) Tokens() []string {
	return append([]string(nil), d.tokens...)
}

func (d *TokenDocument) Len() int               { return len(d.tokens) }
func (d *TokenDocument) Language() language.Tag { return d.lang }
func (d *TokenDocument) Kind() Kind             { return KindTokens }

func (d *TokenDocument) Terms() (map[string]int, error) {
	return countTerms(d.tokens), nil
}

func (d *TokenDocument) apply(m mutation) error {
	if m.item == nil {
		if m.optional {
			return nil
		}
		return unsupported(m.op, KindTokens)
	}
	out := make([]string, len(d.tokens))
	for i, tok := range d.tokens {
		v, err := m.item(tok)
		if err != nil {
			return &OpError{Op: m.op, Kind: KindTokens, Err: err}
		}
		out[i] = v
	}
	d.tokens = out
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════════
// TERM DOCUMENT
// ═══════════════════════════════════════════════════════════════════════════════

// TermDocument owns an unordered term → count map. When an operation maps
// two terms to the same key their counts are summed, so the total count of a
// document never changes.
type TermDocument struct {
	terms map[string]int
	lang  language.Tag
}

func NewTermDocument(terms map[string]int, lang language.Tag) *TermDocument {
	cp := make(map[string]int, len(terms))
	for term, n := range terms {
		cp[term] += n
	}
	return &TermDocument{terms: cp, lang: lang}
}

// NewTermDocumentFromText counts the tokens of text.
func NewTermDocumentFromText(text string, lang language.Tag) *TermDocument {
	return &TermDocument{terms: countTerms(Tokenize(text)), lang: lang}
}

// Count returns the occurrences recorded for term.
func (d *TermDocument) Count(term string) int  { return d.terms[term] }
func (d *TermDocument) Len() int               { return len(d.terms) }
func (d *TermDocument) Language() language.Tag { return d.lang }
func (d *TermDocument) Kind() Kind             { return KindTerms }

// Total returns the sum of all counts.
func (d *TermDocument) Total() int {
	total := 0
	for _, n := range d.terms {
		total += n
	}
	return total
}

// Terms returns a copy of the term counts.
func (d *TermDocument) Terms() (map[string]int, error) {
	cp := make(map[string]int, len(d.terms))
	for term, n := range d.terms {
		cp[term] = n
	}
	return cp, nil
}

func (d *TermDocument) apply(m mutation) error {
	if m.item == nil {
		if m.optional {
			return nil
		}
		return unsupported(m.op, KindTerms)
	}
	out := make(map[string]int, len(d.terms))
	for term, n := range d.terms {
		v, err := m.item(term)
		if err != nil {
			return &OpError{Op: m.op, Kind: KindTerms, Err: err}
		}
		out[v] += n
	}
	d.terms = out
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════════
// FILE DOCUMENT
// ═══════════════════════════════════════════════════════════════════════════════

// FileDocument is read-only text stored in a file. It can feed a corpus
// lexicon but refuses every mutation; whitespace squashing is skipped.
type FileDocument struct {
	path string
	lang language.Tag
}

func NewFileDocument(path string, lang language.Tag) *FileDocument {
	return &FileDocument{path: path, lang: lang}
}

func (d *FileDocument) Path() string           { return d.path }
func (d *FileDocument) Language() language.Tag { return d.lang }
func (d *FileDocument) Kind() Kind             { return KindFile }

// Text reads the file.
func (d *FileDocument) Text() (string, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return "", fmt.Errorf("reading document %s: %w", d.path, err)
	}
	return string(data), nil
}

func (d *FileDocument) Terms() (map[string]int, error) {
	text, err := d.Text()
	if err != nil {
		return nil, err
	}
	return countTerms(Tokenize(text)), nil
}

func (d *FileDocument) apply(m mutation) error {
	if m.optional {
		return nil
	}
	return unsupported(m.op, KindFile)
}

func countTerms(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		if tok != "" {
			counts[tok]++
		}
	}
	return counts
}
