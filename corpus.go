// Package textprep normalizes text before analysis: it folds case, scrubs
// corrupt characters, strips markup, removes punctuation, numbers and word
// lists, squashes whitespace and stems, over single documents or a corpus
// whose term statistics drive vocabulary pruning.
//
// ═══════════════════════════════════════════════════════════════════════════════
// CORPUS, LEXICON AND INVERSE INDEX
// ═══════════════════════════════════════════════════════════════════════════════
// A corpus is an ordered list of documents plus two derived structures:
//
//	Doc 0: "the quick brown fox"
//	Doc 1: "the lazy dog"
//	Doc 2: "quick brown dogs"
//
//	Lexicon (term → total count)     Inverse index (term → doc ids)
//	"the"   → 2                      "the"   → {0, 1}
//	"quick" → 2                      "quick" → {0, 2}
//	"fox"   → 1                      "fox"   → {0}
//	...                              ...
//
// Document ids are positions in the corpus. The inverse index keeps them in
// Roaring Bitmaps, which are sorted and duplicate free by construction and
// make "documents containing X and Y" a single bitmap AND.
//
// Both structures are rebuilt from scratch on request; nothing is updated
// incrementally. Adding or mutating documents through the corpus marks them
// stale, and statistics that read them refuse to answer until Update runs.
// ═══════════════════════════════════════════════════════════════════════════════
package textprep

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// Corpus is an ordered collection of documents with a lexicon and inverse
// index derived from them.
type Corpus struct {
	docs []Document

	lexicon map[string]int
	inverse map[string]*roaring.Bitmap
	fresh   bool

	logger *slog.Logger
}

// NewCorpus returns a corpus holding docs in order.
func NewCorpus(docs ...Document) *Corpus {
	return &Corpus{
		docs:    append([]Document(nil), docs...),
		lexicon: make(map[string]int),
		inverse: make(map[string]*roaring.Bitmap),
		logger:  slog.Default(),
	}
}

// SetLogger sets the logger index rebuilds report to. A nil logger restores
// slog.Default.
func (c *Corpus) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	c.logger = logger
}

// Add appends a document and marks the derived state stale.
func (c *Corpus) Add(d Document) {
	c.docs = append(c.docs, d)
	c.fresh = false
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	return len(c.docs)
}

// Document returns the document with id i.
func (c *Corpus) Document(i int) Document {
	return c.docs[i]
}

// Documents returns the documents in order. The slice is a copy; the
// documents are shared, so call MarkStale after mutating one directly.
func (c *Corpus) Documents() []Document {
	return append([]Document(nil), c.docs...)
}

// MarkStale records that documents changed behind the corpus' back.
func (c *Corpus) MarkStale() {
	c.fresh = false
}

// Fresh reports whether the lexicon and inverse index reflect the current
// documents.
func (c *Corpus) Fresh() bool {
	return c.fresh
}

// UpdateLexicon recounts every term across all documents.
func (c *Corpus) UpdateLexicon() error {
	lexicon := make(map[string]int)
	for i, d := range c.docs {
		terms, err := d.Terms()
		if err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		for term, n := range terms {
			if term != "" {
				lexicon[term] += n
			}
		}
	}
	c.lexicon = lexicon
	return nil
}

// UpdateInverseIndex records, for each term, the ids of the documents that
// contain it.
func (c *Corpus) UpdateInverseIndex() error {
	inverse := make(map[string]*roaring.Bitmap)
	for i, d := range c.docs {
		terms, err := d.Terms()
		if err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		for term, n := range terms {
			if term == "" || n <= 0 {
				continue
			}
			if inverse[term] == nil {
				inverse[term] = roaring.NewBitmap()
			}
			inverse[term].Add(uint32(i))
		}
	}
	c.inverse = inverse
	return nil
}

// Update rebuilds the lexicon and the inverse index and marks them fresh.
func (c *Corpus) Update() error {
	if err := c.UpdateLexicon(); err != nil {
		return err
	}
	if err := c.UpdateInverseIndex(); err != nil {
		return err
	}
	c.fresh = true

	c.logger.Debug("corpus indexes rebuilt",
		slog.Int("documents", len(c.docs)),
		slog.Int("terms", len(c.lexicon)))
	return nil
}

// Lexicon returns a copy of the term counts from the last update.
func (c *Corpus) Lexicon() map[string]int {
	cp := make(map[string]int, len(c.lexicon))
	for term, n := range c.lexicon {
		cp[term] = n
	}
	return cp
}

// LexicalFrequency returns the total count of term from the last update.
func (c *Corpus) LexicalFrequency(term string) int {
	return c.lexicon[term]
}

// Vocabulary returns the lexicon's terms in ascending order.
func (c *Corpus) Vocabulary() []string {
	terms := make([]string, 0, len(c.lexicon))
	for term := range c.lexicon {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// DocumentsContaining returns the sorted ids of documents containing term.
func (c *Corpus) DocumentsContaining(term string) []int {
	return bitmapToIDs(c.postings(term))
}

func (c *Corpus) postings(term string) *roaring.Bitmap {
	if bm, ok := c.inverse[term]; ok {
		return bm
	}
	return roaring.NewBitmap()
}

// each applies fn to every document in order, stopping at the first error.
// The corpus is stale afterwards even when fn failed part way.
func (c *Corpus) each(fn func(Document) error) error {
	c.fresh = false
	for i, d := range c.docs {
		if err := fn(d); err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
	}
	return nil
}

func bitmapToIDs(bm *roaring.Bitmap) []int {
	ids := make([]int, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		ids = append(ids, int(it.Next()))
	}
	return ids
}
