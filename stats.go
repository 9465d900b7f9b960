package textprep

import (
	"sort"
)

const (
	// DefaultSparseAlpha is the document frequency ratio at or below which a
	// term counts as sparse.
	DefaultSparseAlpha = 0.05
	// DefaultFrequentAlpha is the ratio at or above which a term counts as
	// frequent.
	DefaultFrequentAlpha = 0.95
)

// DocumentFrequencyRatio returns the fraction of documents that contain
// term. It reads the inverse index and fails with ErrStaleIndex when the
// corpus changed since the last Update. An empty corpus or an unknown term
// yields 0.
func (c *Corpus) DocumentFrequencyRatio(term string) (float64, error) {
	if !c.fresh {
		return 0, ErrStaleIndex
	}
	return c.ratio(term), nil
}

func (c *Corpus) ratio(term string) float64 {
	if len(c.docs) == 0 {
		return 0
	}
	return float64(c.postings(term).GetCardinality()) / float64(len(c.docs))
}

// SparseTerms rebuilds the indexes and returns, in ascending order, every
// term whose document frequency ratio is at most alpha.
func (c *Corpus) SparseTerms(alpha float64) ([]string, error) {
	return c.termsWhere(func(r float64) bool { return r <= alpha })
}

// FrequentTerms rebuilds the indexes and returns, in ascending order, every
// term whose document frequency ratio is at least alpha.
func (c *Corpus) FrequentTerms(alpha float64) ([]string, error) {
	return c.termsWhere(func(r float64) bool { return r >= alpha })
}

func (c *Corpus) termsWhere(keep func(float64) bool) ([]string, error) {
	if err := c.Update(); err != nil {
		return nil, err
	}
	terms := []string{}
	if len(c.docs) == 0 {
		return terms, nil
	}
	for term := range c.lexicon {
		if keep(c.ratio(term)) {
			terms = append(terms, term)
		}
	}
	sort.Strings(terms)
	return terms, nil
}

// RemoveSparseTerms strips every sparse term, as whole words, from every
// document.
func RemoveSparseTerms(c *Corpus, alpha float64) error {
	terms, err := c.SparseTerms(alpha)
	if err != nil {
		return err
	}
	return c.RemoveWords(terms...)
}

// RemoveFrequentTerms strips every frequent term, as whole words, from every
// document.
func RemoveFrequentTerms(c *Corpus, alpha float64) error {
	terms, err := c.FrequentTerms(alpha)
	if err != nil {
		return err
	}
	return c.RemoveWords(terms...)
}
