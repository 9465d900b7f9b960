package textprep

import (
	"github.com/RoaringBitmap/roaring"
)

// ═══════════════════════════════════════════════════════════════════════════════
// DOCUMENT SET QUERIES
// ═══════════════════════════════════════════════════════════════════════════════
// The inverse index stores one bitmap of document ids per term, so boolean
// combinations of terms are bitmap operations:
//
//	"fox" → {0, 3}        "dog" → {1, 3}
//
//	DocumentsWithAll("fox", "dog")    → {3}       (AND)
//	DocumentsWithAny("fox", "dog")    → {0, 1, 3} (OR)
//	DocumentsExcluding("fox", "dog")  → {0}       (AND NOT)
//
// All of them read the inverse index as of the last Update.
// ═══════════════════════════════════════════════════════════════════════════════

// DocumentsWithAll returns the ids of documents containing every term.
//
// EXAMPLE:
// --------
//
//	ids := corpus.DocumentsWithAll("machine", "learning")
func (c *Corpus) DocumentsWithAll(terms ...string) []int {
	if len(terms) == 0 {
		return []int{}
	}
	result := c.postings(terms[0]).Clone()
	for _, term := range terms[1:] {
		result.And(c.postings(term))
	}
	return bitmapToIDs(result)
}

// DocumentsWithAny returns the ids of documents containing at least one of
// the terms.
func (c *Corpus) DocumentsWithAny(terms ...string) []int {
	bitmaps := make([]*roaring.Bitmap, 0, len(terms))
	for _, term := range terms {
		bitmaps = append(bitmaps, c.postings(term))
	}
	return bitmapToIDs(roaring.FastOr(bitmaps...))
}

// DocumentsExcluding returns the ids of documents containing include but not
// exclude.
func (c *Corpus) DocumentsExcluding(include, exclude string) []int {
	return bitmapToIDs(roaring.AndNot(c.postings(include), c.postings(exclude)))
}
