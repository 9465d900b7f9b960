package textprep

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ═══════════════════════════════════════════════════════════════════════════════
// PREPARATION PIPELINE
// ═══════════════════════════════════════════════════════════════════════════════
// Prepare runs the stages selected by the flags in a fixed order:
//
//  1. sparse / frequent terms  (corpus only, feeds stage 5)
//  2. scrub corrupt characters StripCorruptUTF8
//  3. fold case                StripCase
//  4. strip HTML tags          StripHTMLTags
//  5. composed pattern         punctuation, numbers, non-letters, word lists,
//     extra patterns and words, in one pass
//  6. squash whitespace        StripWhitespace
//  7. stem                     StemWords
//  8. tag parts of speech      TagPartOfSpeech (always fails)
//
// Stage 1 runs first so the term statistics describe the documents as they
// were handed in. The first failing stage aborts the run; stages that already
// ran stay applied.
// ═══════════════════════════════════════════════════════════════════════════════

// Preparer runs the pipeline. Build one with NewPreparer; the zero value is
// not usable.
type Preparer struct {
	composer      *Composer
	stemmer       Stemmer
	logger        *slog.Logger
	metrics       *Metrics
	extraPatterns []string
	extraWords    []string
	sparseAlpha   float64
	frequentAlpha float64
}

// Option configures a Preparer.
type Option func(*Preparer)

// WithCache makes the preparer compile patterns through cache.
func WithCache(cache *PatternCache) Option {
	return func(p *Preparer) { p.composer.Cache = cache }
}

// WithWordLists replaces the builtin word lists.
func WithWordLists(words WordLists) Option {
	return func(p *Preparer) { p.composer.Words = words }
}

// WithStemmer replaces the Snowball stemmer.
func WithStemmer(s Stemmer) Option {
	return func(p *Preparer) { p.stemmer = s }
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Preparer) { p.logger = logger }
}

// WithMetrics records pipeline and cache metrics in m.
func WithMetrics(m *Metrics) Option {
	return func(p *Preparer) { p.metrics = m }
}

// WithExtraPatterns adds regular expressions removed in stage 5 regardless
// of flags.
func WithExtraPatterns(patterns ...string) Option {
	return func(p *Preparer) { p.extraPatterns = append(p.extraPatterns, patterns...) }
}

// WithExtraWords adds words removed in stage 5 regardless of flags.
func WithExtraWords(words ...string) Option {
	return func(p *Preparer) { p.extraWords = append(p.extraWords, words...) }
}

func WithSparseAlpha(alpha float64) Option {
	return func(p *Preparer) { p.sparseAlpha = alpha }
}

func WithFrequentAlpha(alpha float64) Option {
	return func(p *Preparer) { p.frequentAlpha = alpha }
}

// NewPreparer returns a preparer with its own pattern cache, the builtin
// word lists and the Snowball stemmer, adjusted by opts.
func NewPreparer(opts ...Option) *Preparer {
	p := &Preparer{
		composer:      NewComposer(NewPatternCache(DefaultCacheCapacity), NewBuiltinWordLists()),
		stemmer:       SnowballStemmer{},
		logger:        slog.Default().With("component", "textprep"),
		sparseAlpha:   DefaultSparseAlpha,
		frequentAlpha: DefaultFrequentAlpha,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.metrics != nil {
		p.composer.Cache.Instrument(p.metrics)
	}
	return p
}

// Composer returns the composer the preparer builds patterns with.
func (p *Preparer) Composer() *Composer {
	return p.composer
}

// Prepare runs the pipeline over a single document. Sparse and frequent term
// removal need a corpus and are ignored here.
func (p *Preparer) Prepare(d Document, flags Flags) error {
	start := time.Now()
	if err := p.run(d, flags, nil); err != nil {
		return err
	}
	p.metrics.documentPrepared(d.Kind())
	p.logger.Debug("document prepared",
		slog.String("kind", d.Kind().String()),
		slog.String("flags", flags.String()),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// PrepareCorpus runs the pipeline over every document of c. The corpus is
// left stale; call Update before reading statistics.
func (p *Preparer) PrepareCorpus(c *Corpus, flags Flags) error {
	start := time.Now()
	c.SetLogger(p.logger)

	var pruned []string
	if flags.Has(StripSparseTerms) {
		terms, err := c.SparseTerms(p.sparseAlpha)
		if err != nil {
			return err
		}
		pruned = append(pruned, terms...)
	}
	if flags.Has(StripFrequentTerms) {
		terms, err := c.FrequentTerms(p.frequentAlpha)
		if err != nil {
			return err
		}
		pruned = append(pruned, terms...)
	}

	err := c.each(func(d Document) error {
		if err := p.run(d, flags, pruned); err != nil {
			return err
		}
		p.metrics.documentPrepared(d.Kind())
		return nil
	})
	if err != nil {
		return err
	}
	// Reached with the tagging flag only when the corpus had no documents.
	if flags.Has(TagPartOfSpeech) {
		p.metrics.stageFailed(OpTagPartOfSpeech)
		return c.TagPOS()
	}

	p.logger.Info("corpus prepared",
		slog.Int("documents", c.Len()),
		slog.Int("pruned_terms", len(pruned)),
		slog.String("flags", flags.String()),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// run applies stages 2 to 8 to one document. pruned carries the terms found
// by stage 1.
func (p *Preparer) run(d Document, flags Flags, pruned []string) error {
	lang := d.Language()

	if flags.Has(StripCorruptUTF8) {
		if err := p.stage(d, scrubMutation()); err != nil {
			return err
		}
	}
	if flags.Has(StripCase) {
		if err := p.stage(d, foldCaseMutation(lang)); err != nil {
			return err
		}
	}
	if flags.Has(StripHTMLTags) {
		if err := p.stage(d, stripHTMLMutation()); err != nil {
			return err
		}
	}

	pattern, err := p.pattern(lang, flags, pruned)
	if err != nil {
		p.metrics.stageFailed(OpRemovePattern)
		return err
	}
	if pattern != nil {
		if err := p.stage(d, patternMutation(pattern)); err != nil {
			return err
		}
	}

	if flags.Has(StripWhitespace) {
		if err := p.stage(d, squashMutation()); err != nil {
			return err
		}
	}
	if flags.Has(StemWords) {
		if err := p.stage(d, stemMutation(p.stemmer, lang)); err != nil {
			return err
		}
	}
	if flags.Has(TagPartOfSpeech) {
		p.metrics.stageFailed(OpTagPartOfSpeech)
		return TagPOS(d)
	}
	return nil
}

// pattern composes the stage 5 pattern. Pruned terms were measured on the
// documents as handed in, so they are folded the same way when StripCase has
// already lowered the text.
func (p *Preparer) pattern(lang language.Tag, flags Flags, pruned []string) (*Pattern, error) {
	words := p.extraWords
	if len(pruned) > 0 {
		words = append([]string(nil), p.extraWords...)
		if flags.Has(StripCase) {
			caser := cases.Lower(lang)
			for _, term := range pruned {
				words = append(words, caser.String(term))
			}
		} else {
			words = append(words, pruned...)
		}
	}
	return p.composer.Compose(lang, flags, p.extraPatterns, words)
}

func (p *Preparer) stage(d Document, m mutation) error {
	if err := d.apply(m); err != nil {
		p.metrics.stageFailed(m.op)
		p.logger.Debug("stage failed",
			slog.String("stage", m.op.String()),
			slog.String("kind", d.Kind().String()),
			slog.Any("error", err))
		return err
	}
	return nil
}

var defaultPreparer = NewPreparer(WithCache(defaultCache))

// Prepare runs the pipeline over d with the package defaults.
func Prepare(d Document, flags Flags) error {
	return defaultPreparer.Prepare(d, flags)
}

// PrepareCorpus runs the pipeline over c with the package defaults.
func PrepareCorpus(c *Corpus, flags Flags) error {
	return defaultPreparer.PrepareCorpus(c, flags)
}

// String describes the preparer's configuration for logs.
func (p *Preparer) String() string {
	return fmt.Sprintf("Preparer{cache=%d/%d extra_patterns=%d extra_words=%d sparse=%g frequent=%g}",
		p.composer.Cache.Len(), p.composer.Cache.Capacity(),
		len(p.extraPatterns), len(p.extraWords), p.sparseAlpha, p.frequentAlpha)
}
