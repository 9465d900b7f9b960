package textprep

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newTestPreparer(opts ...Option) *Preparer {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return NewPreparer(append([]Option{WithLogger(logger)}, opts...)...)
}

// ═══════════════════════════════════════════════════════════════════════════════
// SINGLE DOCUMENT
// ═══════════════════════════════════════════════════════════════════════════════

func TestPrepare_EndToEnd(t *testing.T) {
	tests := []struct {
		name  string
		input string
		flags Flags
		want  string
	}{
		{
			name:  "stopwords",
			input: "The quick brown fox jumps over the lazy dog",
			flags: StripCase | StripStopwords | StripWhitespace,
			want:  "quick brown fox jumps lazy dog",
		},
		{
			name:  "punctuation and numbers",
			input: "In 2024, the fox (aged 3) ran!",
			flags: StripPunctuation | StripNumbers | StripWhitespace,
			want:  "In the fox aged ran",
		},
		{
			name:  "articles and prepositions",
			input: "A fox ran over an old fence in the rain",
			flags: StripCase | StripArticles | StripPrepositions | StripWhitespace,
			want:  "fox ran old fence rain",
		},
		{
			name:  "non letters win over punctuation",
			input: "R2-D2, meet C-3PO",
			flags: StripNonLetters | StripPunctuation | StripWhitespace,
			want:  "R D meet C PO",
		},
		{
			name:  "stemming last",
			input: "<p>Running DOGS</p>",
			flags: StripHTMLTags | StripCase | StripWhitespace | StemWords,
			want:  "run dog",
		},
		{
			name:  "no flags",
			input: "  Left   ALONE ",
			flags: 0,
			want:  "  Left   ALONE ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewTextDocument(tt.input, language.English)
			require.NoError(t, newTestPreparer().Prepare(d, tt.flags))
			assert.Equal(t, tt.want, d.Text())
		})
	}
}

func TestPrepare_FoxOverExample(t *testing.T) {
	d := NewTextDocument("the quick fox jumps over", language.English)
	p := newTestPreparer(WithExtraWords("fox", "over"))

	require.NoError(t, p.Prepare(d, StripWhitespace))
	assert.Equal(t, "the quick jumps", d.Text())
}

func TestPrepare_HTMLDocument(t *testing.T) {
	html := `<html><head><script type="text/javascript">var secret = "x";</script>` +
		`<style>h1 { color: red }</style></head>` +
		`<body><h1>Title</h1><p>Body text</p></body></html>`
	d := NewTextDocument(html, language.English)

	require.NoError(t, newTestPreparer().Prepare(d, StripHTMLTags|StripWhitespace))

	assert.NotContains(t, d.Text(), "<")
	assert.NotContains(t, d.Text(), ">")
	assert.NotContains(t, d.Text(), "secret")
	assert.NotContains(t, d.Text(), "color")
	assert.Equal(t, "Title Body text", d.Text())
}

func TestPrepare_StageOrder(t *testing.T) {
	// Case folding runs before word removal, so capitalised stopwords go too,
	// and squashing runs after removal, so the gaps they leave are closed.
	d := NewTextDocument("THE Fox AND The Dog", language.English)
	require.NoError(t, newTestPreparer().Prepare(d, StripStopwords|StripCase|StripWhitespace))
	assert.Equal(t, "fox dog", d.Text())

	// Corrupt bytes are scrubbed before punctuation removal and squashing.
	d = NewTextDocument("fox\xff,dog", language.English)
	require.NoError(t, newTestPreparer().Prepare(d, StripCorruptUTF8|StripPunctuation|StripWhitespace))
	assert.Equal(t, "fox dog", d.Text())
}

func TestPrepare_TokensAndTerms(t *testing.T) {
	tokens := NewTokenDocument([]string{"The", "Fox", "2024", "Runs"}, language.English)
	require.NoError(t, newTestPreparer().Prepare(tokens, StripCase|StripNumbers|StripArticles|StripWhitespace))
	assert.Equal(t, []string{"", "fox", "", "runs"}, tokens.Tokens())

	terms := NewTermDocument(map[string]int{"Fox": 1, "fox": 2, "foxes": 3}, language.English)
	require.NoError(t, newTestPreparer().Prepare(terms, StripCase|StemWords))
	assert.Equal(t, 6, terms.Count("fox"))
	assert.Equal(t, 6, terms.Total())
}

func TestPrepare_Errors(t *testing.T) {
	t.Run("part of speech", func(t *testing.T) {
		d := NewTextDocument("The Fox", language.English)
		err := newTestPreparer().Prepare(d, StripCase|TagPartOfSpeech)

		assert.ErrorIs(t, err, ErrNotImplemented)
		assert.Equal(t, "the fox", d.Text(), "stages before the failure stay applied")
	})

	t.Run("html on tokens", func(t *testing.T) {
		d := NewTokenDocument([]string{"A", "<b>"}, language.English)
		err := newTestPreparer().Prepare(d, StripCase|StripHTMLTags|StripWhitespace)

		var opErr *OpError
		require.ErrorAs(t, err, &opErr)
		assert.Equal(t, OpStripHTML, opErr.Op)
		assert.Equal(t, KindTokens, opErr.Kind)
		assert.Equal(t, []string{"a", "<b>"}, d.Tokens())
	})

	t.Run("file document", func(t *testing.T) {
		d := newFileDocument(t, "The fox")
		err := newTestPreparer().Prepare(d, StripCase)
		assert.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("file document squash only", func(t *testing.T) {
		d := newFileDocument(t, "The fox")
		assert.NoError(t, newTestPreparer().Prepare(d, StripWhitespace))
	})

	t.Run("invalid extra pattern", func(t *testing.T) {
		d := NewTextDocument("x", language.English)
		err := newTestPreparer(WithExtraPatterns(`(`)).Prepare(d, 0)
		assert.Error(t, err)
	})

	t.Run("stem unknown language", func(t *testing.T) {
		d := NewTextDocument("running", language.Japanese)
		err := newTestPreparer().Prepare(d, StemWords)
		assert.ErrorIs(t, err, ErrUnknownLanguage)
	})
}

func TestPrepare_SparseFlagsIgnoredForSingleDocument(t *testing.T) {
	d := NewTextDocument("only words", language.English)
	require.NoError(t, newTestPreparer().Prepare(d, StripSparseTerms|StripFrequentTerms))
	assert.Equal(t, "only words", d.Text())
}

// ═══════════════════════════════════════════════════════════════════════════════
// CORPUS
// ═══════════════════════════════════════════════════════════════════════════════

func TestPrepareCorpus_SparseTerms(t *testing.T) {
	c := twentyDocs()
	p := newTestPreparer()

	require.NoError(t, p.PrepareCorpus(c, StripSparseTerms|StripWhitespace))

	assert.Equal(t, "common half", c.Document(0).(*TextDocument).Text())
	for i := 0; i < c.Len(); i++ {
		assert.NotContains(t, c.Document(i).(*TextDocument).Text(), "rare")
	}
	assert.False(t, c.Fresh(), "preparation leaves the corpus stale")
}

func TestPrepareCorpus_FrequentTerms(t *testing.T) {
	c := twentyDocs()
	p := newTestPreparer(WithFrequentAlpha(0.5))

	require.NoError(t, p.PrepareCorpus(c, StripFrequentTerms|StripWhitespace))

	assert.Equal(t, "rare", c.Document(0).(*TextDocument).Text())
	assert.Equal(t, "", c.Document(1).(*TextDocument).Text())
}

func TestPrepareCorpus_TermsMeasuredBeforeMutation(t *testing.T) {
	// "Fox" and "fox" are separate terms in the input, each in half of the
	// documents. Were statistics taken after case folding, "fox" would be in
	// every document and not sparse.
	c := NewCorpus(
		NewTextDocument("Fox a", language.English),
		NewTextDocument("fox b", language.English),
	)
	p := newTestPreparer(WithSparseAlpha(0.5))

	require.NoError(t, p.PrepareCorpus(c, StripSparseTerms|StripCase|StripWhitespace))

	assert.Equal(t, "", c.Document(0).(*TextDocument).Text())
	assert.Equal(t, "", c.Document(1).(*TextDocument).Text())
}

func TestPrepareCorpus_SquashesEveryDocument(t *testing.T) {
	c := NewCorpus(
		NewTextDocument("  a   b  ", language.English),
		NewTextDocument("c \n d", language.English),
		NewTokenDocument([]string{" e "}, language.English),
	)

	require.NoError(t, newTestPreparer().PrepareCorpus(c, StripWhitespace))

	assert.Equal(t, "a b", c.Document(0).(*TextDocument).Text())
	assert.Equal(t, "c d", c.Document(1).(*TextDocument).Text())
	assert.Equal(t, []string{" e "}, c.Document(2).(*TokenDocument).Tokens())
}

func TestPrepareCorpus_FailsFast(t *testing.T) {
	first := NewTextDocument("A", language.English)
	last := NewTextDocument("B", language.English)
	c := NewCorpus(first, NewTokenDocument([]string{"X"}, language.English), last)

	err := newTestPreparer().PrepareCorpus(c, StripCase|StripHTMLTags)

	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Equal(t, "a", first.Text())
	assert.Equal(t, "B", last.Text(), "documents after the failure are untouched")
}

func TestPrepareCorpus_TaggingFailsOnEmptyCorpus(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	err := newTestPreparer(WithMetrics(m)).PrepareCorpus(NewCorpus(), TagPartOfSpeech)

	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StageErrors.WithLabelValues(OpTagPartOfSpeech.String())))
}

func TestPrepareCorpus_SparseTermsFoldedWithCase(t *testing.T) {
	c := NewCorpus()
	for i := 0; i < 20; i++ {
		text := "common"
		if i == 0 {
			text = "common Quick"
		}
		c.Add(NewTextDocument(text, language.English))
	}

	require.NoError(t, newTestPreparer().PrepareCorpus(c, StripSparseTerms|StripCase|StripWhitespace))

	assert.Equal(t, "common", c.Document(0).(*TextDocument).Text())
}

// ═══════════════════════════════════════════════════════════════════════════════
// OBSERVABILITY
// ═══════════════════════════════════════════════════════════════════════════════

func TestPreparer_Metrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	p := newTestPreparer(WithMetrics(m))

	require.NoError(t, p.Prepare(NewTextDocument("a b", language.English), StripNumbers))
	require.NoError(t, p.Prepare(NewTextDocument("c d", language.English), StripNumbers))
	err := p.Prepare(NewTokenDocument([]string{"x"}, language.English), StripHTMLTags)
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DocumentsPrepared.WithLabelValues("text")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.DocumentsPrepared.WithLabelValues("tokens")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StageErrors.WithLabelValues("strip_html")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PatternCacheMisses))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PatternCacheHits))
}

func TestPreparer_LogsCorpusSummary(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := NewPreparer(WithLogger(logger))

	c := NewCorpus(NewTextDocument("a", language.English))
	require.NoError(t, p.PrepareCorpus(c, StripCase))

	out := buf.String()
	assert.Contains(t, out, `"msg":"corpus prepared"`)
	assert.Contains(t, out, `"documents":1`)
	assert.Contains(t, out, `"flags":"strip_case"`)
}

func TestPreparer_LogsIndexRebuild(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	require.NoError(t, NewPreparer(WithLogger(logger)).PrepareCorpus(twentyDocs(), StripSparseTerms))

	assert.Contains(t, buf.String(), `"msg":"corpus indexes rebuilt"`)
	assert.Contains(t, buf.String(), `"documents":20`)
}

func TestPreparer_String(t *testing.T) {
	p := newTestPreparer(WithCache(NewPatternCache(10)), WithExtraWords("a", "b"))
	s := p.String()

	assert.True(t, strings.HasPrefix(s, "Preparer{"))
	assert.Contains(t, s, "cache=0/10")
	assert.Contains(t, s, "extra_words=2")
}

func TestPackagePrepare(t *testing.T) {
	d := NewTextDocument("Hello, World", language.English)
	require.NoError(t, Prepare(d, StripCase|StripPunctuation|StripWhitespace))
	assert.Equal(t, "hello world", d.Text())

	c := NewCorpus(NewTextDocument("One  Two", language.English))
	require.NoError(t, PrepareCorpus(c, StripCase|StripWhitespace))
	assert.Equal(t, "one two", c.Document(0).(*TextDocument).Text())
}
