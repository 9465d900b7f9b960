package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/wizenheimer/textprep"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "textprep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, RepresentationText, cfg.Representation)
	assert.Equal(t, textprep.DefaultCacheCapacity, cfg.CacheCapacity)
	assert.InDelta(t, textprep.DefaultSparseAlpha, cfg.SparseAlpha, 1e-12)

	flags, err := cfg.PipelineFlags()
	require.NoError(t, err)
	assert.Equal(t, textprep.StripCorruptUTF8|textprep.StripCase|textprep.StripPunctuation|textprep.StripWhitespace, flags)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
language: es
flags: [strip_articles, strip_stopwords, strip_whitespace]
representation: tokens
sparseAlpha: 0.1
extraWords: [foo, bar]
cacheCapacity: 10
logging:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	tag, err := cfg.LanguageTag()
	require.NoError(t, err)
	assert.Equal(t, language.Spanish, tag)

	flags, err := cfg.PipelineFlags()
	require.NoError(t, err)
	assert.True(t, flags.Has(textprep.StripArticles))
	assert.True(t, flags.Has(textprep.StripStopwords))

	assert.Equal(t, RepresentationTokens, cfg.Representation)
	assert.InDelta(t, 0.1, cfg.SparseAlpha, 1e-12)
	assert.InDelta(t, textprep.DefaultFrequentAlpha, cfg.FrequentAlpha, 1e-12)
	assert.Equal(t, []string{"foo", "bar"}, cfg.ExtraWords)
	assert.Equal(t, 10, cfg.CacheCapacity)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TEXTPREP_LANGUAGE", "fr")
	t.Setenv("TEXTPREP_FLAGS", "strip_case,strip_numbers")
	t.Setenv("TEXTPREP_FREQUENT_ALPHA", "0.8")
	t.Setenv("TEXTPREP_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "fr", cfg.Language)
	flags, err := cfg.PipelineFlags()
	require.NoError(t, err)
	assert.Equal(t, textprep.StripCase|textprep.StripNumbers, flags)
	assert.InDelta(t, 0.8, cfg.FrequentAlpha, 1e-12)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown flag", "flags: [strip_everything]"},
		{"bad representation", "representation: xml"},
		{"alpha out of range", "sparseAlpha: 1.5"},
		{"bad language", "language: '!!'"},
		{"zero capacity", "cacheCapacity: -1"},
		{"malformed yaml", "flags: [unterminated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
