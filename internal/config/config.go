// Package config loads the textprep pipeline configuration from a YAML file
// with TEXTPREP_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/wizenheimer/textprep"
)

// Config is the pipeline configuration.
type Config struct {
	Language       string        `yaml:"language"`
	Flags          []string      `yaml:"flags"`
	Representation string        `yaml:"representation"`
	SparseAlpha    float64       `yaml:"sparseAlpha"`
	FrequentAlpha  float64       `yaml:"frequentAlpha"`
	ExtraPatterns  []string      `yaml:"extraPatterns"`
	ExtraWords     []string      `yaml:"extraWords"`
	CacheCapacity  int           `yaml:"cacheCapacity"`
	Logging        LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls log level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Representations accepted by the Representation field.
const (
	RepresentationText   = "text"
	RepresentationTokens = "tokens"
	RepresentationTerms  = "terms"
)

// Load reads path (if not empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Language:       "en",
		Flags:          []string{"strip_corrupt_utf8", "strip_case", "strip_punctuation", "strip_whitespace"},
		Representation: RepresentationText,
		SparseAlpha:    textprep.DefaultSparseAlpha,
		FrequentAlpha:  textprep.DefaultFrequentAlpha,
		CacheCapacity:  textprep.DefaultCacheCapacity,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TEXTPREP_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("TEXTPREP_FLAGS"); v != "" {
		cfg.Flags = strings.Split(v, ",")
	}
	if v := os.Getenv("TEXTPREP_REPRESENTATION"); v != "" {
		cfg.Representation = v
	}
	if v := os.Getenv("TEXTPREP_SPARSE_ALPHA"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.SparseAlpha = f
		}
	}
	if v := os.Getenv("TEXTPREP_FREQUENT_ALPHA"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.FrequentAlpha = f
		}
	}
	if v := os.Getenv("TEXTPREP_EXTRA_WORDS"); v != "" {
		cfg.ExtraWords = strings.Split(v, ",")
	}
	if v := os.Getenv("TEXTPREP_CACHE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CacheCapacity = n
		}
	}
	if v := os.Getenv("TEXTPREP_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TEXTPREP_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if _, err := c.LanguageTag(); err != nil {
		return err
	}
	if _, err := c.PipelineFlags(); err != nil {
		return err
	}
	switch c.Representation {
	case RepresentationText, RepresentationTokens, RepresentationTerms:
	default:
		return fmt.Errorf("invalid representation %q: want text, tokens or terms", c.Representation)
	}
	if c.SparseAlpha < 0 || c.SparseAlpha > 1 {
		return fmt.Errorf("sparseAlpha %g outside [0, 1]", c.SparseAlpha)
	}
	if c.FrequentAlpha < 0 || c.FrequentAlpha > 1 {
		return fmt.Errorf("frequentAlpha %g outside [0, 1]", c.FrequentAlpha)
	}
	if c.CacheCapacity < 1 {
		return fmt.Errorf("cacheCapacity must be positive, got %d", c.CacheCapacity)
	}
	return nil
}

// LanguageTag parses the configured BCP 47 language.
func (c *Config) LanguageTag() (language.Tag, error) {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language %q: %w", c.Language, err)
	}
	return tag, nil
}

// PipelineFlags resolves the configured flag names.
func (c *Config) PipelineFlags() (textprep.Flags, error) {
	return textprep.ParseFlags(c.Flags)
}

// Options turns the configuration into preparer options.
func (c *Config) Options() []textprep.Option {
	return []textprep.Option{
		textprep.WithCache(textprep.NewPatternCache(c.CacheCapacity)),
		textprep.WithSparseAlpha(c.SparseAlpha),
		textprep.WithFrequentAlpha(c.FrequentAlpha),
		textprep.WithExtraPatterns(c.ExtraPatterns...),
		textprep.WithExtraWords(c.ExtraWords...),
	}
}
