package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"

	"github.com/wizenheimer/textprep"
	"github.com/wizenheimer/textprep/internal/config"
	"github.com/wizenheimer/textprep/internal/logger"
)

// session holds what the Before hook resolves for every command.
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *textprep.Metrics
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp() *cli.App {
	s := &session{}
	app := &cli.App{
		Name:    "textprep",
		Usage:   "Normalize text before analysis",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration file"},
			&cli.StringFlag{Name: "log-level", Usage: "Log level: debug|info|warn|error"},
			&cli.StringFlag{Name: "log-format", Usage: "Log format: text|json"},
			&cli.BoolFlag{Name: "metrics", Usage: "Print pipeline metrics to stderr on exit"},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			if lvl := c.String("log-level"); lvl != "" {
				cfg.Logging.Level = lvl
			}
			if format := c.String("log-format"); format != "" {
				cfg.Logging.Format = format
			}
			logger.Setup(cfg.Logging.Level, cfg.Logging.Format, c.App.ErrWriter)
			s.cfg = cfg
			s.logger = logger.WithComponent("cli")
			s.registry = prometheus.NewRegistry()
			s.metrics = textprep.NewMetrics(s.registry)
			return nil
		},
		After: func(c *cli.Context) error {
			if c.Bool("metrics") && s.registry != nil {
				return writeMetrics(c.App.ErrWriter, s.registry)
			}
			return nil
		},
		Commands: []*cli.Command{
			prepareCmd(s),
			termsCmd(s),
			flagsCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// prepareCmd creates the prepare command.
func prepareCmd(s *session) *cli.Command {
	return &cli.Command{
		Name:      "prepare",
		Usage:     "Run the preparation pipeline over files or stdin",
		ArgsUsage: "[file...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "flags", Aliases: []string{"f"}, Usage: "Comma-separated flag names (overrides config)"},
			&cli.StringFlag{Name: "lang", Aliases: []string{"l"}, Usage: "BCP 47 language tag (overrides config)"},
			&cli.StringFlag{Name: "as", Usage: "Representation: text|tokens|terms (overrides config)"},
			&cli.StringFlag{Name: "words", Aliases: []string{"w"}, Usage: "Comma-separated extra words to remove"},
		},
		Action: func(c *cli.Context) error {
			opts, err := resolve(c, s)
			if err != nil {
				return outputError(err)
			}

			sources, texts, err := readInputs(c)
			if err != nil {
				return outputError(err)
			}

			preparer := textprep.NewPreparer(append(s.cfg.Options(),
				textprep.WithLogger(logger.WithComponent("textprep")),
				textprep.WithMetrics(s.metrics),
				textprep.WithExtraWords(parseList(c.String("words"))...),
			)...)

			docs := make([]textprep.Document, len(texts))
			for i, text := range texts {
				docs[i] = newDocument(opts.representation, text, opts.lang)
			}

			if len(docs) > 1 {
				err = preparer.PrepareCorpus(textprep.NewCorpus(docs...), opts.flags)
			} else {
				err = preparer.Prepare(docs[0], opts.flags)
			}
			if err != nil {
				return outputError(err)
			}

			s.logger.Debug("prepare finished",
				slog.Int("documents", len(docs)),
				slog.String("preparer", preparer.String()))

			out := c.App.Writer
			for i, d := range docs {
				if err := writeDocument(out, sources[i], d, len(docs) > 1); err != nil {
					return outputError(err)
				}
			}
			return nil
		},
	}
}

// termsCmd creates the terms command group.
func termsCmd(s *session) *cli.Command {
	alphaFlag := func(def float64) cli.Flag {
		return &cli.Float64Flag{Name: "alpha", Aliases: []string{"a"}, Value: def, Usage: "Document frequency threshold (overrides config)"}
	}
	selectTerms := func(sparse bool) cli.ActionFunc {
		return func(c *cli.Context) error {
			opts, err := resolve(c, s)
			if err != nil {
				return outputError(err)
			}
			alpha := s.cfg.FrequentAlpha
			if sparse {
				alpha = s.cfg.SparseAlpha
			}
			if c.IsSet("alpha") {
				alpha = c.Float64("alpha")
			}

			_, texts, err := readInputs(c)
			if err != nil {
				return outputError(err)
			}

			corpus := textprep.NewCorpus()
			for _, text := range texts {
				corpus.Add(textprep.NewTermDocumentFromText(text, opts.lang))
			}
			preparer := textprep.NewPreparer(append(s.cfg.Options(), textprep.WithMetrics(s.metrics))...)
			if err := preparer.PrepareCorpus(corpus, opts.flags&^(textprep.StripSparseTerms|textprep.StripFrequentTerms)); err != nil {
				return outputError(err)
			}

			var terms []string
			if sparse {
				terms, err = corpus.SparseTerms(alpha)
			} else {
				terms, err = corpus.FrequentTerms(alpha)
			}
			if err != nil {
				return outputError(err)
			}
			for _, term := range terms {
				fmt.Fprintln(c.App.Writer, term)
			}
			return nil
		}
	}

	shared := []cli.Flag{
		&cli.StringFlag{Name: "flags", Aliases: []string{"f"}, Usage: "Comma-separated flag names applied before counting"},
		&cli.StringFlag{Name: "lang", Aliases: []string{"l"}, Usage: "BCP 47 language tag"},
	}
	return &cli.Command{
		Name:  "terms",
		Usage: "List sparse or frequent terms of a corpus",
		Subcommands: []*cli.Command{
			{
				Name:      "sparse",
				Usage:     "Terms found in at most alpha of the documents",
				ArgsUsage: "[file...]",
				Flags:     append([]cli.Flag{alphaFlag(textprep.DefaultSparseAlpha)}, shared...),
				Action:    selectTerms(true),
			},
			{
				Name:      "frequent",
				Usage:     "Terms found in at least alpha of the documents",
				ArgsUsage: "[file...]",
				Flags:     append([]cli.Flag{alphaFlag(textprep.DefaultFrequentAlpha)}, shared...),
				Action:    selectTerms(false),
			},
		},
	}
}

// flagsCmd creates the flags command.
func flagsCmd() *cli.Command {
	return &cli.Command{
		Name:  "flags",
		Usage: "List preparation flag names and their bits",
		Action: func(c *cli.Context) error {
			for _, name := range textprep.FlagNames() {
				f, _ := textprep.LookupFlag(name)
				fmt.Fprintf(c.App.Writer, "%-28s 0x%06x\n", name, uint32(f))
			}
			return nil
		},
	}
}

type options struct {
	flags          textprep.Flags
	lang           language.Tag
	representation string
}

// resolve merges command flags over the loaded configuration.
func resolve(c *cli.Context, s *session) (options, error) {
	cfg := *s.cfg
	if v := c.String("flags"); v != "" {
		cfg.Flags = []string{v}
	}
	if v := c.String("lang"); v != "" {
		cfg.Language = v
	}
	if c.IsSet("as") {
		cfg.Representation = c.String("as")
	}
	if err := cfg.Validate(); err != nil {
		return options{}, err
	}
	flags, _ := cfg.PipelineFlags()
	lang, _ := cfg.LanguageTag()
	return options{flags: flags, lang: lang, representation: cfg.Representation}, nil
}

// readInputs returns the text of every file argument, or of stdin when none
// is given.
func readInputs(c *cli.Context) ([]string, []string, error) {
	if c.NArg() == 0 {
		data, err := io.ReadAll(c.App.Reader)
		if err != nil {
			return nil, nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []string{"-"}, []string{string(data)}, nil
	}
	sources := c.Args().Slice()
	texts := make([]string, len(sources))
	for i, path := range sources {
		text, err := textprep.NewFileDocument(path, language.Und).Text()
		if err != nil {
			return nil, nil, err
		}
		texts[i] = text
	}
	return sources, texts, nil
}

func newDocument(representation, text string, lang language.Tag) textprep.Document {
	switch representation {
	case config.RepresentationTokens:
		return textprep.NewTokenDocumentFromText(text, lang)
	case config.RepresentationTerms:
		return textprep.NewTermDocumentFromText(text, lang)
	default:
		return textprep.NewTextDocument(text, lang)
	}
}

// preparedDocument is the JSON shape of a token or term document.
type preparedDocument struct {
	Source string         `json:"source,omitempty"`
	Tokens []string       `json:"tokens,omitempty"`
	Terms  map[string]int `json:"terms,omitempty"`
}

// writeDocument prints text documents as plain lines and the other
// representations as one JSON object per line.
func writeDocument(w io.Writer, source string, d textprep.Document, labelled bool) error {
	switch d := d.(type) {
	case *textprep.TextDocument:
		if labelled {
			_, err := fmt.Fprintf(w, "%s\t%s\n", source, d.Text())
			return err
		}
		_, err := fmt.Fprintln(w, d.Text())
		return err
	case *textprep.TokenDocument:
		return json.NewEncoder(w).Encode(preparedDocument{Source: labelledSource(source, labelled), Tokens: d.Tokens()})
	case *textprep.TermDocument:
		terms, _ := d.Terms()
		return json.NewEncoder(w).Encode(preparedDocument{Source: labelledSource(source, labelled), Terms: terms})
	default:
		return fmt.Errorf("cannot print %s document", d.Kind())
	}
}

func labelledSource(source string, labelled bool) string {
	if labelled {
		return source
	}
	return ""
}

// writeMetrics prints every non-zero counter as "name{labels} value".
func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			v := m.GetCounter().GetValue()
			if v == 0 {
				continue
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			sort.Strings(labels)
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			fmt.Fprintf(w, "%s %g\n", name, v)
		}
	}
	return nil
}

// outputError formats error for CLI.
func outputError(err error) error {
	return cli.Exit(err.Error(), 1)
}

// parseList splits a comma-separated string, dropping empty entries.
func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
