package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	outline2html "github.com/alnah/go-outline2html"
	"github.com/alnah/go-outline2html/internal/config"
	"github.com/alnah/go-outline2html/internal/fileutil"
	"github.com/alnah/go-outline2html/internal/hints"
	"github.com/alnah/go-outline2html/internal/logging"
	"github.com/alnah/go-outline2html/internal/yamlutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrTooManyInputs  = errors.New("expected a single input file or directory")
	ErrReadCSS        = errors.New("failed to read CSS file")
	ErrInvalidOptions = errors.New("invalid command-line options")
)

// styleNone disables the document stylesheet.
const styleNone = "none"

// runConvert orchestrates the export of one file or a directory tree.
func runConvert(ctx context.Context, positionalArgs []string, flags *cliFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	if err := loadDotEnv(flags.common.envFile, flags.changed("env-file")); err != nil {
		return err
	}
	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if flags.mode.printConfig {
		data, err := yamlutil.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("printing config: %w", err)
		}
		_, err = env.Stdout.Write(data)
		return err
	}

	logger := newLogger(flags, envCfg, env)
	defer func() { _ = logger.Sync() }()

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	factory, err := newRepresentationFactory(cfg, logger)
	if err != nil {
		return err
	}

	workers := flags.workers
	if workers == 0 {
		workers = min(envCfg.Workers, outline2html.MaxPoolSize)
	}
	pool := outline2html.NewRepresentationPool(factory, outline2html.ResolvePoolSize(workers))
	logger.Debug("starting export",
		zap.Int("files", len(files)),
		zap.Int("workers", pool.Size()),
		zap.String("engine", cfg.Markdown.Engine),
	)

	params := &conversionParams{
		mode:   flags.mode,
		title:  cfg.Export.Title,
		logger: logger,
	}
	results := convertBatch(ctx, pool, files, params)

	if failed := printResults(results, flags.common.quiet, flags.common.verbose, env); failed > 0 {
		return fmt.Errorf("%d conversion(s) failed", failed)
	}
	return nil
}

// loadConfig loads the named config, the flag taking priority over the
// environment. Without either, the defaults are used.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags copies every flag set on the command line into cfg.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	strs := []struct {
		name  string
		value string
		dst   *string
	}{
		{"engine", flags.markdown.engine, &cfg.Markdown.Engine},
		{"code-style", flags.markdown.codeStyle, &cfg.Markdown.CodeStyle},
		{"text-color", flags.theme.textColor, &cfg.Theme.TextColor},
		{"bg-color", flags.theme.bgColor, &cfg.Theme.BackgroundColor},
		{"style", flags.export.style, &cfg.Export.Style},
		{"templates", flags.export.templates, &cfg.Export.Templates},
		{"asset-path", flags.export.assetPath, &cfg.Assets.BasePath},
		{"date-format", flags.export.dateFormat, &cfg.Export.DateFormat},
		{"title", flags.export.title, &cfg.Export.Title},
	}
	for _, s := range strs {
		if flags.changed(s.name) {
			*s.dst = s.value
		}
	}

	bools := []struct {
		name  string
		value bool
		dst   *bool
	}{
		{"math", flags.markdown.math, &cfg.Markdown.Math},
		{"diagrams", flags.markdown.diagrams, &cfg.Markdown.Diagrams},
		{"hard-wraps", flags.markdown.hardWraps, &cfg.Markdown.HardWraps},
		{"raw-html", flags.markdown.rawHTML, &cfg.Markdown.RawHTML},
		{"sanitize", flags.markdown.sanitize, &cfg.Markdown.Sanitize},
		{"no-highlight", !flags.markdown.noHighlight, &cfg.Markdown.CodeHighlight},
	}
	for _, b := range bools {
		if flags.changed(b.name) {
			*b.dst = b.value
		}
	}

	if flags.changed("cache") {
		cfg.Export.FragmentCache = flags.export.cache
	}
}

// settingsFromConfig maps the markdown section onto the library settings.
func settingsFromConfig(cfg *config.Config) *outline2html.Settings {
	md := cfg.Markdown
	return &outline2html.Settings{
		Math:           md.Math,
		Diagrams:       md.Diagrams,
		CodeHighlight:  md.CodeHighlight,
		HardWraps:      md.HardWraps,
		RawHTML:        md.RawHTML,
		HeadingIDs:     md.HeadingIDs,
		HighlightMarks: md.HighlightMarks,
		Footnotes:      md.Footnotes,
		Sanitize:       md.Sanitize,
	}
}

// newRepresentationFactory resolves assets and the engine once, then returns
// a factory building identically configured representations for the pool.
func newRepresentationFactory(cfg *config.Config, logger *zap.Logger) (func() *outline2html.Representation, error) {
	if _, err := outline2html.NewTranscoder(cfg.Markdown.Engine, cfg.Markdown.CodeStyle); err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForUnknownEngine(outline2html.EngineNames()))
	}

	loader, err := outline2html.NewAssetLoader(cfg.Assets.BasePath)
	if err != nil {
		return nil, err
	}
	css, err := resolveStyle(cfg.Export.Style, loader)
	if err != nil {
		return nil, err
	}
	templates, err := loader.LoadTemplateSet(cfg.Export.Templates)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w%s", err, hints.ForTemplateSetNotFound(templateSetNames(loader)))
	}

	settings := settingsFromConfig(cfg)
	ontology := outline2html.NewOntology()
	colors := outline2html.NewLiveColors(outline2html.StaticTheme{
		Text:       cfg.Theme.TextColor,
		Background: cfg.Theme.BackgroundColor,
	})

	return func() *outline2html.Representation {
		// Engine and code style were validated above.
		transcoder, _ := outline2html.NewTranscoder(cfg.Markdown.Engine, cfg.Markdown.CodeStyle)
		return outline2html.NewWithColors(settings, ontology, colors, nil,
			outline2html.WithTranscoder(transcoder),
			outline2html.WithLogger(logger),
			outline2html.WithStyle(css),
			outline2html.WithDocumentTemplates(templates),
			outline2html.WithCodeStyle(cfg.Markdown.CodeStyle),
			outline2html.WithDateFormat(cfg.Export.DateFormat),
			outline2html.WithFragmentCache(cfg.Export.FragmentCache),
			outline2html.WithTitle(cfg.Export.Title),
		)
	}, nil
}

// resolveStyle returns the stylesheet for a style name or .css path.
// "none" and the empty string disable styling.
func resolveStyle(style string, loader outline2html.AssetLoader) (string, error) {
	switch {
	case style == "" || strings.EqualFold(style, styleNone):
		return "", nil
	case fileutil.IsFilePath(style):
		data, err := os.ReadFile(style) // #nosec G304 -- user-provided style path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		return string(data), nil
	default:
		css, err := loader.LoadStyle(style)
		if err != nil {
			return "", fmt.Errorf("loading style: %w%s", err, hints.ForStyleNotFound(styleNames(loader)))
		}
		return css, nil
	}
}

// styleNames lists the styles loader can serve, for hints.
func styleNames(loader outline2html.AssetLoader) []string {
	if c, ok := loader.(outline2html.AssetCatalog); ok {
		return c.StyleNames()
	}
	return outline2html.StyleNames()
}

// templateSetNames lists the template sets loader can serve, for hints.
func templateSetNames(loader outline2html.AssetLoader) []string {
	if c, ok := loader.(outline2html.AssetCatalog); ok {
		return c.TemplateSetNames()
	}
	return nil
}

// newLogger builds the diagnostics logger. --verbose wins, then --quiet,
// then OUTLINE2HTML_LOG_LEVEL.
func newLogger(flags *cliFlags, envCfg *envConfig, env *Environment) *zap.Logger {
	switch {
	case flags.common.verbose:
		return logging.New(env.Stderr, true)
	case flags.common.quiet:
		return logging.NewWithLevel(env.Stderr, logging.LevelFromString("error"))
	case envCfg.LogLevel != "":
		return logging.NewWithLevel(env.Stderr, logging.LevelFromString(envCfg.LogLevel))
	default:
		return logging.New(env.Stderr, false)
	}
}

// resolveInputPath picks the positional argument or the configured default.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("%w: got %d", ErrTooManyInputs, len(args))
	case len(args) == 1:
		return args[0], nil
	case cfg.Input.DefaultDir != "":
		return cfg.Input.DefaultDir, nil
	default:
		return "", ErrNoInput
	}
}

// resolveOutputDir picks the -o flag or the configured default.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
