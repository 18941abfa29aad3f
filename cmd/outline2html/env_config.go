package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-outline2html/internal/config"
)

// ErrEnvFile indicates an explicitly requested dotenv file could not be read.
var ErrEnvFile = errors.New("failed to load env file")

// envPrefix starts every variable the CLI reads.
const envPrefix = "OUTLINE2HTML_"

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath string // OUTLINE2HTML_CONFIG: config file name or path
	LogLevel   string // OUTLINE2HTML_LOG_LEVEL: debug, info, warn, error
	Workers    int    // OUTLINE2HTML_WORKERS: parallel workers

	InputDir  string // OUTLINE2HTML_INPUT_DIR: default input directory
	OutputDir string // OUTLINE2HTML_OUTPUT_DIR: default output directory

	Engine     string // OUTLINE2HTML_ENGINE: goldmark, gomarkdown
	CodeStyle  string // OUTLINE2HTML_CODE_STYLE: chroma style
	Style      string // OUTLINE2HTML_STYLE: CSS style name or path
	Templates  string // OUTLINE2HTML_TEMPLATES: template set name
	TextColor  string // OUTLINE2HTML_TEXT_COLOR
	BgColor    string // OUTLINE2HTML_BG_COLOR
	DateFormat string // OUTLINE2HTML_DATE_FORMAT
}

// knownEnvVars lists valid OUTLINE2HTML_* environment variables.
var knownEnvVars = map[string]bool{
	"OUTLINE2HTML_CONFIG":      true,
	"OUTLINE2HTML_LOG_LEVEL":   true,
	"OUTLINE2HTML_WORKERS":     true,
	"OUTLINE2HTML_INPUT_DIR":   true,
	"OUTLINE2HTML_OUTPUT_DIR":  true,
	"OUTLINE2HTML_ENGINE":      true,
	"OUTLINE2HTML_CODE_STYLE":  true,
	"OUTLINE2HTML_STYLE":       true,
	"OUTLINE2HTML_TEMPLATES":   true,
	"OUTLINE2HTML_TEXT_COLOR":  true,
	"OUTLINE2HTML_BG_COLOR":    true,
	"OUTLINE2HTML_DATE_FORMAT": true,
}

// loadDotEnv reads path into the process environment. Variables already set
// keep their values. A missing file is only an error when explicit is true.
func loadDotEnv(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %s: %v", ErrEnvFile, path, err)
	}
	return nil
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("OUTLINE2HTML_CONFIG"),
		LogLevel:   strings.ToLower(os.Getenv("OUTLINE2HTML_LOG_LEVEL")),
		InputDir:   os.Getenv("OUTLINE2HTML_INPUT_DIR"),
		OutputDir:  os.Getenv("OUTLINE2HTML_OUTPUT_DIR"),
		Engine:     os.Getenv("OUTLINE2HTML_ENGINE"),
		CodeStyle:  os.Getenv("OUTLINE2HTML_CODE_STYLE"),
		Style:      os.Getenv("OUTLINE2HTML_STYLE"),
		Templates:  os.Getenv("OUTLINE2HTML_TEMPLATES"),
		TextColor:  os.Getenv("OUTLINE2HTML_TEXT_COLOR"),
		BgColor:    os.Getenv("OUTLINE2HTML_BG_COLOR"),
		DateFormat: os.Getenv("OUTLINE2HTML_DATE_FORMAT"),
	}

	if workers := os.Getenv("OUTLINE2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized OUTLINE2HTML_* variable.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig copies set environment values over the loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (flags are applied afterwards by mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	overrides := []struct {
		value string
		dst   *string
	}{
		{env.InputDir, &cfg.Input.DefaultDir},
		{env.OutputDir, &cfg.Output.DefaultDir},
		{env.Engine, &cfg.Markdown.Engine},
		{env.CodeStyle, &cfg.Markdown.CodeStyle},
		{env.Style, &cfg.Export.Style},
		{env.Templates, &cfg.Export.Templates},
		{env.TextColor, &cfg.Theme.TextColor},
		{env.BgColor, &cfg.Theme.BackgroundColor},
		{env.DateFormat, &cfg.Export.DateFormat},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.dst = o.value
		}
	}
}
