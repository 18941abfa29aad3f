package main

import (
	"io"
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags that control the CLI itself.
type commonFlags struct {
	config  string
	envFile string
	quiet   bool
	verbose bool
	version bool
	help    bool
}

// markdownFlags holds transcoder feature flags.
type markdownFlags struct {
	engine      string
	codeStyle   string
	math        bool
	diagrams    bool
	noHighlight bool
	hardWraps   bool
	rawHTML     bool
	sanitize    bool
}

// themeFlags holds the standalone document colors.
type themeFlags struct {
	textColor string
	bgColor   string
}

// exportFlags holds asset and layout flags for the written documents.
type exportFlags struct {
	style      string // Style name or .css path
	templates  string // Template set name
	assetPath  string // Override asset directory
	dateFormat string
	title      string
	cache      int
}

// outputFlags selects what is written for each outline.
type outputFlags struct {
	fragment    bool // Bare HTML fragment instead of a full document
	headerOnly  bool // Title and metadata only
	autolink    bool // nav:// links on type and tags (header-only)
	printConfig bool // Print the effective config as YAML and exit
}

// cliFlags holds every flag of the outline2html command.
type cliFlags struct {
	common   commonFlags
	output   string
	workers  int
	markdown markdownFlags
	theme    themeFlags
	export   exportFlags
	mode     outputFlags

	// changed reports whether a flag was set on the command line.
	changed func(name string) bool
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.envFile, "env-file", ".env", "dotenv file with OUTLINE2HTML_* variables")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")
}

func addMarkdownFlags(fs *flag.FlagSet, f *markdownFlags) {
	fs.StringVar(&f.engine, "engine", "", "markdown engine: goldmark, gomarkdown")
	fs.StringVar(&f.codeStyle, "code-style", "", "chroma style for code blocks")
	fs.BoolVar(&f.math, "math", false, "render $inline$ and $$display$$ math")
	fs.BoolVar(&f.diagrams, "diagrams", false, "render mermaid code blocks")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable code highlighting")
	fs.BoolVar(&f.hardWraps, "hard-wraps", false, "render newlines in paragraphs as <br>")
	fs.BoolVar(&f.rawHTML, "raw-html", false, "pass raw HTML through")
	fs.BoolVar(&f.sanitize, "sanitize", false, "strip scripts and unsafe attributes")
}

func addThemeFlags(fs *flag.FlagSet, f *themeFlags) {
	fs.StringVar(&f.textColor, "text-color", "", "document text color (default #000000)")
	fs.StringVar(&f.bgColor, "bg-color", "", "document background color (default #FFFFFF)")
}

func addExportFlags(fs *flag.FlagSet, f *exportFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path (\"none\" disables)")
	fs.StringVar(&f.templates, "templates", "", "document template set name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.dateFormat, "date-format", "", "metadata date format (e.g. iso, DD/MM/YYYY)")
	fs.StringVar(&f.title, "title", "", "title for outlines without a heading")
	fs.IntVar(&f.cache, "cache", 0, "fragment cache entries per worker (0 = off)")
}

func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.fragment, "fragment", false, "write HTML fragments instead of documents")
	fs.BoolVar(&f.headerOnly, "header-only", false, "write title and metadata only")
	fs.BoolVar(&f.autolink, "autolink", false, "link types and tags to nav:// targets")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective configuration and exit")
}

// newFlagSet registers every flag into a new FlagSet bound to f.
func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("outline2html", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addMarkdownFlags(fs, &f.markdown)
	addThemeFlags(fs, &f.theme)
	addExportFlags(fs, &f.export)
	addOutputFlags(fs, &f.mode)

	fs.Usage = func() { printUsage(os.Stderr) }
	return fs
}

// parseFlags parses command-line arguments (without the program name)
// and returns the flags and positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := newFlagSet(f)
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.changed = fs.Changed

	return f, fs.Args(), nil
}
