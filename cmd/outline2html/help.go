package main

import (
	"fmt"
	"io"
)

// printUsage prints the command usage.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: outline2html [flags] <input>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Markdown outlines to HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Outline file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --env-file <path>     Dotenv file with OUTLINE2HTML_* variables (default .env)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markdown:")
	fmt.Fprintln(w, "      --engine <s>          Engine: goldmark, gomarkdown")
	fmt.Fprintln(w, "      --code-style <s>      Chroma style for code blocks (e.g. github, monokai)")
	fmt.Fprintln(w, "      --math                Render $inline$ and $$display$$ math (MathJax)")
	fmt.Fprintln(w, "      --diagrams            Render ```mermaid blocks")
	fmt.Fprintln(w, "      --no-highlight        Disable code highlighting")
	fmt.Fprintln(w, "      --hard-wraps          Newlines in paragraphs become <br>")
	fmt.Fprintln(w, "      --raw-html            Pass raw HTML through")
	fmt.Fprintln(w, "      --sanitize            Strip scripts and unsafe attributes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Theme:")
	fmt.Fprintln(w, "      --text-color <c>      Document text color (default #000000)")
	fmt.Fprintln(w, "      --bg-color <c>        Document background color (default #FFFFFF)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --style <s>           Style name or .css path (\"none\" disables)")
	fmt.Fprintln(w, "      --templates <s>       Template set name")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/ and templates/")
	fmt.Fprintln(w, "      --date-format <s>     Metadata dates: YYYY, MM, DD, HH, mm tokens")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "      --title <s>           Title for outlines without a heading")
	fmt.Fprintln(w, "      --cache <n>           Fragment cache entries per worker (0 = off)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Mode:")
	fmt.Fprintln(w, "      --fragment            Write HTML fragments, not full documents")
	fmt.Fprintln(w, "      --header-only         Write title and metadata only")
	fmt.Fprintln(w, "      --autolink            Link types and tags to nav:// targets (with --header-only)")
	fmt.Fprintln(w, "      --print-config        Print the effective configuration and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
}
