// Package outline2html renders outlines and notes to themed HTML.
//
// # Quick Start
//
// Create a representation and render an outline:
//
//	r := outline2html.New(outline2html.DefaultSettings(), nil, nil)
//
//	html := r.OutlineToHTML(&outline2html.Outline{
//	    Name:  "Ideas",
//	    Notes: []*outline2html.Note{{Name: "First", Body: "Hello **world**"}},
//	}, true)
//
// Standalone output (standalone=true) is a complete HTML document for file
// export. In-app output (standalone=false) is a bare fragment meant to be
// embedded in a view that brings its own stylesheet.
//
// # Rendering Pipeline
//
// Every render call follows these stages:
//
//  1. Outline or note to Markdown (MarkdownRepresentation)
//  2. Interceptor (optional Markdown to Markdown stage)
//  3. Markdown to HTML fragment via the configured Transcoder
//  4. Sanitizing, when enabled in the Configuration
//  5. Relative path rewriting against the outline directory
//  6. Metadata decoration (type badges, tags, timestamps)
//  7. Standalone document header and footer with theme colors
//
// # Configuration
//
// A Configuration decides which transcoder options are active. The
// representation reads it on every call and only pushes options to the
// transcoder when they changed since the previous call:
//
//	settings := outline2html.DefaultSettings()
//	r := outline2html.New(settings, nil, nil)
//	r.MarkdownToHTML("$x^2$", "", false) // math rendered literally
//	settings.Math = true
//	r.MarkdownToHTML("$x^2$", "", false) // MathJax markup
//
// # Engines
//
// Two transcoders ship with the package, goldmark (default) and gomarkdown.
// Pick one with WithTranscoder:
//
//	t, err := outline2html.NewTranscoder("gomarkdown", "")
//	r := outline2html.New(settings, nil, nil, outline2html.WithTranscoder(t))
//
// # Themes
//
// Standalone documents style the body with two colors from a ColorsProvider.
// New uses ExportColors (black on white). NewWithColors accepts a LiveColors
// that follows a host theme.
//
// # Concurrency
//
// A Representation is not safe for concurrent use. Use one instance per
// goroutine, or a RepresentationPool.
package outline2html
