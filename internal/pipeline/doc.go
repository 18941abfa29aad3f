// Package pipeline implements the Markdown-to-HTML fragment pipeline.
//
// This package holds the stages behind an outline representation:
//   - Option bitmask derived from rendering settings
//   - Line-ending normalization and ==mark== highlighting as parser extensions
//   - Pluggable transcoders (goldmark, gomarkdown) selected by engine name
//   - Math and diagram markup for MathJax and mermaid
//   - Fragment sanitizing and caching
//   - Relative path rewriting against the outline directory
//   - Standalone document header and footer templates
//
// Decoration of outline metadata (types, tags, colors) lives in the root
// outline2html package, which composes these stages.
package pipeline
