package pipeline

import "regexp"

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// PreprocessMarkdown normalizes line endings before any engine sees the
// text. Inline extensions (==mark==, math) are parsed by the engines, never
// by rewriting the source.
func PreprocessMarkdown(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
