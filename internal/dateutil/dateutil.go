// Package dateutil converts user-friendly date formats such as
// "YYYY-MM-DD HH:mm" into Go time layouts.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultDateFormat renders outline and note timestamps.
const DefaultDateFormat = "YYYY-MM-DD HH:mm"

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"datetime": "YYYY-MM-DD HH:mm",
	"full":     "YYYY-MM-DD HH:mm:ss",
}

// segment is one piece of a parsed format: a Go layout fragment or text
// that must be written verbatim.
type segment struct {
	text    string
	literal bool
}

// parseSegments splits format into layout fragments and literal text.
// Adjacent pieces of the same kind are merged.
func parseSegments(format string) ([]segment, error) {
	if format == "" {
		return nil, fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return nil, fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var segs []segment
	add := func(text string, literal bool) {
		if text == "" {
			return
		}
		if n := len(segs); n > 0 && segs[n-1].literal == literal {
			segs[n-1].text += text
			return
		}
		segs = append(segs, segment{text: text, literal: literal})
	}

	i := 0
	for i < len(format) {
		// Handle bracket-escaped literal text
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return nil, fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			add(format[i+1:i+1+end], true)
			i += end + 2 // Skip past closing bracket
			continue
		}

		matched := false

		// Try to match tokens (longest first due to slice order)
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				add(t.goFmt, false)
				i += len(t.token)
				matched = true
				break
			}
		}

		if !matched {
			add(format[i:i+1], true)
			i++
		}
	}

	return segs, nil
}

// ParseDateFormat converts a user-friendly format string to Go's time format.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, hh, mm, ss
// Use brackets to escape literal text: [Date] preserves "Date" literally.
// Any non-token characters outside brackets are preserved as literals.
// Returns ErrInvalidDateFormat if the format is empty, too long, or has unclosed brackets.
//
// Go layouts cannot quote text, so literal text that reads as a layout
// element (e.g. "Jan", "PM", "2") is re-interpreted if the returned string
// is passed to time.Format directly. Formatter keeps literals verbatim.
func ParseDateFormat(format string) (string, error) {
	segs, err := parseSegments(format)
	if err != nil {
		return "", err
	}

	var result strings.Builder
	result.Grow(len(format) + 10) // Pre-allocate with some buffer
	for _, s := range segs {
		result.WriteString(s.text)
	}
	return result.String(), nil
}

// Layout converts a preset name or a user-friendly format to a Go layout.
// Preset names are matched case-insensitively.
func Layout(format string) (string, error) {
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}
	return ParseDateFormat(format)
}

// Formatter renders timestamps with a parsed format. Literal text is
// written as is and never read as a layout element.
type Formatter struct {
	layout   string
	segments []segment
}

// NewFormatter creates a Formatter for a preset name or user-friendly format.
// An empty format selects DefaultDateFormat.
func NewFormatter(format string) (*Formatter, error) {
	if format == "" {
		format = DefaultDateFormat
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}
	segs, err := parseSegments(format)
	if err != nil {
		return nil, err
	}
	var layout strings.Builder
	for _, s := range segs {
		layout.WriteString(s.text)
	}
	return &Formatter{layout: layout.String(), segments: segs}, nil
}

// Format returns t rendered with the formatter layout.
// The zero time renders as an empty string.
func (f *Formatter) Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	var b strings.Builder
	for _, s := range f.segments {
		if s.literal {
			b.WriteString(s.text)
			continue
		}
		b.WriteString(t.Format(s.text))
	}
	return b.String()
}

// Layout returns the Go time layout in use.
func (f *Formatter) Layout() string {
	return f.layout
}
