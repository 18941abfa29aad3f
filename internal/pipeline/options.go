package pipeline

import "strings"

// Options is the transcoder option bitmask derived from rendering settings.
type Options uint32

// Option bits understood by the transcoders.
const (
	OptionMath Options = 1 << iota
	OptionDiagrams
	OptionCodeHighlight
	OptionHardWraps
	OptionRawHTML
	OptionHeadingIDs
	OptionHighlightMarks
	OptionFootnotes
	OptionSanitize

	// OptionsMask covers every known bit.
	OptionsMask = OptionSanitize<<1 - 1
)

// OptionsUnset marks an option cache that has never been filled.
// Settings only ever produce bits inside OptionsMask, so the sentinel
// never compares equal to a computed bitmask.
const OptionsUnset = ^Options(0)

// optionNames lists bit names in bit order for String.
var optionNames = []struct {
	bit  Options
	name string
}{
	{OptionMath, "math"},
	{OptionDiagrams, "diagrams"},
	{OptionCodeHighlight, "code-highlight"},
	{OptionHardWraps, "hard-wraps"},
	{OptionRawHTML, "raw-html"},
	{OptionHeadingIDs, "heading-ids"},
	{OptionHighlightMarks, "highlight-marks"},
	{OptionFootnotes, "footnotes"},
	{OptionSanitize, "sanitize"},
}

// Has reports whether every bit of flag is set.
func (o Options) Has(flag Options) bool {
	return o&flag == flag
}

// String returns the set bit names joined by "|".
// Unknown bits are reported as "unknown", the empty set as "none".
func (o Options) String() string {
	if o == OptionsUnset {
		return "unset"
	}
	if o == 0 {
		return "none"
	}

	var parts []string
	for _, n := range optionNames {
		if o.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	if o&^OptionsMask != 0 {
		parts = append(parts, "unknown")
	}
	return strings.Join(parts, "|")
}
