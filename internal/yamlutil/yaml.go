// Package yamlutil wraps YAML parsing so callers never import the YAML library
// directly. It serves configuration files and Markdown front matter.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// frontMatterDelimiter opens and closes a front matter block.
const frontMatterDelimiter = "---"

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes data into v, ignoring unknown fields.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
// Fields of v that the input does not mention keep their current values.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Marshal encodes v as YAML.
func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}

// SplitFrontMatter separates a leading "---" delimited block from the rest of
// a document. ok is false when the document has no complete front matter, in
// which case body is the whole input.
func SplitFrontMatter(doc []byte) (front, body []byte, ok bool) {
	normalized := bytes.ReplaceAll(doc, []byte("\r\n"), []byte("\n"))

	first, rest, found := bytes.Cut(normalized, []byte("\n"))
	if !found || string(bytes.TrimRight(first, " \t")) != frontMatterDelimiter {
		return nil, doc, false
	}

	var block [][]byte
	for {
		line, remainder, more := bytes.Cut(rest, []byte("\n"))
		if string(bytes.TrimRight(line, " \t")) == frontMatterDelimiter {
			return bytes.Join(block, []byte("\n")), remainder, true
		}
		if !more {
			return nil, doc, false
		}
		block = append(block, line)
		rest = remainder
	}
}
