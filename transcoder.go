package outline2html

import "github.com/alnah/go-outline2html/internal/pipeline"

// Transcoder converts Markdown to an HTML fragment under the options last
// passed to SetOptions. Implementations must degrade to best-effort HTML on
// malformed Markdown and ignore unknown option bits.
type Transcoder = pipeline.Transcoder

// Engine names accepted by NewTranscoder.
const (
	EngineGoldmark   = pipeline.EngineGoldmark
	EngineGomarkdown = pipeline.EngineGomarkdown
)

// NewTranscoder creates a built-in transcoder by engine name.
// An empty engine selects goldmark; an empty codeStyle selects "github".
// Returns ErrUnknownEngine for other names.
func NewTranscoder(engine, codeStyle string) (Transcoder, error) {
	return pipeline.NewTranscoder(engine, pipeline.WithCodeStyle(codeStyle))
}

// EngineNames lists the built-in engine names.
func EngineNames() []string {
	return pipeline.EngineNames()
}
