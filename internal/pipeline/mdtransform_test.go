package pipeline

import "testing"

func TestPreprocessMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"CRLF normalized", "a\r\nb\rc", "a\nb\nc"},
		{"blank lines kept", "a\n\n\n\nb", "a\n\n\n\nb"},
		{"marks left to the engine", "a ==b== $c$", "a ==b== $c$"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := PreprocessMarkdown(tt.input); got != tt.want {
				t.Errorf("PreprocessMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
