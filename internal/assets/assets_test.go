package assets

import (
	"errors"
	"html/template"
	"strings"
	"testing"
)

func TestLoadStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		styleName string
		wantErr   error
	}{
		{
			name:      "default style",
			styleName: DefaultStyleName,
		},
		{
			name:      "compact style",
			styleName: "compact",
		},
		{
			name:      "nonexistent style",
			styleName: "nonexistent",
			wantErr:   ErrStyleNotFound,
		},
		{
			name:      "empty name",
			styleName: "",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "path traversal",
			styleName: "../secret",
			wantErr:   ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content, err := LoadStyle(tt.styleName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}
			if !strings.Contains(content, ".mf-metadata") {
				t.Errorf("LoadStyle(%q) should style outline metadata", tt.styleName)
			}
		})
	}
}

func TestLoadTemplateSet_Default(t *testing.T) {
	t.Parallel()

	ts, err := LoadTemplateSet(DefaultTemplateSetName)
	if err != nil {
		t.Fatalf("LoadTemplateSet(default) error: %v", err)
	}

	for _, part := range []string{"{{.Title}}", "{{.CSS}}", "{{.BodyStyle}}", "{{.MathJaxURL}}", "{{.MermaidURL}}"} {
		if !strings.Contains(ts.Header, part) {
			t.Errorf("header template should contain %q", part)
		}
	}
	if !strings.Contains(ts.Footer, "</html>") {
		t.Errorf("footer template should close the document, got %q", ts.Footer)
	}

	// Both parse as html/template sources.
	if _, err := template.New("header").Parse(ts.Header); err != nil {
		t.Errorf("header template does not parse: %v", err)
	}
	if _, err := template.New("footer").Parse(ts.Footer); err != nil {
		t.Errorf("footer template does not parse: %v", err)
	}
}

func TestLoadTemplateSet_Errors(t *testing.T) {
	t.Parallel()

	if _, err := LoadTemplateSet("missing"); !errors.Is(err, ErrTemplateSetNotFound) {
		t.Errorf("LoadTemplateSet(missing) error = %v, want ErrTemplateSetNotFound", err)
	}
	if _, err := LoadTemplateSet("a/b"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadTemplateSet(a/b) error = %v, want ErrInvalidAssetName", err)
	}
}
