package outline2html

import "testing"

func TestExportColors(t *testing.T) {
	t.Parallel()

	c := NewExportColors()

	for i := 0; i < 2; i++ {
		if got := c.TextColor(); got != "#000000" {
			t.Errorf("TextColor() = %q, want #000000", got)
		}
		if got := c.BackgroundColor(); got != "#FFFFFF" {
			t.Errorf("BackgroundColor() = %q, want #FFFFFF", got)
		}
	}
}

func TestLiveColors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   ThemeSource
		wantText string
		wantBg   string
	}{
		{
			name:     "nil source uses defaults",
			source:   nil,
			wantText: DefaultTextColor,
			wantBg:   DefaultBackgroundColor,
		},
		{
			name:     "source values",
			source:   StaticTheme{Text: "#EEEEEE", Background: "#202020"},
			wantText: "#EEEEEE",
			wantBg:   "#202020",
		},
		{
			name:     "empty values fall back",
			source:   StaticTheme{Text: "navy"},
			wantText: "navy",
			wantBg:   DefaultBackgroundColor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewLiveColors(tt.source)
			if got := c.TextColor(); got != tt.wantText {
				t.Errorf("TextColor() = %q, want %q", got, tt.wantText)
			}
			if got := c.BackgroundColor(); got != tt.wantBg {
				t.Errorf("BackgroundColor() = %q, want %q", got, tt.wantBg)
			}
		})
	}
}

func TestLiveColors_FollowsSource(t *testing.T) {
	t.Parallel()

	theme := &fakeTheme{text: "#111111", background: "#222222"}
	c := NewLiveColors(theme)

	if got := c.TextColor(); got != "#111111" {
		t.Fatalf("TextColor() = %q, want #111111", got)
	}

	theme.text = "#333333"
	theme.background = ""
	if got := c.TextColor(); got != "#333333" {
		t.Errorf("TextColor() after change = %q, want #333333", got)
	}
	if got := c.BackgroundColor(); got != DefaultBackgroundColor {
		t.Errorf("BackgroundColor() after clearing = %q, want %q", got, DefaultBackgroundColor)
	}
}
