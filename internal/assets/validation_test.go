package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"simple name", "default", nil},
		{"name with hyphen", "my-style", nil},
		{"name with underscore", "my_style", nil},
		{"name with numbers", "style123", nil},
		{"mixed case", "MyStyle", nil},

		{"empty name", "", ErrInvalidAssetName},
		{"forward slash", "a/b", ErrInvalidAssetName},
		{"backslash", "a\\b", ErrInvalidAssetName},
		{"parent traversal", "..", ErrInvalidAssetName},
		{"extension", "style.css", ErrInvalidAssetName},
		{"space", "my style", ErrInvalidAssetName},
		{"too long", strings.Repeat("a", maxAssetNameLength+1), ErrInvalidAssetName},
		{"max length", strings.Repeat("a", maxAssetNameLength), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
