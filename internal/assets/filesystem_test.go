package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeAsset creates dir/rel with content, making parent directories.
func writeAsset(t *testing.T, dir, rel, content string) {
	t.Helper()

	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("valid directory", func(t *testing.T) {
		t.Parallel()

		loader, err := NewFilesystemLoader(t.TempDir())
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		if loader == nil {
			t.Fatal("NewFilesystemLoader() returned nil")
		}
	})

	t.Run("empty path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader(\"\") error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("nonexistent directory returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory returns error", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		writeAsset(t, tmpDir, "file.txt", "test")

		_, err := NewFilesystemLoader(filepath.Join(tmpDir, "file.txt"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestFilesystemLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeAsset(t, tmpDir, "styles/solarized.css", "body { font-size: 14px; }")

	loader, err := NewFilesystemLoader(tmpDir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	t.Run("loads existing style", func(t *testing.T) {
		t.Parallel()

		got, err := loader.LoadStyle("solarized")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if got != "body { font-size: 14px; }" {
			t.Errorf("LoadStyle() = %q", got)
		}
	})

	t.Run("returns ErrStyleNotFound for nonexistent", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadStyle("missing")
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("returns ErrInvalidAssetName for invalid name", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadStyle("../solarized")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle() error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestFilesystemLoader_LoadTemplateSet(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeAsset(t, tmpDir, "templates/plain/header.html", "<html><body {{.BodyStyle}}>")
	writeAsset(t, tmpDir, "templates/plain/footer.html", "</body></html>")
	writeAsset(t, tmpDir, "templates/halfdone/header.html", "<html><body>")

	loader, err := NewFilesystemLoader(tmpDir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	tests := []struct {
		name       string
		set        string
		wantErr    error
		wantHeader string
	}{
		{
			name:       "complete set",
			set:        "plain",
			wantHeader: "<html><body {{.BodyStyle}}>",
		},
		{
			name:    "missing footer",
			set:     "halfdone",
			wantErr: ErrIncompleteTemplateSet,
		},
		{
			name:    "missing set",
			set:     "nothing",
			wantErr: ErrTemplateSetNotFound,
		},
		{
			name:    "invalid name",
			set:     "../plain",
			wantErr: ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ts, err := loader.LoadTemplateSet(tt.set)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadTemplateSet(%q) error = %v, want %v", tt.set, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTemplateSet(%q) unexpected error: %v", tt.set, err)
			}
			if ts.Header != tt.wantHeader {
				t.Errorf("Header = %q, want %q", ts.Header, tt.wantHeader)
			}
			if ts.Footer != "</body></html>" {
				t.Errorf("Footer = %q", ts.Footer)
			}
		})
	}
}

func TestFilesystemLoader_PathContainment(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "styles"), 0o755); err != nil {
		t.Fatalf("failed to create styles dir: %v", err)
	}

	secretDir := t.TempDir()
	writeAsset(t, secretDir, "secret.css", "secret content")

	if err := os.Symlink(filepath.Join(secretDir, "secret.css"), filepath.Join(tmpDir, "styles", "evil.css")); err != nil {
		t.Skipf("symlink creation not supported: %v", err)
	}

	loader, err := NewFilesystemLoader(tmpDir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	_, err = loader.LoadStyle("evil")
	if !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadStyle() with symlink escape error = %v, want ErrPathTraversal", err)
	}
}
