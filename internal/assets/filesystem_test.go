package assets

// Notes:
// - ReadDir permission failures in NewFilesystemLoader are not tested: they
//   depend on the user running the tests (root ignores mode bits).

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const customTemplate = "name: hala\ndesign:\n  - id: pte\n    label: Proiect tehnic hala\n"

func writeTemplate(t *testing.T, base, name, content string) {
	t.Helper()

	dir := filepath.Join(base, "templates")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create templates dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write template: %v", err)
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

		_, err := NewFilesystemLoader("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory returns error", func(t *testing.T) {
		t.Parallel()

		filePath := filepath.Join(t.TempDir(), "file.txt")
		if err := os.WriteFile(filePath, []byte("test"), 0o644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		_, err := NewFilesystemLoader(filePath)
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestFilesystemLoader_LoadChecklist(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeTemplate(t, base, "hala", customTemplate)
	writeTemplate(t, base, "stricat", "design: [unclosed")

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	t.Run("loads custom template", func(t *testing.T) {
		t.Parallel()

		c, err := loader.LoadChecklist("hala")
		if err != nil {
			t.Fatalf("LoadChecklist() error = %v", err)
		}
		want := []ChecklistItem{{ID: "pte", Label: "Proiect tehnic hala"}}
		if diff := cmp.Diff(want, c.Design); diff != "" {
			t.Errorf("Design mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing template", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadChecklist("standard")
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadChecklist() error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("malformed template", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadChecklist("stricat")
		if !errors.Is(err, ErrInvalidTemplate) {
			t.Errorf("LoadChecklist() error = %v, want ErrInvalidTemplate", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadChecklist("../hala")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadChecklist() error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.yaml")
	if err := os.WriteFile(secret, []byte(customTemplate), 0o644); err != nil {
		t.Fatal(err)
	}

	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "templates"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(secret, filepath.Join(base, "templates", "escape.yaml")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	_, err = loader.LoadChecklist("escape")
	if !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadChecklist() error = %v, want ErrPathTraversal", err)
	}
}

func TestFilesystemLoader_Names(t *testing.T) {
	t.Parallel()

	t.Run("lists yaml files only", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		writeTemplate(t, base, "hala", customTemplate)
		writeTemplate(t, base, "birouri", customTemplate)
		if err := os.WriteFile(filepath.Join(base, "templates", "README.md"), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		loader, err := NewFilesystemLoader(base)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		names, err := loader.Names()
		if err != nil {
			t.Fatalf("Names() error = %v", err)
		}
		if diff := cmp.Diff([]string{"birouri", "hala"}, names); diff != "" {
			t.Errorf("Names() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no templates directory", func(t *testing.T) {
		t.Parallel()

		loader, err := NewFilesystemLoader(t.TempDir())
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		names, err := loader.Names()
		if err != nil || len(names) != 0 {
			t.Errorf("Names() = %v, %v; want empty, nil", names, err)
		}
	})
}
