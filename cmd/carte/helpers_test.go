package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dendoesit/carte/internal/render"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment and fixtures
// ---------------------------------------------------------------------------

var testNow = time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

// testEnv is an Environment with captured output and a private variable set.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(vars map[string]string) *testEnv {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return testNow },
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return &testEnv{Environment: env, stdout: &stdout, stderr: &stderr}
}

// fixturePDF returns an A4 document whose page i shows markers[i].
func fixturePDF(t *testing.T, markers ...string) []byte {
	t.Helper()

	c := render.NewCanvas(render.Metadata{Title: "fixture"})
	for _, m := range markers {
		c.AddPage()
		c.SetFont(render.Bold, 20)
		c.Text(72, 120, m)
	}
	data, err := c.Bytes()
	if err != nil {
		t.Fatalf("building fixture: %v", err)
	}
	return data
}

// setupTestDir creates a temp directory with the given files.
func setupTestDir(t *testing.T, files map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()

	for path, content := range files {
		full := filepath.Join(dir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(full, content, 0o600); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	return dir
}

// pageText returns the whitespace-free text of a 1-based page.
func pageText(t *testing.T, data []byte, page int) string {
	t.Helper()

	text, err := render.PageText(data, page)
	if err != nil {
		t.Fatalf("PageText(%d) error = %v", page, err)
	}
	return strings.Join(strings.Fields(text), "")
}

const blocARecord = `name: Bloc A
beneficiary: Primaria Cluj
categories:
  design: []
  execution:
    - id: exec-pv
      label: Proces verbal de predare
      included: true
      attachment:
        path: anexe/pv.pdf
    - id: exec-jurnal
      label: Jurnal de santier
      included: true
  reception: []
  monitoring: []
`
