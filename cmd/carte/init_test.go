package main

// Notes:
// - runInit loads the default "carte" config from the standard search paths;
//   a missing file falls back to defaults, which is what these tests rely on.

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunInitCmd - Record skeleton generation
// ---------------------------------------------------------------------------

func TestRunInitCmd_Stdout(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)
	code := runInitCmd([]string{"--template", "minimal", "--name", "Casa P+1"}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, want %d; stderr: %s", code, ExitSuccess, env.stderr)
	}

	out := env.stdout.String()
	for _, want := range []string{"name: Casa P+1", "categories:", "design:", "monitoring:", "included: false"} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q:\n%s", want, out)
		}
	}
}

func TestRunInitCmd_File(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "casa.yaml")
	env := newTestEnv(nil)

	code := runInitCmd([]string{"--template", "minimal", "--name", "Casa", "-o", path}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit = %d; stderr: %s", code, env.stderr)
	}
	if !strings.Contains(env.stdout.String(), "Created "+path+" (minimal template, 8 items)") {
		t.Errorf("stdout = %q", env.stdout.String())
	}

	// The skeleton is a valid export input.
	rec, err := readRecord(path)
	if err != nil {
		t.Fatalf("readRecord() error = %v", err)
	}
	if rec.Name != "Casa" {
		t.Errorf("Name = %q, want Casa", rec.Name)
	}

	// A second run refuses to overwrite.
	env = newTestEnv(nil)
	code = runInitCmd([]string{"-o", path}, env.Environment)
	if code != ExitUsage {
		t.Errorf("exit = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(env.stderr.String(), "already exists") {
		t.Errorf("stderr = %q", env.stderr.String())
	}
}

func TestRunInitCmd_CustomTemplates(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string][]byte{
		"templates/hala.yaml": []byte(`name: hala
design:
  - id: pth
    label: Proiect tehnic hala
execution: []
reception: []
monitoring: []
`),
	})

	env := newTestEnv(map[string]string{"CARTE_TEMPLATES": dir})
	code := runInitCmd([]string{"--template", "hala"}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit = %d; stderr: %s", code, env.stderr)
	}
	if !strings.Contains(env.stdout.String(), "Proiect tehnic hala") {
		t.Errorf("stdout missing custom item:\n%s", env.stdout.String())
	}

	// The flag takes precedence over CARTE_TEMPLATES.
	env = newTestEnv(map[string]string{"CARTE_TEMPLATES": t.TempDir()})
	code = runInitCmd([]string{"--template", "hala", "--templates", dir}, env.Environment)
	if code != ExitSuccess {
		t.Errorf("exit = %d; stderr: %s", code, env.stderr)
	}
}

func TestRunInitCmd_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{
			name:       "unknown template",
			args:       []string{"--template", "hala"},
			wantCode:   ExitUsage,
			wantStderr: "available: minimal, standard",
		},
		{
			name:       "positional argument",
			args:       []string{"casa.yaml"},
			wantCode:   ExitUsage,
			wantStderr: "unexpected arguments",
		},
		{
			name:       "unknown flag",
			args:       []string{"--strict"},
			wantCode:   ExitUsage,
			wantStderr: "unknown flag",
		},
		{
			name:       "missing config",
			args:       []string{"--config", "/nonexistent/carte.yaml"},
			wantCode:   ExitUsage,
			wantStderr: "loading config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(nil)
			code := runInitCmd(tt.args, env.Environment)
			if code != tt.wantCode {
				t.Errorf("exit = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want substring %q", env.stderr.String(), tt.wantStderr)
			}
			if env.stdout.Len() != 0 {
				t.Errorf("stdout = %q, want empty", env.stdout.String())
			}
		})
	}
}

func TestRunInitCmd_Help(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)
	if code := runInitCmd([]string{"--help"}, env.Environment); code != ExitSuccess {
		t.Errorf("exit = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(env.stdout.String(), "--template") {
		t.Errorf("help output missing --template:\n%s", env.stdout.String())
	}
}

func TestCountItems(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "std.yaml")
	env := newTestEnv(nil)
	if code := runInitCmd([]string{"-q", "-o", path}, env.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d; stderr: %s", code, env.stderr)
	}
	if env.stdout.Len() != 0 {
		t.Errorf("quiet init printed %q", env.stdout.String())
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
	rec, err := readRecord(path)
	if err != nil {
		t.Fatalf("readRecord() error = %v", err)
	}
	if got := countItems(rec); got != 47 {
		t.Errorf("countItems() = %d, want 47 (standard template)", got)
	}
}
