package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/dendoesit/carte"
	"github.com/dendoesit/carte/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "unknown error", err: errors.New("boom"), want: ExitGeneral},
		{name: "staging failure", err: fmt.Errorf("bloc-a.yaml: %w", carte.ErrStagingFailure), want: ExitAssembly},
		{name: "serialization failure", err: fmt.Errorf("x: %w", carte.ErrSerializationFailure), want: ExitAssembly},
		{name: "attachments missing", err: fmt.Errorf("%w: 3", ErrAttachmentsMissing), want: ExitAttachment},
		{name: "config not found", err: fmt.Errorf("loading config: %w", config.ErrConfigNotFound), want: ExitUsage},
		{name: "config parse", err: config.ErrConfigParse, want: ExitUsage},
		{name: "config invalid value", err: config.ErrInvalidValue, want: ExitUsage},
		{name: "invalid record", err: fmt.Errorf("%w: %w", carte.ErrInvalidRecord, carte.ErrDuplicateItemID), want: ExitUsage},
		{name: "invalid date", err: carte.ErrInvalidDate, want: ExitUsage},
		{name: "template not found", err: carte.ErrTemplateNotFound, want: ExitUsage},
		{name: "parse record", err: ErrParseRecord, want: ExitUsage},
		{name: "no input", err: ErrNoInput, want: ExitUsage},
		{name: "stdout multiple", err: ErrStdoutMultiple, want: ExitUsage},
		{name: "worker count", err: ErrInvalidWorkerCount, want: ExitUsage},
		{name: "timeout", err: ErrInvalidTimeout, want: ExitUsage},
		{name: "record exists", err: ErrRecordExists, want: ExitUsage},
		{name: "unexpected args", err: ErrUnexpectedArgs, want: ExitUsage},
		{name: "not exist", err: &fs.PathError{Op: "open", Path: "x", Err: os.ErrNotExist}, want: ExitIO},
		{name: "permission", err: os.ErrPermission, want: ExitIO},
		{name: "read record", err: fmt.Errorf("%w: %w", ErrReadRecord, os.ErrNotExist), want: ExitIO},
		{name: "write pdf", err: fmt.Errorf("%w: disk full", ErrWritePDF), want: ExitIO},
		{
			name: "batch wraps first error",
			err:  fmt.Errorf("2 of 3 export(s) failed: %w", fmt.Errorf("a.yaml: %w", carte.ErrStagingFailure)),
			want: ExitAssembly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
