package main

import (
	"errors"
	"os"

	"github.com/dendoesit/carte"
	"github.com/dendoesit/carte/internal/config"
)

// Exit codes for the carte CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // Every record exported
	ExitGeneral    = 1 // General/unexpected error
	ExitUsage      = 2 // Invalid flags, config, or record
	ExitIO         = 3 // File not found, permission denied
	ExitAttachment = 4 // Attachment not embedded (--strict only)
	ExitAssembly   = 5 // Document could not be assembled
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Assembly errors (exit 5)
	if errors.Is(err, carte.ErrStagingFailure) ||
		errors.Is(err, carte.ErrSerializationFailure) {
		return ExitAssembly
	}

	// Attachment errors (exit 4)
	if errors.Is(err, ErrAttachmentsMissing) {
		return ExitAttachment
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, carte.ErrInvalidRecord) ||
		errors.Is(err, carte.ErrInvalidDate) ||
		errors.Is(err, carte.ErrTemplateNotFound) ||
		errors.Is(err, ErrParseRecord) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrStdoutMultiple) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrRecordExists) ||
		errors.Is(err, ErrUnexpectedArgs) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadRecord) ||
		errors.Is(err, ErrWritePDF) {
		return ExitIO
	}

	return ExitGeneral
}
