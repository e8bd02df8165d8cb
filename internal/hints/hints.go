// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/dendoesit/carte/internal/fileutil"
)

// HasSharedCredentials detects an AWS shared credentials file.
var HasSharedCredentials = func() bool {
	if path := os.Getenv("AWS_SHARED_CREDENTIALS_FILE"); path != "" {
		return fileutil.FileExists(path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return false
	}
	return fileutil.FileExists(home + "/.aws/credentials")
}

// ForS3Access returns hints for S3 attachment failures.
// Suggests the environment variables the AWS SDK reads when none is set.
func ForS3Access() string {
	var hints []string

	if os.Getenv("AWS_REGION") == "" && os.Getenv("AWS_DEFAULT_REGION") == "" && os.Getenv("CARTE_S3_REGION") == "" {
		hints = append(hints, "set AWS_REGION or --s3-region")
	}

	hasKeys := os.Getenv("AWS_ACCESS_KEY_ID") != "" || os.Getenv("AWS_PROFILE") != ""
	if !hasKeys && !HasSharedCredentials() {
		hints = append(hints, "set AWS_PROFILE or AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing the per-attachment timeout.
func ForTimeout() string {
	return format("for slow storage or large attachments, use --timeout")
}

// ForAttachmentFailures returns a hint when some attachments were not
// embedded but the export still succeeded.
func ForAttachmentFailures(strict bool) string {
	if strict {
		return format("the document was written; failing because --strict is set")
	}
	return format("affected items show the reason on their page; use --strict to fail instead")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/carte/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/carte") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForInvalidRecord returns a hint for records that fail to decode or validate.
func ForInvalidRecord() string {
	return format("run 'carte init' to generate a valid record skeleton")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForTemplateNotFound returns hints for unknown checklist templates.
func ForTemplateNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
