package carte

import (
	"fmt"
	"time"

	"github.com/dendoesit/carte/internal/dateutil"
)

// ResolveDate handles "auto" and "auto:FORMAT" syntax for the title page date.
// - "auto" → t as DD.MM.YYYY
// - "auto:FORMAT" → t in a custom format (e.g., "auto:D MMMM YYYY" → "5 martie 2024")
// - "auto:preset" → t using a named preset (iso, ro, european, long)
// - any other value → returned unchanged (passthrough)
//
// Month names are Romanian. The time parameter allows injecting a fixed
// time for testing.
func ResolveDate(value string, t time.Time) (string, error) {
	s, err := dateutil.ResolveDate(value, t)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDate, err)
	}
	return s, nil
}
