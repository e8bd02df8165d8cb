package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrCompose indicates documents could not be merged or reordered.
var ErrCompose = errors.New("PDF composition failed")

var disableConfigDir sync.Once

// pdfcpuConfig returns a fresh relaxed configuration that never touches the
// user's pdfcpu config directory.
func pdfcpuConfig() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Part is one source document and its page count.
type Part struct {
	PDF   []byte
	Pages int
}

// PageRef addresses a 0-based page of a Part.
type PageRef struct {
	Part int
	Page int
}

// Compose writes a new document holding exactly the referenced pages, in
// order. Source documents are never modified. Page sizes are preserved.
func Compose(parts []Part, order []PageRef) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: internal error: %v", ErrCompose, r)
		}
	}()

	if len(parts) == 0 || len(order) == 0 {
		return nil, fmt.Errorf("%w: nothing to compose", ErrCompose)
	}

	offsets := make([]int, len(parts))
	total := 0
	for i, p := range parts {
		offsets[i] = total
		total += p.Pages
	}

	selected := make([]string, len(order))
	for i, ref := range order {
		if ref.Part < 0 || ref.Part >= len(parts) || ref.Page < 0 || ref.Page >= parts[ref.Part].Pages {
			return nil, fmt.Errorf("%w: page %d of part %d out of range", ErrCompose, ref.Page, ref.Part)
		}
		selected[i] = strconv.Itoa(offsets[ref.Part] + ref.Page + 1)
	}

	merged, err := merge(parts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := api.Collect(bytes.NewReader(merged), &buf, selected, pdfcpuConfig()); err != nil {
		return nil, fmt.Errorf("%w: collecting pages: %v", ErrCompose, err)
	}
	return buf.Bytes(), nil
}

// merge concatenates all parts into one document.
func merge(parts []Part) ([]byte, error) {
	if len(parts) == 1 {
		return parts[0].PDF, nil
	}

	readers := make([]io.ReadSeeker, len(parts))
	for i, p := range parts {
		readers[i] = bytes.NewReader(p.PDF)
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, pdfcpuConfig()); err != nil {
		return nil, fmt.Errorf("%w: merging %d documents: %v", ErrCompose, len(parts), err)
	}
	return buf.Bytes(), nil
}

// CountPages parses data the way Compose will and returns its page count.
// Documents rejected here cannot be composed.
func CountPages(data []byte) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("%w: internal error: %v", ErrCompose, r)
		}
	}()

	n, err = api.PageCount(bytes.NewReader(data), pdfcpuConfig())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCompose, err)
	}
	return n, nil
}
