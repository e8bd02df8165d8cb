package render

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
)

// Notes:
// - Fixtures are generated with the same writer used in production so
//   the tests need no binary testdata.
// - Page identity after Compose is checked through text extraction: each
//   fixture page carries a unique marker word.

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

// markedDoc returns an A4 document whose page i shows markers[i].
func markedDoc(t *testing.T, markers ...string) []byte {
	t.Helper()

	c := NewCanvas(Metadata{Title: "fixture", Created: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)})
	for _, m := range markers {
		c.AddPage()
		c.SetFont(Bold, 20)
		c.Text(72, 100, m)
	}
	data, err := c.Bytes()
	if err != nil {
		t.Fatalf("building fixture: %v", err)
	}
	return data
}

// letterDoc returns a one-page US Letter document.
func letterDoc(t *testing.T) []byte {
	t.Helper()

	pdf := fpdf.NewCustom(&fpdf.InitType{UnitStr: "pt", Size: fpdf.SizeType{Wd: 612, Ht: 792}})
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(72, 72, "LETTERPAGE")

	var sb strings.Builder
	if err := pdf.Output(&sb); err != nil {
		t.Fatalf("building letter fixture: %v", err)
	}
	return []byte(sb.String())
}

func compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// ---------------------------------------------------------------------------
// TestCanvas - Drawing and serialization
// ---------------------------------------------------------------------------

func TestCanvas_Bytes(t *testing.T) {
	t.Parallel()

	data := markedDoc(t, "ALPHA", "BETA")

	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Fatalf("output does not start with PDF header")
	}

	sizes, err := Inspect(data)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if len(sizes) != 2 {
		t.Fatalf("Inspect() pages = %d, want 2", len(sizes))
	}
	for i, s := range sizes {
		if math.Abs(s.Width-A4Width) > 0.5 || math.Abs(s.Height-A4Height) > 0.5 {
			t.Errorf("page %d size = %+v, want A4", i+1, s)
		}
	}
}

func TestCanvas_NormalizesText(t *testing.T) {
	t.Parallel()

	c := NewCanvas(Metadata{})
	c.AddPage()
	c.SetFont(Regular, 12)

	if got, want := c.Width("Țară"), c.Width("Tara"); got != want {
		t.Errorf("Width(\"Țară\") = %v, want %v (width of folded text)", got, want)
	}

	c.Text(50, 100, "ȘANTIER")
	data, err := c.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	text, err := PageText(data, 1)
	if err != nil {
		t.Fatalf("PageText() error = %v", err)
	}
	if !strings.Contains(compact(text), "SANTIER") {
		t.Errorf("PageText() = %q, want folded text SANTIER", text)
	}
}

func TestCanvas_Measure(t *testing.T) {
	t.Parallel()

	c := NewCanvas(Metadata{})
	c.AddPage()

	small := c.Measure(Regular, 10)("Borderou")
	large := c.Measure(Regular, 20)("Borderou")

	if small <= 0 {
		t.Fatalf("Measure() width = %v, want positive", small)
	}
	if math.Abs(large-2*small) > 0.01 {
		t.Errorf("Measure() at 20pt = %v, want twice %v", large, small)
	}
}

// ---------------------------------------------------------------------------
// TestCompose - Merge and reorder
// ---------------------------------------------------------------------------

func TestCompose(t *testing.T) {
	t.Parallel()

	first := markedDoc(t, "AONE", "ATWO")
	second := markedDoc(t, "BONE")

	parts := []Part{{PDF: first, Pages: 2}, {PDF: second, Pages: 1}}
	order := []PageRef{{Part: 1, Page: 0}, {Part: 0, Page: 1}, {Part: 0, Page: 0}}

	out, err := Compose(parts, order)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	n, err := CountPages(out)
	if err != nil {
		t.Fatalf("CountPages() error = %v", err)
	}
	if n != 3 {
		t.Fatalf("CountPages() = %d, want 3", n)
	}

	want := []string{"BONE", "ATWO", "AONE"}
	for i, marker := range want {
		text, err := PageText(out, i+1)
		if err != nil {
			t.Fatalf("PageText(%d) error = %v", i+1, err)
		}
		if !strings.Contains(compact(text), marker) {
			t.Errorf("page %d text = %q, want marker %s", i+1, text, marker)
		}
	}
}

func TestCompose_PreservesPageSize(t *testing.T) {
	t.Parallel()

	parts := []Part{{PDF: markedDoc(t, "A4PAGE"), Pages: 1}, {PDF: letterDoc(t), Pages: 1}}
	out, err := Compose(parts, []PageRef{{Part: 0, Page: 0}, {Part: 1, Page: 0}})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	sizes, err := Inspect(out)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if len(sizes) != 2 {
		t.Fatalf("Inspect() pages = %d, want 2", len(sizes))
	}
	if math.Abs(sizes[1].Width-612) > 0.5 || math.Abs(sizes[1].Height-792) > 0.5 {
		t.Errorf("letter page size = %+v, want 612x792", sizes[1])
	}
}

func TestCompose_Errors(t *testing.T) {
	t.Parallel()

	doc := markedDoc(t, "ONLY")

	tests := []struct {
		name  string
		parts []Part
		order []PageRef
	}{
		{name: "no parts", parts: nil, order: []PageRef{{}}},
		{name: "empty order", parts: []Part{{PDF: doc, Pages: 1}}, order: nil},
		{name: "page out of range", parts: []Part{{PDF: doc, Pages: 1}}, order: []PageRef{{Part: 0, Page: 1}}},
		{name: "part out of range", parts: []Part{{PDF: doc, Pages: 1}}, order: []PageRef{{Part: 2, Page: 0}}},
		{name: "garbage part", parts: []Part{{PDF: []byte("not a pdf"), Pages: 1}}, order: []PageRef{{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Compose(tt.parts, tt.order)
			if !errors.Is(err, ErrCompose) {
				t.Errorf("Compose() error = %v, want ErrCompose", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestInspect - Page inventory
// ---------------------------------------------------------------------------

func TestInspect_Errors(t *testing.T) {
	t.Parallel()

	inputs := map[string][]byte{
		"empty":     {},
		"garbage":   []byte("hello world, definitely not a PDF document"),
		"truncated": []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog"),
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := Inspect(data); !errors.Is(err, ErrInspect) {
				t.Errorf("Inspect() error = %v, want ErrInspect", err)
			}
		})
	}
}

func TestPageText_OutOfRange(t *testing.T) {
	t.Parallel()

	_, err := PageText(markedDoc(t, "ONE"), 2)
	if !errors.Is(err, ErrInspect) {
		t.Errorf("PageText() error = %v, want ErrInspect", err)
	}
}
