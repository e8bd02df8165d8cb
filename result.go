package carte

import "github.com/dendoesit/carte/internal/pipeline"

// Input is one export request.
type Input struct {
	Record  *ProjectRecord
	BaseDir string // resolves relative attachment paths; empty = working directory
	Date    string // title page date: "auto", "auto:FORMAT" or literal; empty = "auto"
}

// Result is a complete document and what happened while building it.
type Result struct {
	PDF      []byte
	Pages    int
	Failures []AttachmentFailure
	Order    []PageRef      // final page order; Order[i] is page i+1
	Index    []IndexSection // borderou contents with final page numbers
	ExportID string
}

// AttachmentFailure describes an attachment that was not embedded.
type AttachmentFailure struct {
	Category  CategoryKey
	ItemID    string
	ItemLabel string
	Kind      string // fetch-failed, empty, bad-header, unparseable, zero-pages
	Reason    string // text printed on the item page
	Err       error  // wraps one of ErrFetchFailed ... ErrZeroPages
}

// PageSource tells which intermediate document a final page comes from.
type PageSource int

// Page sources.
const (
	SourceContent PageSource = pipeline.SourceStaging // title, general data, sections, attachments
	SourceIndex   PageSource = pipeline.SourceIndex   // borderou pages
)

// PageRef locates a final page in its intermediate document (0-based).
type PageRef struct {
	Source PageSource
	Page   int
}

// PageRange is a half-open span of 0-based page indices.
type PageRange struct {
	Start int
	End   int
}

// TocLevel is the indentation level of a borderou row.
type TocLevel int

// Borderou row levels.
const (
	LevelSection TocLevel = TocLevel(pipeline.LevelSection) // checklist item
	LevelSubItem TocLevel = TocLevel(pipeline.LevelSubItem) // embedded attachment
)

// TocEntry is a borderou row. Page is the 1-based final page number.
type TocEntry struct {
	Level TocLevel
	Name  string
	Page  int
}

// IndexSection is the borderou of one emitted category. Ranges are
// 0-based positions in the final document.
type IndexSection struct {
	Category CategoryKey
	Ordinal  int
	Title    string
	Borderou PageRange
	Content  PageRange // banner, item pages and attachments
	Entries  []TocEntry
}

func toFailures(in []pipeline.Failure) []AttachmentFailure {
	if len(in) == 0 {
		return nil
	}
	out := make([]AttachmentFailure, len(in))
	for i, f := range in {
		out[i] = AttachmentFailure{
			Category:  CategoryKey(f.Category.Key()),
			ItemID:    f.ItemID,
			ItemLabel: f.ItemLabel,
			Kind:      string(f.Err.Kind),
			Reason:    f.Err.Reason(),
			Err:       f.Err,
		}
	}
	return out
}

func toOrder(plan *pipeline.Plan) []PageRef {
	out := make([]PageRef, len(plan.Order))
	for i, ref := range plan.Order {
		out[i] = PageRef{Source: PageSource(ref.Part), Page: ref.Page}
	}
	return out
}

// toIndex maps the compiled borderou onto final positions. Sections appear
// in plan order, each as its borderou pages followed by its content.
func toIndex(st *pipeline.Staging, ix pipeline.Index, plan *pipeline.Plan) []IndexSection {
	if len(ix.Sections) == 0 {
		return nil
	}

	// Final position of each borderou page, in borderou order.
	var tocAt []int
	for pos, ref := range plan.Order {
		if ref.Part == pipeline.SourceIndex {
			tocAt = append(tocAt, pos)
		}
	}

	out := make([]IndexSection, len(ix.Sections))
	toc := 0
	for i, s := range ix.Sections {
		content := st.Sections[i].Range
		sec := IndexSection{
			Category: CategoryKey(s.Category.Key()),
			Ordinal:  s.Ordinal,
			Title:    s.Category.Title(),
			Borderou: PageRange{Start: tocAt[toc], End: tocAt[toc] + s.Pages},
			Content:  PageRange{Start: plan.FinalNumber(content.Start) - 1, End: plan.FinalNumber(content.End-1)},
			Entries:  make([]TocEntry, len(s.Rows)),
		}
		for j, row := range s.Rows {
			sec.Entries[j] = TocEntry{Level: TocLevel(row.Level), Name: row.Name, Page: plan.FinalNumber(row.Page)}
		}
		out[i] = sec
		toc += s.Pages
	}
	return out
}
