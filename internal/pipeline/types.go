package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/dendoesit/carte/internal/attachment"
)

// Fatal pipeline errors. Attachment problems are never fatal.
var (
	ErrStaging       = errors.New("staging document could not be built")
	ErrSerialization = errors.New("final document could not be serialized")
)

// Category is one of the four fixed documentation sections.
type Category int

// Categories in canonical emission order.
const (
	Design Category = iota
	Execution
	Reception
	Monitoring
)

// NumCategories is the number of fixed categories.
const NumCategories = 4

// Categories lists every category in canonical order.
var Categories = [NumCategories]Category{Design, Execution, Reception, Monitoring}

var categoryKeys = [NumCategories]string{"design", "execution", "reception", "monitoring"}

var categoryTitles = [NumCategories]string{
	"Documentație de proiectare",
	"Documentație de execuție",
	"Documentație de recepție",
	"Urmărirea în timp a construcției",
}

// Key returns the stable identifier of c.
func (c Category) Key() string {
	if c < 0 || int(c) >= NumCategories {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryKeys[c]
}

// Title returns the section heading of c.
func (c Category) Title() string {
	if c < 0 || int(c) >= NumCategories {
		return c.Key()
	}
	return categoryTitles[c]
}

func (c Category) String() string { return c.Key() }

// Field is a label/value row of generated text.
type Field struct {
	Label string
	Value string
}

// Item is an included checklist item. Excluded items never reach the
// pipeline.
type Item struct {
	ID         string
	Label      string
	Attachment *attachment.Source
}

// Project is everything the stager draws for one export.
type Project struct {
	Title    string
	Subtitle string
	Name     string
	Date     string
	Created  time.Time
	Details  []Field // title page block
	General  []Field // general-data pages
	Sections [NumCategories][]Item
}

// PageRange is a half-open span of 0-based staging page indices.
type PageRange struct {
	Start int
	End   int
}

// Len returns the number of pages in r.
func (r PageRange) Len() int { return r.End - r.Start }

// Empty reports whether r holds no page.
func (r PageRange) Empty() bool { return r.End <= r.Start }

// TocLevel is the indentation level of a TOC row.
type TocLevel int

// TOC levels.
const (
	LevelSection TocLevel = iota // checklist item heading
	LevelSubItem                 // embedded attachment
)

// TocEntry points a TOC row at a staging page.
type TocEntry struct {
	Level TocLevel
	Name  string
	Page  int // staging page index
}

// StagedSection describes a category that produced output.
type StagedSection struct {
	Category Category
	Ordinal  int
	Range    PageRange // banner, item headings and attachment pages
	Entries  []TocEntry
}

// Failure records an attachment that could not be embedded.
type Failure struct {
	Category  Category
	ItemID    string
	ItemLabel string
	Err       *attachment.Error
}

// Unit identifiers used as keys of Staging.Ranges.
const (
	UnitTitle   = "title"
	UnitGeneral = "general"
)

// ItemUnit returns the range key of an item heading plus its attachment.
func ItemUnit(c Category, itemID string) string {
	return c.Key() + "/" + itemID
}

// AttachmentUnit returns the range key of an embedded attachment.
func AttachmentUnit(c Category, itemID string) string {
	return ItemUnit(c, itemID) + "/attachment"
}

// Staging is the working document and everything recorded while building
// it. Ranges cover [0, Pages) without overlap in the order title, general,
// then sections.
type Staging struct {
	PDF      []byte
	Pages    int
	Title    PageRange
	General  PageRange
	Sections []StagedSection
	Ranges   map[string]PageRange
	Failures []Failure
}
