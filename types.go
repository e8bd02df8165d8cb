package carte

import (
	"fmt"
	"strings"

	"github.com/dendoesit/carte/internal/attachment"
)

// CategoryKey identifies one of the four fixed documentation sections.
type CategoryKey string

// Category keys in canonical emission order.
const (
	CategoryDesign     CategoryKey = "design"
	CategoryExecution  CategoryKey = "execution"
	CategoryReception  CategoryKey = "reception"
	CategoryMonitoring CategoryKey = "monitoring"
)

// CategoryKeys lists every category in canonical order.
var CategoryKeys = []CategoryKey{CategoryDesign, CategoryExecution, CategoryReception, CategoryMonitoring}

// Record limits.
const (
	MaxFieldLength       = 500    // scalar metadata
	MaxDescriptionLength = 20_000 // Markdown description
	MaxIDLength          = 100
	MaxLabelLength       = 500
	MaxLocatorLength     = 4096
	MaxItemsPerCategory  = 500
)

// ProjectRecord is the input of an export. Every field is optional; empty
// values are left out of the document.
type ProjectRecord struct {
	Name               string     `yaml:"name" json:"name"`
	Description        string     `yaml:"description,omitempty" json:"description,omitempty"` // Markdown
	ConstructionName   string     `yaml:"constructionName,omitempty" json:"constructionName,omitempty"`
	Address            string     `yaml:"address,omitempty" json:"address,omitempty"`
	Beneficiary        string     `yaml:"beneficiary,omitempty" json:"beneficiary,omitempty"`
	BeneficiaryAddress string     `yaml:"beneficiaryAddress,omitempty" json:"beneficiaryAddress,omitempty"`
	County             string     `yaml:"county,omitempty" json:"county,omitempty"`
	Designer           string     `yaml:"designer,omitempty" json:"designer,omitempty"`
	Builder            string     `yaml:"builder,omitempty" json:"builder,omitempty"`
	PermitNumber       string     `yaml:"permitNumber,omitempty" json:"permitNumber,omitempty"`
	PermitDate         string     `yaml:"permitDate,omitempty" json:"permitDate,omitempty"`
	ExecutionTerm      string     `yaml:"executionTerm,omitempty" json:"executionTerm,omitempty"`
	ISCNoticeNumber    string     `yaml:"iscNoticeNumber,omitempty" json:"iscNoticeNumber,omitempty"`
	ISCNoticeDate      string     `yaml:"iscNoticeDate,omitempty" json:"iscNoticeDate,omitempty"`
	ReceptionDate      string     `yaml:"receptionDate,omitempty" json:"receptionDate,omitempty"`
	SiteAddress        string     `yaml:"siteAddress,omitempty" json:"siteAddress,omitempty"`
	Categories         Categories `yaml:"categories" json:"categories"`
}

// Categories holds the checklist of each section.
type Categories struct {
	Design     []ChecklistItem `yaml:"design" json:"design"`
	Execution  []ChecklistItem `yaml:"execution" json:"execution"`
	Reception  []ChecklistItem `yaml:"reception" json:"reception"`
	Monitoring []ChecklistItem `yaml:"monitoring" json:"monitoring"`
}

// Items returns the checklist of key, or nil for an unknown key.
func (c *Categories) Items(key CategoryKey) []ChecklistItem {
	if p := c.slot(key); p != nil {
		return *p
	}
	return nil
}

func (c *Categories) slot(key CategoryKey) *[]ChecklistItem {
	switch key {
	case CategoryDesign:
		return &c.Design
	case CategoryExecution:
		return &c.Execution
	case CategoryReception:
		return &c.Reception
	case CategoryMonitoring:
		return &c.Monitoring
	}
	return nil
}

// ChecklistItem is a named unit of documentation. Only included items are
// emitted.
type ChecklistItem struct {
	ID         string      `yaml:"id" json:"id"`
	Label      string      `yaml:"label" json:"label"`
	Included   bool        `yaml:"included" json:"included"`
	Attachment *Attachment `yaml:"attachment,omitempty" json:"attachment,omitempty"`
}

// Attachment is the PDF of a checklist item. Exactly one of Data, Path and
// URL must be set. URL accepts http(s):// and s3:// locators; Path is
// resolved against Input.BaseDir when relative.
type Attachment struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	Data []byte `yaml:"-" json:"-"`
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
	URL  string `yaml:"url,omitempty" json:"url,omitempty"`
}

func (a *Attachment) source() *attachment.Source {
	if a == nil {
		return nil
	}
	return &attachment.Source{Name: a.Name, Data: a.Data, Path: a.Path, URL: a.URL}
}

// Validate checks lengths, item ids and attachment sources.
// Called automatically by Assembler.Assemble, but available for callers
// that want to reject a record before queueing an export.
func (r *ProjectRecord) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidRecord)
	}

	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"name", r.Name, MaxFieldLength},
		{"description", r.Description, MaxDescriptionLength},
		{"constructionName", r.ConstructionName, MaxFieldLength},
		{"address", r.Address, MaxFieldLength},
		{"beneficiary", r.Beneficiary, MaxFieldLength},
		{"beneficiaryAddress", r.BeneficiaryAddress, MaxFieldLength},
		{"county", r.County, MaxFieldLength},
		{"designer", r.Designer, MaxFieldLength},
		{"builder", r.Builder, MaxFieldLength},
		{"permitNumber", r.PermitNumber, MaxFieldLength},
		{"permitDate", r.PermitDate, MaxFieldLength},
		{"executionTerm", r.ExecutionTerm, MaxFieldLength},
		{"iscNoticeNumber", r.ISCNoticeNumber, MaxFieldLength},
		{"iscNoticeDate", r.ISCNoticeDate, MaxFieldLength},
		{"receptionDate", r.ReceptionDate, MaxFieldLength},
		{"siteAddress", r.SiteAddress, MaxFieldLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	for _, key := range CategoryKeys {
		if err := validateItems(key, r.Categories.Items(key)); err != nil {
			return err
		}
	}
	return nil
}

func validateItems(key CategoryKey, items []ChecklistItem) error {
	if len(items) > MaxItemsPerCategory {
		return fmt.Errorf("%w: %w: categories.%s has %d items, max %d", ErrInvalidRecord, ErrTooManyItems, key, len(items), MaxItemsPerCategory)
	}

	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		path := fmt.Sprintf("categories.%s[%d]", key, i)
		if strings.TrimSpace(item.ID) == "" {
			return fmt.Errorf("%w: %w: %s", ErrInvalidRecord, ErrMissingItemID, path)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: %w: %s: %q", ErrInvalidRecord, ErrDuplicateItemID, path, item.ID)
		}
		seen[item.ID] = struct{}{}

		if err := validateFieldLength(path+".id", item.ID, MaxIDLength); err != nil {
			return err
		}
		if err := validateFieldLength(path+".label", item.Label, MaxLabelLength); err != nil {
			return err
		}
		if item.Attachment == nil {
			continue
		}
		if err := validateFieldLength(path+".attachment.name", item.Attachment.Name, MaxLabelLength); err != nil {
			return err
		}
		if err := validateFieldLength(path+".attachment.path", item.Attachment.Path, MaxLocatorLength); err != nil {
			return err
		}
		if err := validateFieldLength(path+".attachment.url", item.Attachment.URL, MaxLocatorLength); err != nil {
			return err
		}
		if err := item.Attachment.source().Validate(); err != nil {
			return fmt.Errorf("%w: %w: %s: %v", ErrInvalidRecord, ErrInvalidAttachment, path, err)
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %w: %s (%d chars, max %d)", ErrInvalidRecord, ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}
