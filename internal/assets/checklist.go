package assets

import (
	"fmt"

	"github.com/dendoesit/carte/internal/yamlutil"
)

// DefaultTemplateName is the name of the built-in template used by "carte init".
const DefaultTemplateName = "standard"

// maxTemplateSize bounds template files; the built-in ones are a few KB.
const maxTemplateSize = 256 * 1024

// ChecklistItem is one entry of a template category.
type ChecklistItem struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// Checklist is a decoded checklist template.
type Checklist struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description,omitempty"`
	Design      []ChecklistItem `yaml:"design"`
	Execution   []ChecklistItem `yaml:"execution"`
	Reception   []ChecklistItem `yaml:"reception"`
	Monitoring  []ChecklistItem `yaml:"monitoring"`
}

// Len returns the number of items across all categories.
func (c *Checklist) Len() int {
	return len(c.Design) + len(c.Execution) + len(c.Reception) + len(c.Monitoring)
}

// parseChecklist decodes a template strictly and validates it.
// An empty name field is filled with the name the template was loaded by.
func parseChecklist(name string, data []byte) (*Checklist, error) {
	var c Checklist
	if err := yamlutil.UnmarshalStrict(data, &c, yamlutil.WithMaxSize(maxTemplateSize)); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTemplate, name, err)
	}
	if c.Name == "" {
		c.Name = name
	}
	if err := validateChecklist(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
