package carte

import (
	"errors"
	"fmt"

	"github.com/dendoesit/carte/internal/assets"
)

// DefaultTemplate is the checklist template used when none is named.
const DefaultTemplate = assets.DefaultTemplateName

// NewItemLabel is the label given to items added by hand.
const NewItemLabel = "Document nou"

// DefaultChecklists returns a record skeleton holding every item of a
// built-in checklist template, all excluded. Templates: "standard",
// "minimal".
func DefaultChecklists(template string) (*ProjectRecord, error) {
	return ChecklistsFrom("", template)
}

// ChecklistsFrom is DefaultChecklists with templates read from
// dir/templates/<name>.yaml first, falling back to the built-in ones.
func ChecklistsFrom(dir, template string) (*ProjectRecord, error) {
	if template == "" {
		template = DefaultTemplate
	}

	resolver, err := assets.NewAssetResolver(dir)
	if err != nil {
		return nil, fmt.Errorf("loading checklist templates: %w", err)
	}
	c, err := resolver.LoadChecklist(template)
	if err != nil {
		if errors.Is(err, assets.ErrTemplateNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, template)
		}
		return nil, fmt.Errorf("loading checklist template: %w", err)
	}

	return &ProjectRecord{
		Categories: Categories{
			Design:     checklistItems(c.Design),
			Execution:  checklistItems(c.Execution),
			Reception:  checklistItems(c.Reception),
			Monitoring: checklistItems(c.Monitoring),
		},
	}, nil
}

// Templates lists the checklist templates available from dir and the
// built-in set.
func Templates(dir string) ([]string, error) {
	resolver, err := assets.NewAssetResolver(dir)
	if err != nil {
		return nil, fmt.Errorf("loading checklist templates: %w", err)
	}
	return resolver.Names()
}

// NewItem returns an included custom item with the default label.
func NewItem(id string) ChecklistItem {
	return ChecklistItem{ID: id, Label: NewItemLabel, Included: true}
}

func checklistItems(in []assets.ChecklistItem) []ChecklistItem {
	out := make([]ChecklistItem, len(in))
	for i, item := range in {
		out[i] = ChecklistItem{ID: item.ID, Label: item.Label}
	}
	return out
}
