package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that a template name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty or contains path separators,
// dots (which could allow extension manipulation), or traversal characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// validateChecklist rejects templates with missing ids or labels, and ids
// repeated inside one category.
func validateChecklist(c *Checklist) error {
	if c.Len() == 0 {
		return fmt.Errorf("%w: %q has no items", ErrInvalidTemplate, c.Name)
	}
	categories := []struct {
		key   string
		items []ChecklistItem
	}{
		{"design", c.Design},
		{"execution", c.Execution},
		{"reception", c.Reception},
		{"monitoring", c.Monitoring},
	}
	for _, cat := range categories {
		seen := make(map[string]struct{}, len(cat.items))
		for i, item := range cat.items {
			if strings.TrimSpace(item.ID) == "" {
				return fmt.Errorf("%w: %q %s[%d]: empty id", ErrInvalidTemplate, c.Name, cat.key, i)
			}
			if strings.TrimSpace(item.Label) == "" {
				return fmt.Errorf("%w: %q %s[%d]: empty label", ErrInvalidTemplate, c.Name, cat.key, i)
			}
			if _, dup := seen[item.ID]; dup {
				return fmt.Errorf("%w: %q %s: duplicate id %q", ErrInvalidTemplate, c.Name, cat.key, item.ID)
			}
			seen[item.ID] = struct{}{}
		}
	}
	return nil
}
