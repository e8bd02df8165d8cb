package assets

// ChecklistLoader defines the contract for loading checklist templates.
type ChecklistLoader interface {
	// LoadChecklist loads a template by name (without .yaml extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	// Returns ErrInvalidTemplate if the file does not decode to a valid checklist.
	LoadChecklist(name string) (*Checklist, error)

	// Names lists the templates this loader can serve, sorted.
	Names() ([]string, error)
}
