package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadChecklist loads a built-in checklist template by name.
// Returns ErrTemplateNotFound if the template does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadChecklist(name string) (*Checklist, error) {
	return defaultLoader.LoadChecklist(name)
}

// Names lists the built-in checklist templates.
func Names() ([]string, error) {
	return defaultLoader.Names()
}
