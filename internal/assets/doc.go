// Package assets provides the checklist templates used to seed new records.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	ChecklistLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in templates)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in templates (standard, minimal)
// embedded at compile time.
//
// FilesystemLoader allows users to provide their own templates from a
// directory, with path traversal protection and symlink resolution.
//
// AssetResolver is the loader used by "carte init". It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the template
// is not found, so a directory can override one template and keep the rest.
//
// # Directory Structure
//
//	{basePath}/
//	└── templates/
//	    └── {name}.yaml          # checklist template (e.g., standard.yaml)
//
// A template lists checklist items per category:
//
//	name: standard
//	description: ...
//	design:
//	  - id: pte
//	    label: Proiect tehnic de executie
//	execution: [...]
//	reception: [...]
//	monitoring: [...]
//
// # Security
//
// Template names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
