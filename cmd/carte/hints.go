package main

import (
	"errors"

	"github.com/dendoesit/carte"
	"github.com/dendoesit/carte/internal/config"
	"github.com/dendoesit/carte/internal/hints"
)

// hintFor returns an actionable hint for a command error, or "".
func hintFor(err error, configName string) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		if configName == "" {
			configName = config.DefaultName
		}
		return hints.ForConfigNotFound(config.SearchPaths(configName))
	case errors.Is(err, carte.ErrInvalidRecord), errors.Is(err, ErrParseRecord):
		return hints.ForInvalidRecord()
	case errors.Is(err, ErrWritePDF):
		return hints.ForOutputDirectory()
	case errors.Is(err, carte.ErrTemplateNotFound):
		names, _ := carte.Templates("")
		return hints.ForTemplateNotFound(names)
	}
	return ""
}
