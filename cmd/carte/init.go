package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/dendoesit/carte"
	"github.com/dendoesit/carte/internal/fileutil"
	"github.com/dendoesit/carte/internal/yamlutil"
)

// Sentinel errors for the init command.
var (
	ErrRecordExists   = errors.New("record file already exists")
	ErrUnexpectedArgs = errors.New("unexpected arguments")
)

// runInitCmd runs the init command and returns its exit code.
func runInitCmd(args []string, env *Environment) int {
	flags, positional, err := parseInitFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printInitUsage(env.Stdout)
		return ExitSuccess
	}
	if err == nil && len(positional) > 0 {
		err = fmt.Errorf("%w: %v", ErrUnexpectedArgs, positional)
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printInitUsage(env.Stderr)
		return ExitUsage
	}

	warnUnknownEnvVars(env)

	if err := runInit(flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, flags.common.config))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runInit writes a record skeleton holding every item of a checklist
// template, all excluded.
func runInit(flags *initFlags, env *Environment) error {
	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyEnvConfig(envCfg, cfg)

	template := flags.template
	if template == "" {
		template = cfg.Templates.Default
	}
	dir := flags.templates
	if dir == "" {
		dir = cfg.Templates.BasePath
	}

	rec, err := carte.ChecklistsFrom(dir, template)
	if err != nil {
		return err
	}
	rec.Name = flags.name

	data, err := yamlutil.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	if flags.output == "" {
		_, err := env.Stdout.Write(data)
		return err
	}
	if fileutil.FileExists(flags.output) {
		return fmt.Errorf("%w: %s", ErrRecordExists, flags.output)
	}
	if err := fileutil.WriteFileAtomic(flags.output, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s (%s template, %d items)\n", flags.output, template, countItems(rec))
	}
	return nil
}

func countItems(rec *carte.ProjectRecord) int {
	n := 0
	for _, key := range carte.CategoryKeys {
		n += len(rec.Categories.Items(key))
	}
	return n
}
