package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
	DotEnv  string // file loaded into the process environment; empty = none
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		DotEnv:  ".env",
	}
}

// loadDotEnv loads env.DotEnv when it exists. Variables already set in the
// process environment win over the file.
func loadDotEnv(env *Environment) {
	if env.DotEnv == "" {
		return
	}
	if err := godotenv.Load(env.DotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		env.warnf("warning: ignoring %s: %v\n", env.DotEnv, err)
	}
}

func (e *Environment) warnf(format string, args ...any) {
	fmt.Fprintf(e.Stderr, format, args...)
}
