// Package pipeline runs the catty commands: add, rename and sort.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"catty/internal/config"
	"catty/internal/confirm"
	"catty/internal/logger"
	"catty/internal/metadata"
	"catty/internal/tags"
	"catty/pkg/utils"
)

// Hooks lets the CLI drive a progress bar.
type Hooks struct {
	OnStart    func(total int)
	OnProgress func()
	OnFinish   func()
}

// Runner carries what every command needs.
type Runner struct {
	Config config.Config
	Logger *logger.Logger
	Source tags.Source
	Gate   confirm.Gate
	Out    io.Writer // dry-run tables
	Hooks  Hooks

	patterns *metadata.Patterns
}

// New creates a Runner reading tags with taglib and dhowden/tag and printing
// to stdout.
func New(cfg config.Config, log *logger.Logger, gate confirm.Gate) *Runner {
	return &Runner{
		Config:   cfg,
		Logger:   log,
		Source:   tags.Default(log),
		Gate:     gate,
		Out:      os.Stdout,
		patterns: metadata.NewPatterns(),
	}
}

func (r *Runner) parser() *metadata.Parser {
	if r.patterns == nil {
		r.patterns = metadata.NewPatterns()
	}
	return metadata.NewParser(r.Source, r.patterns, r.Logger)
}

func (r *Runner) start(total int) {
	if r.Hooks.OnStart != nil {
		r.Hooks.OnStart(total)
	}
}

func (r *Runner) progress() {
	if r.Hooks.OnProgress != nil {
		r.Hooks.OnProgress()
	}
}

func (r *Runner) finish() {
	if r.Hooks.OnFinish != nil {
		r.Hooks.OnFinish()
	}
}

// confirm asks the gate, treating a missing gate as approval.
func (r *Runner) confirm(question string) (bool, error) {
	if r.Gate == nil {
		return true, nil
	}
	ok, err := r.Gate.Confirm(question)
	if err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return ok, nil
}

// canonicalDir resolves dir like the database does. A directory that does
// not exist yet is only made absolute.
func canonicalDir(dir string) (string, error) {
	abs, err := filepath.Abs(config.ExpandHome(dir))
	if err != nil {
		return "", fmt.Errorf("failed to make %s absolute: %w", dir, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if errors.Is(err, os.ErrNotExist) {
		return abs, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	return resolved, nil
}

// cancelled reports a cancelled run as an error.
func cancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("operation cancelled: %w", err)
	}
	return nil
}

// destinationTaken reports whether dst is occupied by something other than
// src itself, which on case-insensitive filesystems answers to both names.
func destinationTaken(src, dst string) (bool, error) {
	exists, err := utils.PathExists(dst)
	if err != nil || !exists {
		return false, err
	}
	if !utils.EqualFold(src, dst) {
		return true, nil
	}
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return false, err
	}
	dstInfo, err := os.Lstat(dst)
	if err != nil {
		return false, err
	}
	return !os.SameFile(srcInfo, dstInfo), nil
}
