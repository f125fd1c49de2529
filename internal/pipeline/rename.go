package pipeline

import (
	"context"
	"path/filepath"

	"catty/internal/metadata"
	"catty/pkg/utils"
)

// RenameOptions are the switches of the rename command.
type RenameOptions struct {
	Format metadata.FormatOptions
	DryRun bool
}

type renaming struct {
	src, dst string
}

// Rename gives every matched file a name built from its metadata. The
// extension and directory are kept.
func (r *Runner) Rename(ctx context.Context, patterns []string, opts RenameOptions) error {
	paths, err := utils.ExpandPatterns(patterns, r.Logger)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		r.Logger.Info("No audio files to rename")
		return nil
	}

	renames, err := r.planRenames(ctx, paths, opts.Format)
	if err != nil {
		return err
	}
	r.Logger.Info("%d of %d files need a new name", len(renames), len(paths))

	if opts.DryRun {
		rows := make([][]string, 0, len(renames))
		for _, rn := range renames {
			rows = append(rows, []string{rn.src, filepath.Base(rn.dst)})
		}
		if len(rows) > 0 {
			renderTable(r.Out, []string{"From", "To"}, rows)
		}
		return nil
	}

	done := 0
	for _, rn := range renames {
		if err := cancelled(ctx); err != nil {
			return err
		}
		ok, err := r.move(rn.src, rn.dst)
		if err != nil {
			return err
		}
		if ok {
			done++
		}
	}
	r.Logger.Info("Renamed %d of %d", done, len(renames))
	return nil
}

func (r *Runner) planRenames(ctx context.Context, paths []string, format metadata.FormatOptions) ([]renaming, error) {
	parser := r.parser()

	r.start(len(paths))
	defer r.finish()

	var renames []renaming
	for _, path := range paths {
		if err := cancelled(ctx); err != nil {
			return nil, err
		}
		m, err := parser.Parse(path)
		if err != nil {
			return nil, err
		}
		r.progress()

		name := utils.SanitizeFileName(metadata.FormatName(m, format))
		if name == "" {
			r.Logger.Warn("nothing to name '%s' after, skipping", path)
			continue
		}
		dst := filepath.Join(filepath.Dir(path), name+filepath.Ext(path))
		if dst == filepath.Clean(path) {
			r.Logger.Debug("'%s' is already named correctly", path)
			continue
		}
		renames = append(renames, renaming{src: path, dst: dst})
	}
	return renames, nil
}
