package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"catty/internal/library"
	"catty/internal/metadata"
	"catty/pkg/utils"
)

// SortOptions are the switches of the sort command.
type SortOptions struct {
	CleanDirs  bool
	CleanFiles bool
	DryRun     bool
}

// Leftovers yt-dlp and media players drop next to audio files.
var leftoverExtensions = map[string]bool{
	".part": true, ".ytdl": true, ".temp": true,
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

// Sort files the matched audio under the library directory, moving whole
// album directories where their author is unambiguous.
func (r *Runner) Sort(ctx context.Context, patterns []string, opts SortOptions) error {
	paths, err := utils.ExpandPatterns(patterns, r.Logger)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		r.Logger.Info("No audio files to sort")
		return nil
	}

	root, err := canonicalDir(r.Config.LibraryDir)
	if err != nil {
		return fmt.Errorf("invalid library directory: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	workDir, err := canonicalDir(wd)
	if err != nil {
		return err
	}
	r.Logger.Debug("Library root: %s", root)

	db := library.NewDatabase(r.Logger)
	for _, p := range paths {
		db.AddFile(p)
	}
	collections, files := db.Complete()

	meta, err := r.parseFiles(ctx, files)
	if err != nil {
		return err
	}

	authors := library.ObserveAuthors(files, meta)
	plan := library.NewPlanner(root, workDir, r.Logger).Plan(collections, files, meta, authors)
	r.Logger.Info("%d moves planned, %d already in place", len(plan.Moves), plan.Unchanged)
	if plan.Ambiguous > 0 || plan.Guarded > 0 {
		r.Logger.Debug("Collections kept apart: %d with several authors, %d containing the working directory",
			plan.Ambiguous, plan.Guarded)
	}

	if opts.DryRun {
		r.printPlan(workDir, plan.Moves)
		return nil
	}

	vacated, err := r.executeMoves(ctx, plan.Moves)
	if err != nil {
		return err
	}
	if opts.CleanFiles {
		if err := r.cleanFiles(ctx, vacated); err != nil {
			return err
		}
	}
	if opts.CleanDirs {
		if err := r.cleanDirs(vacated, root, workDir); err != nil {
			return err
		}
	}
	return nil
}

// parseFiles reads the metadata of every file, keyed by file ID. Tag I/O
// errors abort the run.
func (r *Runner) parseFiles(ctx context.Context, files []library.File) (map[int]metadata.TrackMetadata, error) {
	parser := r.parser()
	meta := make(map[int]metadata.TrackMetadata, len(files))

	r.start(len(files))
	defer r.finish()

	for _, f := range files {
		if err := cancelled(ctx); err != nil {
			return nil, err
		}
		m, err := parser.Parse(f.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f.Path, err)
		}
		r.Logger.Debug("%s: %s", filepath.Base(f.Path), strings.Join(m.Artists, ", "))
		meta[f.ID] = m
		r.progress()
	}
	return meta, nil
}

// executeMoves returns the directories that lost an entry.
func (r *Runner) executeMoves(ctx context.Context, moves []library.Move) ([]string, error) {
	var vacated []string
	done := 0
	for _, mv := range moves {
		if err := cancelled(ctx); err != nil {
			return vacated, err
		}
		ok, err := r.move(mv.Source, mv.Destination)
		if err != nil {
			return vacated, err
		}
		if ok {
			done++
			vacated = append(vacated, filepath.Dir(mv.Source))
		}
	}
	r.Logger.Info("Moved %d of %d", done, len(moves))
	return vacated, nil
}

// move renames src to dst after confirmation. An occupied destination is
// skipped, never overwritten.
func (r *Runner) move(src, dst string) (bool, error) {
	r.Logger.Info("moving from    '%s'\n         to => '%s'", src, dst)

	taken, err := destinationTaken(src, dst)
	if err != nil {
		return false, fmt.Errorf("failed to check destination %s: %w", dst, err)
	}
	if taken {
		r.Logger.Warn("destination already exists, skipping: %s", dst)
		return false, nil
	}

	ok, err := r.confirm("do you accept?")
	if err != nil || !ok {
		return false, err
	}
	if err := utils.MovePath(src, dst); err != nil {
		return false, err
	}
	return true, nil
}

// cleanFiles removes download leftovers and cover images from vacated
// directories that no longer hold any audio.
func (r *Runner) cleanFiles(ctx context.Context, dirs []string) error {
	for _, dir := range deepestFirst(dirs) {
		if err := cancelled(ctx); err != nil {
			return err
		}
		entries, err := os.ReadDir(dir)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", dir, err)
		}

		audio, err := utils.FindAudioFiles(dir)
		if err != nil {
			return err
		}
		if len(audio) > 0 {
			r.Logger.Debug("Keeping files in %s: it still holds audio", dir)
			continue
		}

		var leftovers []string
		for _, e := range entries {
			if e.Type().IsRegular() && leftoverExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
				leftovers = append(leftovers, e.Name())
			}
		}
		if len(leftovers) == 0 {
			continue
		}

		r.Logger.Info("leftover files in '%s': %s", dir, strings.Join(leftovers, ", "))
		ok, err := r.confirm("remove them?")
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		for _, name := range leftovers {
			if err := os.Remove(filepath.Join(dir, name)); err != nil {
				return fmt.Errorf("failed to remove leftover file: %w", err)
			}
		}
	}
	return nil
}

// cleanDirs removes vacated directories that are now empty, walking up
// until a non-empty directory, the library root or the working directory.
func (r *Runner) cleanDirs(dirs []string, root, workDir string) error {
	for _, dir := range deepestFirst(dirs) {
		for d := dir; ; d = filepath.Dir(d) {
			if filepath.Dir(d) == d || utils.ContainsPath(d, root) || utils.ContainsPath(d, workDir) {
				break
			}
			entries, err := os.ReadDir(d)
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", d, err)
			}
			if len(entries) > 0 {
				break
			}
			if err := os.Remove(d); err != nil {
				return fmt.Errorf("failed to remove empty directory: %w", err)
			}
			r.Logger.Info("removed empty directory '%s'", d)
		}
	}
	return nil
}

func deepestFirst(dirs []string) []string {
	seen := make(map[string]bool, len(dirs))
	var out []string
	for _, d := range dirs {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.Count(out[i], string(filepath.Separator)) > strings.Count(out[j], string(filepath.Separator))
	})
	return out
}

func (r *Runner) printPlan(workDir string, moves []library.Move) {
	if len(moves) == 0 {
		return
	}
	rows := make([][]string, 0, len(moves))
	for _, mv := range moves {
		author := mv.Author
		if author == "" {
			author = "-"
		}
		rows = append(rows, []string{
			mv.Kind.String(),
			author,
			displayPath(workDir, mv.Source),
			displayPath(workDir, mv.Destination),
		})
	}
	renderTable(r.Out, []string{"Kind", "Author", "From", "To"}, rows)
}

// displayPath shortens p relative to base when p lies beneath it.
func displayPath(base, p string) string {
	if utils.ContainsPath(base, p) {
		if rel, err := filepath.Rel(base, p); err == nil {
			return rel
		}
	}
	return p
}
