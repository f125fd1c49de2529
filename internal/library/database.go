// Package library models the directories that hold the input files and plans
// where files and whole album directories should move.
package library

import (
	"fmt"
	"path/filepath"

	"catty/internal/logger"
)

// NoParent is the ParentID of a filesystem root.
const NoParent = -1

// Collection is a directory that contains input files or is an ancestor of
// one that does.
type Collection struct {
	Path     string
	ID       int
	ParentID int
	Depth    int
	HasFiles bool
}

// File is an input file attached to the collection of its directory.
type File struct {
	Path         string
	ID           int
	CollectionID int
}

// Database records collections and files by canonical path. IDs are dense
// indexes into the slices returned by Complete.
type Database struct {
	logger      *logger.Logger
	collections []Collection
	files       []File
	dirs        map[string]int
	paths       map[string]int
}

// NewDatabase creates an empty database.
func NewDatabase(log *logger.Logger) *Database {
	return &Database{
		logger: log,
		dirs:   make(map[string]int),
		paths:  make(map[string]int),
	}
}

// Canonicalize returns the absolute path of p with symlinks resolved.
func Canonicalize(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("failed to make %s absolute: %w", p, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", p, err)
	}
	return resolved, nil
}

// AddCollection registers the directory at path and its ancestors. A path
// that cannot be canonicalized is logged and skipped. AddFile registers a
// file's directories itself; this is the standalone form for directories
// without input files of their own.
func (d *Database) AddCollection(path string) (Collection, bool) {
	canon, err := Canonicalize(path)
	if err != nil {
		d.logger.Warn("failed to canonicalise directory: %v", err)
		return Collection{}, false
	}
	return d.collections[d.addCollection(canon)], true
}

// AddFile registers the file at path and marks its directory as holding
// files. Adding the same file twice returns the existing record.
func (d *Database) AddFile(path string) (File, bool) {
	canon, err := Canonicalize(path)
	if err != nil {
		d.logger.Warn("failed to canonicalise file path: %v", err)
		return File{}, false
	}
	if id, ok := d.paths[canon]; ok {
		return d.files[id], true
	}

	cid := d.addCollection(filepath.Dir(canon))
	d.collections[cid].HasFiles = true

	f := File{Path: canon, ID: len(d.files), CollectionID: cid}
	d.files = append(d.files, f)
	d.paths[canon] = f.ID
	return f, true
}

// addCollection walks up from dir until it meets a known directory or the
// filesystem root, then creates the missing records top-down.
func (d *Database) addCollection(dir string) int {
	var missing []string
	parent := NoParent
	for p := dir; ; {
		if id, ok := d.dirs[p]; ok {
			parent = id
			break
		}
		missing = append(missing, p)
		up := filepath.Dir(p)
		if up == p {
			break
		}
		p = up
	}

	id := parent
	for i := len(missing) - 1; i >= 0; i-- {
		c := Collection{
			Path:     missing[i],
			ID:       len(d.collections),
			ParentID: id,
			Depth:    1,
		}
		if id != NoParent {
			c.Depth = d.collections[id].Depth + 1
		}
		d.collections = append(d.collections, c)
		d.dirs[c.Path] = c.ID
		id = c.ID
	}
	return id
}

// Complete hands over the recorded collections and files. The database is
// empty afterwards.
func (d *Database) Complete() ([]Collection, []File) {
	collections, files := d.collections, d.files
	d.collections, d.files = nil, nil
	d.dirs = make(map[string]int)
	d.paths = make(map[string]int)
	return collections, files
}
