package library

import (
	"path/filepath"
	"sort"
	"strings"

	"catty/internal/logger"
	"catty/internal/metadata"
	"catty/pkg/utils"
)

// MoveKind tells whether a move relocates a whole directory or a single file.
type MoveKind int

const (
	MoveCollection MoveKind = iota
	MoveFile
)

func (k MoveKind) String() string {
	if k == MoveCollection {
		return "collection"
	}
	return "file"
}

// Move is one planned rename.
type Move struct {
	Kind        MoveKind
	Source      string
	Destination string
	Author      string
}

// Plan is the outcome of planning a sort run.
type Plan struct {
	Moves     []Move
	Unchanged int
	Ambiguous int
	Guarded   int
}

// Planner computes destinations under Root. Directories containing WorkDir
// or Root itself are never moved.
type Planner struct {
	Root    string
	WorkDir string
	logger  *logger.Logger
}

// NewPlanner expects root and workDir in canonical form.
func NewPlanner(root, workDir string, log *logger.Logger) *Planner {
	return &Planner{Root: root, WorkDir: workDir, logger: log}
}

// ObserveAuthors collects, per collection, the distinct album authors of
// files whose album matches the collection's directory name. meta is keyed
// by file ID.
func ObserveAuthors(files []File, meta map[int]metadata.TrackMetadata) map[int][]string {
	authors := make(map[int][]string)
	seen := make(map[int]map[string]bool)

	for _, f := range files {
		m, ok := meta[f.ID]
		if !ok || m.Album == "" || m.AlbumAuthor == "" {
			continue
		}
		dirName := filepath.Base(filepath.Dir(f.Path))
		if !utils.EqualFold(utils.SanitizeFileName(m.Album), dirName) {
			continue
		}

		key := utils.FoldKey(m.AlbumAuthor)
		if seen[f.CollectionID] == nil {
			seen[f.CollectionID] = make(map[string]bool)
		}
		if seen[f.CollectionID][key] {
			continue
		}
		seen[f.CollectionID][key] = true
		authors[f.CollectionID] = append(authors[f.CollectionID], m.AlbumAuthor)
	}
	return authors
}

// Plan decides where every collection and file goes. Collections are
// visited shallowest first; once a collection is settled, in place or
// moved, its descendants and their files travel with it.
func (p *Planner) Plan(collections []Collection, files []File,
	meta map[int]metadata.TrackMetadata, authors map[int][]string) Plan {

	var plan Plan
	settled := make([]bool, len(collections))

	candidates := make([]Collection, 0, len(collections))
	for _, c := range collections {
		if c.HasFiles {
			candidates = append(candidates, c)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Depth < candidates[j].Depth
	})

	for _, c := range candidates {
		if p.ancestorSettled(collections, settled, c) {
			settled[c.ID] = true
			continue
		}
		if utils.ContainsPath(c.Path, p.WorkDir) || utils.ContainsPath(c.Path, p.Root) {
			p.logger.Debug("Not moving %s: it contains the working directory or library root", c.Path)
			plan.Guarded++
			continue
		}

		names := authors[c.ID]
		if len(names) != 1 {
			if len(names) > 1 {
				p.logger.Info("Not moving %s as a whole: albums by %s", c.Path, strings.Join(names, ", "))
				plan.Ambiguous++
			}
			continue
		}
		authorDir := utils.SanitizeFileName(names[0])
		if authorDir == "" {
			continue
		}

		dst := filepath.Join(p.Root, Bucket(names[0]), authorDir, filepath.Base(c.Path))
		if samePath(c.Path, dst) {
			settled[c.ID] = true
			plan.Unchanged++
			continue
		}
		if utils.ContainsPath(utils.FoldKey(c.Path), utils.FoldKey(dst)) {
			p.logger.Info("Not moving %s as a whole: its destination %s lies inside it", c.Path, dst)
			plan.Guarded++
			continue
		}
		settled[c.ID] = true
		plan.Moves = append(plan.Moves, Move{
			Kind:        MoveCollection,
			Source:      c.Path,
			Destination: dst,
			Author:      names[0],
		})
	}

	for _, f := range files {
		if f.CollectionID < len(settled) && settled[f.CollectionID] {
			continue
		}
		m, ok := meta[f.ID]
		if !ok {
			continue
		}
		author, dst := p.fileDestination(f, m)
		if samePath(f.Path, dst) {
			plan.Unchanged++
			continue
		}
		plan.Moves = append(plan.Moves, Move{
			Kind:        MoveFile,
			Source:      f.Path,
			Destination: dst,
			Author:      author,
		})
	}

	return plan
}

func (p *Planner) fileDestination(f File, m metadata.TrackMetadata) (string, string) {
	name := filepath.Base(f.Path)
	album := utils.SanitizeFileName(m.Album)
	author := m.Author()
	authorDir := utils.SanitizeFileName(author)

	parts := []string{p.Root}
	if authorDir == "" {
		author = ""
		parts = append(parts, OtherBucket, UnknownDir)
	} else {
		parts = append(parts, Bucket(author), authorDir)
	}
	if album != "" {
		parts = append(parts, album)
	}
	parts = append(parts, name)
	return author, filepath.Join(parts...)
}

func (p *Planner) ancestorSettled(collections []Collection, settled []bool, c Collection) bool {
	for id := c.ParentID; id != NoParent && id < len(collections); id = collections[id].ParentID {
		if settled[id] {
			return true
		}
	}
	return false
}

func samePath(a, b string) bool {
	return utils.FoldKey(a) == utils.FoldKey(b)
}
