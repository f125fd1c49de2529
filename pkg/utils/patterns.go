package utils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"catty/internal/logger"
)

// ExpandPatterns turns command-line patterns into audio file paths. Each
// pattern is a glob; matched directories are searched recursively. With no
// patterns the regular files of the working directory are used.
func ExpandPatterns(patterns []string, log *logger.Logger) ([]string, error) {
	if len(patterns) == 0 {
		return workingDirFiles(log)
	}

	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !IsAudioFile(path) {
			log.Debug("Skipping non-audio file: %s", path)
			return
		}
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			log.Warn("No files match %s", pattern)
			continue
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				log.Warn("Cannot access %s: %v", match, err)
				continue
			}
			if !info.IsDir() {
				add(match)
				continue
			}
			err = filepath.WalkDir(match, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					log.Warn("Cannot read %s: %v", path, err)
					return nil
				}
				if d.Type().IsRegular() {
					add(path)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("error walking directory %s: %w", match, err)
			}
		}
	}

	return files, nil
}

func workingDirFiles(log *logger.Logger) ([]string, error) {
	entries, err := os.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to read working directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if !IsAudioFile(e.Name()) {
			log.Debug("Skipping non-audio file: %s", e.Name())
			continue
		}
		files = append(files, e.Name())
	}
	return files, nil
}
