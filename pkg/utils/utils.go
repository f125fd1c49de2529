package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
)

// Supported audio file extensions, lowercase without the leading dot
var audioExtensions = map[string]bool{
	"3gp": true, "aa": true, "aac": true, "aax": true, "act": true,
	"aiff": true, "alac": true, "amr": true, "ape": true, "au": true,
	"awb": true, "dss": true, "dvf": true, "flac": true, "gsm": true,
	"iklax": true, "ivs": true, "m4a": true, "m4b": true, "m4p": true,
	"mmf": true, "movpkg": true, "mp3": true, "mpc": true, "msv": true,
	"nmf": true, "ogg": true, "opus": true, "ra": true, "raw": true,
	"rf64": true, "sln": true, "tta": true, "voc": true, "vox": true,
	"wav": true, "wma": true, "wv": true, "webm": true, "8svx": true,
	"cda": true,
}

// IsAudioFile reports whether path has a known audio extension.
func IsAudioFile(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return audioExtensions[strings.ToLower(ext)]
}

// LookupExecutable returns the first of names found in PATH.
func LookupExecutable(names ...string) (string, error) {
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("none of %v found in PATH", names)
}

// FindAudioFiles recursively finds all audio files in a directory.
func FindAudioFiles(dir string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("directory path cannot be empty")
	}

	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("directory does not exist: %s", dir)
	}

	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		if !d.IsDir() && IsAudioFile(path) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", dir, err)
	}

	return files, nil
}

// ContainsPath reports whether target is dir or lies beneath it. Both paths
// must be clean and absolute.
func ContainsPath(dir, target string) bool {
	if target == "" {
		return false
	}
	if dir == target {
		return true
	}
	prefix := dir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(target, prefix)
}

// PathExists reports whether path exists. Errors other than "not exist" are
// returned so callers never mistake a permission problem for a free slot.
func PathExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// MovePath moves a file or directory from src to dst, creating the
// destination's parent directories if needed. Regular files fall back to
// copy+delete when src and dst are on different filesystems.
func MovePath(src, dst string) error {
	if src == "" || dst == "" {
		return fmt.Errorf("source and destination paths cannot be empty")
	}

	info, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("source does not exist: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	if err := os.Rename(src, dst); err != nil {
		// Cross-device link: fall back to copy + delete
		var linkErr *os.LinkError
		if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) && info.Mode().IsRegular() {
			return copyAndDelete(src, dst)
		}
		return fmt.Errorf("failed to move %s to %s: %w", src, dst, err)
	}

	return nil
}

func copyAndDelete(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source %s: %w", src, err)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source %s: %w", src, err)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, srcInfo.Mode())
	if err != nil {
		return fmt.Errorf("failed to create destination %s: %w", dst, err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		os.Remove(dst)
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}

	if err := dstFile.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("failed to close destination %s: %w", dst, err)
	}

	return os.Remove(src)
}
