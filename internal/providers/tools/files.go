package tools

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandevgo/commandecho/internal/core"
)

const maxSearchResults = 5

type FileManager struct {
	root       string
	maxResults int
}

func NewFileManager() *FileManager {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &FileManager{
		root:       home,
		maxResults: maxSearchResults,
	}
}

// FindFile walks the search root looking for names containing the
// query, case-insensitive. Hidden directories are skipped and the walk
// stops as soon as enough matches are collected.
func (f *FileManager) FindFile(ctx context.Context, slots core.Slots) core.HandlerResult {
	query := strings.ToLower(strings.TrimSpace(slots["name"]))
	if query == "" {
		return core.Failure("no file name was given")
	}

	var matches []string
	err := filepath.WalkDir(f.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if path != f.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.Contains(strings.ToLower(d.Name()), query) {
			matches = append(matches, path)
			if len(matches) >= f.maxResults {
				return filepath.SkipAll
			}
		}
		return nil
	})
	if err != nil && ctx.Err() != nil {
		return core.Failure("the search was cancelled")
	}

	if len(matches) == 0 {
		return core.Failure(fmt.Sprintf("no files matching %q were found", query))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d file(s):", len(matches))
	for _, m := range matches {
		b.WriteString("\n  ")
		b.WriteString(m)
	}
	return core.Success(b.String())
}
