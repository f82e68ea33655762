package adapters

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"vibranium/internal/ports"
	"vibranium/internal/types"
)

type SourceDiscoveryAdapter struct{}

func NewSourceDiscoveryAdapter() SourceDiscoveryAdapter {
	return SourceDiscoveryAdapter{}
}

// ListIncludeDirs returns root and every directory beneath it.
func (a SourceDiscoveryAdapter) ListIncludeDirs(root string) ([]string, error) {
	var dirs []string
	err := a.walk(root, func(path string, d fs.DirEntry) {
		if d.IsDir() {
			dirs = append(dirs, path)
		}
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(dirs)
	return dirs, nil
}

func (a SourceDiscoveryAdapter) ListSourceFiles(root string) ([]string, error) {
	var files []string
	err := a.walk(root, func(path string, d fs.DirEntry) {
		if !d.IsDir() && strings.HasSuffix(d.Name(), types.SourceExtension) {
			files = append(files, path)
		}
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func (a SourceDiscoveryAdapter) walk(root string, visit func(path string, d fs.DirEntry)) error {
	if strings.TrimSpace(root) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project root is empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to resolve project root").
			WithCause(err)
	}
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != abs && shouldSkipSourceDir(d.Name()) {
			return filepath.SkipDir
		}
		visit(path, d)
		return nil
	})
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan project tree").
			WithCause(err)
	}
	return nil
}

func shouldSkipSourceDir(name string) bool {
	switch name {
	case ".git", ".hg", ".svn":
		return true
	default:
		return false
	}
}

var _ ports.SourcePort = SourceDiscoveryAdapter{}
