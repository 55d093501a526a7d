package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
)

type fsFile struct {
	absPath string
	relPath string
	info    fs.FileInfo
}

func (f *fsFile) Path() string         { return f.absPath }
func (f *fsFile) RelativePath() string { return f.relPath }
func (f *fsFile) Info() FileInfo       { return f.info }

type fsDirectory struct {
	fsys    fs.FS
	absPath string
}

func (d *fsDirectory) Path() string { return d.absPath }

func (d *fsDirectory) Walk(fn func(File, error) error) error {
	return fs.WalkDir(d.fsys, d.absPath, func(filePath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fn(nil, err)
		}

		info, err := entry.Info()
		if err != nil {
			return fn(nil, fmt.Errorf("failed to get file info for %s: %w", filePath, err))
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(filePath, d.absPath), "/")
		if rel == "" {
			rel = "."
		}
		return fn(&fsFile{absPath: filePath, relPath: rel, info: info}, nil)
	})
}

// FSFileSystem is a read-only FileSystemProvider over an fs.FS such as embed.FS.
// Paths are slash-separated and resolved against root.
type FSFileSystem struct {
	fsys fs.FS
	root string
}

// NewFSFileSystem wraps fsys, treating root as the top directory.
func NewFSFileSystem(fsys fs.FS, root string) *FSFileSystem {
	return &FSFileSystem{fsys: fsys, root: path.Clean(root)}
}

// resolve maps a caller path into the fs.FS namespace, which has no leading slash.
func (p *FSFileSystem) resolve(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if name == "" || name == "." {
		return p.root
	}
	if strings.HasPrefix(name, "/") {
		return path.Clean(strings.TrimPrefix(name, "/"))
	}
	return path.Join(p.root, name)
}

func (p *FSFileSystem) Open(dirPath string) (Directory, error) {
	absPath := p.resolve(dirPath)
	info, err := fs.Stat(p.fsys, absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", dirPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dirPath)
	}
	return &fsDirectory{fsys: p.fsys, absPath: absPath}, nil
}

func (p *FSFileSystem) ReadFile(filePath string) ([]byte, error) {
	content, err := fs.ReadFile(p.fsys, p.resolve(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return content, nil
}

func (p *FSFileSystem) OpenFile(filePath string) (io.ReadCloser, error) {
	f, err := p.fsys.Open(p.resolve(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	return f, nil
}

func (p *FSFileSystem) WriteFile(filePath string, _ []byte) error {
	return fmt.Errorf("cannot write %s: %w", filePath, ErrReadOnly)
}

func (p *FSFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	entries, err := fs.ReadDir(p.fsys, p.resolve(dirPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	result := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to get file info for %s: %w", entry.Name(), err)
		}
		result = append(result, info)
	}
	return result, nil
}

func (p *FSFileSystem) Stat(statPath string) (FileInfo, error) {
	info, err := fs.Stat(p.fsys, p.resolve(statPath))
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %s: %w", statPath, err)
	}
	return info, nil
}

var _ FileSystemProvider = (*FSFileSystem)(nil)
