package core

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockFileSystem is an in-memory FileSystem. Directories are implied by the
// files stored below them; SetDir adds an empty one.
type MockFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool

	// ReadErrors and WriteErrors inject failures for specific paths.
	ReadErrors  map[string]error
	WriteErrors map[string]error

	writes int
}

// NewMockFileSystem returns an empty MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:       make(map[string][]byte),
		dirs:        make(map[string]bool),
		ReadErrors:  make(map[string]error),
		WriteErrors: make(map[string]error),
	}
}

// SetFile stores data at path, creating parent directories implicitly.
func (m *MockFileSystem) SetFile(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filepath.Clean(path)] = data
}

// GetFile returns the stored content of path.
func (m *MockFileSystem) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[filepath.Clean(path)]
	return data, ok
}

// WriteCount reports how many successful WriteFile calls were made.
func (m *MockFileSystem) WriteCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

func (m *MockFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path = filepath.Clean(path)

	m.mu.RLock()
	defer m.mu.RUnlock()

	if err, ok := m.ReadErrors[path]; ok {
		return nil, err
	}
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MockFileSystem) WriteFile(ctx context.Context, path string, data []byte, _ FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path = filepath.Clean(path)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.WriteErrors[path]; ok {
		return err
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.files[path] = stored
	m.writes++
	return nil
}

func (m *MockFileSystem) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path = filepath.Clean(path)

	m.mu.RLock()
	defer m.mu.RUnlock()

	if data, ok := m.files[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), size: int64(len(data))}, nil
	}
	if m.isDirLocked(path) {
		return &mockFileInfo{name: filepath.Base(path), dir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
}

// ReadDir lists the direct children of path, sorted by name.
func (m *MockFileSystem) ReadDir(ctx context.Context, path string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path = filepath.Clean(path)

	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.isDirLocked(path) {
		return nil, &fs.PathError{Op: "readdir", Path: path, Err: fs.ErrNotExist}
	}

	children := make(map[string]*mockFileInfo)
	collect := func(p string, size int64, isFile bool) {
		rel, ok := childOf(path, p)
		if !ok {
			return
		}
		name, rest, nested := strings.Cut(rel, string(filepath.Separator))
		if nested || rest != "" || !isFile {
			children[name] = &mockFileInfo{name: name, dir: true}
			return
		}
		children[name] = &mockFileInfo{name: name, size: size}
	}
	for p, data := range m.files {
		collect(p, int64(len(data)), true)
	}
	for d := range m.dirs {
		collect(d, 0, false)
	}

	names := make([]string, 0, len(children))
	for name := range children {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]fs.DirEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, fs.FileInfoToDirEntry(children[name]))
	}
	return entries, nil
}

// SetDir records an empty directory at path.
func (m *MockFileSystem) SetDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[filepath.Clean(path)] = true
}

func (m *MockFileSystem) isDirLocked(path string) bool {
	if m.dirs[path] {
		return true
	}
	for p := range m.files {
		if _, ok := childOf(path, p); ok {
			return true
		}
	}
	for d := range m.dirs {
		if _, ok := childOf(path, d); ok {
			return true
		}
	}
	return false
}

// childOf returns p relative to dir when p lies strictly below dir.
func childOf(dir, p string) (string, bool) {
	prefix := dir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(p, prefix) {
		return "", false
	}
	rel := strings.TrimPrefix(p, prefix)
	return rel, rel != ""
}

type mockFileInfo struct {
	name string
	size int64
	dir  bool
}

func (i *mockFileInfo) Name() string { return i.name }
func (i *mockFileInfo) Size() int64  { return i.size }
func (i *mockFileInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}
func (i *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (i *mockFileInfo) IsDir() bool        { return i.dir }
func (i *mockFileInfo) Sys() any           { return nil }
