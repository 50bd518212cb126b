package staticcompress

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/absfs/absfs"
)

// normalizePath normalizes a path for consistent storage/lookup
// It removes leading slashes and cleans the path
func normalizePath(name string) string {
	name = path.Clean("/" + strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		name = "."
	}
	return name
}

// memFS is a simple in-memory filesystem for tests and dry experiments.
// Directories are implicit: a directory exists while a file below it does.
type memFS struct {
	files map[string]*memNode
	mu    sync.RWMutex
}

// NewMemFS creates a new in-memory filesystem
func NewMemFS() absfs.Filer {
	return &memFS{
		files: make(map[string]*memNode),
	}
}

// memNode is the shared content of a file; every open handle sees it.
type memNode struct {
	data    []byte
	mode    fs.FileMode
	modTime time.Time
}

func (n *memNode) info(name string) *memFileInfo {
	return &memFileInfo{
		name:    path.Base(name),
		size:    int64(len(n.data)),
		mode:    n.mode,
		modTime: n.modTime,
	}
}

// isDir reports whether name is an implicit directory. Caller holds mu.
func (mfs *memFS) isDir(name string) bool {
	if name == "." {
		return true
	}
	prefix := name + "/"
	for p := range mfs.files {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func (mfs *memFS) Open(name string) (absfs.File, error) {
	return mfs.OpenFile(name, os.O_RDONLY, 0)
}

func (mfs *memFS) OpenFile(name string, flag int, perm fs.FileMode) (absfs.File, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = normalizePath(name)

	node, exists := mfs.files[name]
	if !exists && mfs.isDir(name) {
		if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE) != 0 {
			return nil, &fs.PathError{Op: "open", Path: name, Err: errors.New("is a directory")}
		}
		return &memDir{mfs: mfs, name: name}, nil
	}

	if exists && flag&os.O_CREATE != 0 && flag&os.O_EXCL != 0 {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrExist}
	}
	if !exists {
		if flag&os.O_CREATE == 0 {
			return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		}
		node = &memNode{mode: perm, modTime: time.Now()}
		mfs.files[name] = node
	}

	if flag&os.O_TRUNC != 0 {
		node.data = nil
		node.modTime = time.Now()
	}

	handle := &memFile{mfs: mfs, node: node, name: name, flag: flag}
	if flag&os.O_APPEND != 0 {
		handle.pos = int64(len(node.data))
	}
	return handle, nil
}

func (mfs *memFS) Create(name string) (absfs.File, error) {
	return mfs.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
}

// Mkdir is a no-op: directories are implicit.
func (mfs *memFS) Mkdir(name string, perm fs.FileMode) error {
	return nil
}

func (mfs *memFS) Remove(name string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = normalizePath(name)
	if _, exists := mfs.files[name]; !exists {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}

	delete(mfs.files, name)
	return nil
}

func (mfs *memFS) Stat(name string) (fs.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	name = normalizePath(name)
	node, exists := mfs.files[name]
	if !exists {
		if mfs.isDir(name) {
			return &memFileInfo{name: path.Base(name), mode: fs.ModeDir | 0755, modTime: time.Now()}, nil
		}
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return node.info(name), nil
}

func (mfs *memFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := (&memDir{mfs: mfs, name: normalizePath(name)}).Readdir(-1)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = fs.FileInfoToDirEntry(info)
	}
	return entries, nil
}

// Rename moves a file, replacing any file at newpath. The modification time
// travels with the content, as on a real filesystem.
func (mfs *memFS) Rename(oldpath, newpath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	oldpath = normalizePath(oldpath)
	newpath = normalizePath(newpath)

	node, exists := mfs.files[oldpath]
	if !exists {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: fs.ErrNotExist}
	}
	mfs.files[newpath] = node
	delete(mfs.files, oldpath)
	return nil
}

// Chmod changes file permissions
func (mfs *memFS) Chmod(name string, mode os.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = normalizePath(name)
	node, exists := mfs.files[name]
	if !exists {
		return &fs.PathError{Op: "chmod", Path: name, Err: fs.ErrNotExist}
	}
	node.mode = mode
	return nil
}

// Chtimes changes file modification time; access time is not tracked
func (mfs *memFS) Chtimes(name string, atime time.Time, mtime time.Time) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = normalizePath(name)
	node, exists := mfs.files[name]
	if !exists {
		return &fs.PathError{Op: "chtimes", Path: name, Err: fs.ErrNotExist}
	}
	node.modTime = mtime
	return nil
}

// Chown changes file owner (no-op for memFS)
func (mfs *memFS) Chown(name string, uid, gid int) error {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	name = normalizePath(name)
	if _, exists := mfs.files[name]; !exists {
		return &fs.PathError{Op: "chown", Path: name, Err: fs.ErrNotExist}
	}
	return nil
}

// memFile is an open handle on a memNode.
type memFile struct {
	mfs    *memFS
	node   *memNode
	name   string
	flag   int
	pos    int64
	closed bool
}

func (mf *memFile) Name() string {
	return mf.name
}

func (mf *memFile) Read(p []byte) (n int, err error) {
	mf.mfs.mu.RLock()
	defer mf.mfs.mu.RUnlock()

	if mf.closed {
		return 0, fs.ErrClosed
	}
	if mf.pos >= int64(len(mf.node.data)) {
		return 0, io.EOF
	}
	n = copy(p, mf.node.data[mf.pos:])
	mf.pos += int64(n)
	return n, nil
}

func (mf *memFile) ReadAt(b []byte, off int64) (n int, err error) {
	mf.mfs.mu.RLock()
	defer mf.mfs.mu.RUnlock()

	if mf.closed {
		return 0, fs.ErrClosed
	}
	if off < 0 {
		return 0, errors.New("negative offset")
	}
	if off >= int64(len(mf.node.data)) {
		return 0, io.EOF
	}
	n = copy(b, mf.node.data[off:])
	if n < len(b) {
		return n, io.EOF
	}
	return n, nil
}

func (mf *memFile) Write(p []byte) (n int, err error) {
	n, err = mf.WriteAt(p, mf.pos)
	mf.pos += int64(n)
	return n, err
}

func (mf *memFile) WriteAt(b []byte, off int64) (n int, err error) {
	mf.mfs.mu.Lock()
	defer mf.mfs.mu.Unlock()

	if mf.closed {
		return 0, fs.ErrClosed
	}
	if mf.flag&(os.O_WRONLY|os.O_RDWR) == 0 {
		return 0, &fs.PathError{Op: "write", Path: mf.name, Err: fs.ErrPermission}
	}
	if off < 0 {
		return 0, errors.New("negative offset")
	}

	end := off + int64(len(b))
	if end > int64(len(mf.node.data)) {
		grown := make([]byte, end)
		copy(grown, mf.node.data)
		mf.node.data = grown
	}
	n = copy(mf.node.data[off:], b)
	mf.node.modTime = time.Now()
	return n, nil
}

func (mf *memFile) WriteString(s string) (n int, err error) {
	return mf.Write([]byte(s))
}

func (mf *memFile) Close() error {
	mf.closed = true
	return nil
}

func (mf *memFile) Seek(offset int64, whence int) (int64, error) {
	mf.mfs.mu.RLock()
	defer mf.mfs.mu.RUnlock()

	if mf.closed {
		return 0, fs.ErrClosed
	}

	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = mf.pos + offset
	case io.SeekEnd:
		newPos = int64(len(mf.node.data)) + offset
	default:
		return 0, errors.New("invalid whence")
	}
	if newPos < 0 {
		return 0, errors.New("negative position")
	}
	mf.pos = newPos
	return newPos, nil
}

func (mf *memFile) Stat() (fs.FileInfo, error) {
	mf.mfs.mu.RLock()
	defer mf.mfs.mu.RUnlock()
	return mf.node.info(mf.name), nil
}

func (mf *memFile) Sync() error {
	return nil
}

func (mf *memFile) Truncate(size int64) error {
	mf.mfs.mu.Lock()
	defer mf.mfs.mu.Unlock()

	if mf.closed {
		return fs.ErrClosed
	}
	if size < 0 {
		return errors.New("negative size")
	}
	resized := make([]byte, size)
	copy(resized, mf.node.data)
	mf.node.data = resized
	mf.node.modTime = time.Now()
	return nil
}

func (mf *memFile) Readdir(n int) ([]os.FileInfo, error) {
	return nil, os.ErrInvalid
}

func (mf *memFile) Readdirnames(n int) ([]string, error) {
	return nil, os.ErrInvalid
}

type memFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (fi *memFileInfo) Name() string       { return fi.name }
func (fi *memFileInfo) Size() int64        { return fi.size }
func (fi *memFileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi *memFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *memFileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi *memFileInfo) Sys() interface{}   { return nil }

// memDir is a virtual directory handle
type memDir struct {
	mfs  *memFS
	name string
}

func (md *memDir) Name() string                                 { return md.name }
func (md *memDir) Read(p []byte) (n int, err error)             { return 0, os.ErrInvalid }
func (md *memDir) ReadAt(b []byte, off int64) (n int, err error) { return 0, os.ErrInvalid }
func (md *memDir) Write(p []byte) (n int, err error)            { return 0, os.ErrInvalid }
func (md *memDir) WriteAt(b []byte, off int64) (int, error)     { return 0, os.ErrInvalid }
func (md *memDir) WriteString(s string) (n int, err error)      { return 0, os.ErrInvalid }
func (md *memDir) Seek(offset int64, whence int) (int64, error) { return 0, os.ErrInvalid }
func (md *memDir) Truncate(size int64) error                    { return os.ErrInvalid }
func (md *memDir) Close() error                                 { return nil }
func (md *memDir) Sync() error                                  { return nil }

func (md *memDir) Stat() (fs.FileInfo, error) {
	return &memFileInfo{
		name:    path.Base(md.name),
		mode:    fs.ModeDir | 0755,
		modTime: time.Now(),
	}, nil
}

// Readdir lists the direct children of the directory, files and implicit
// subdirectories alike, sorted by name.
func (md *memDir) Readdir(n int) ([]os.FileInfo, error) {
	md.mfs.mu.RLock()
	defer md.mfs.mu.RUnlock()

	prefix := md.name + "/"
	if md.name == "." {
		prefix = ""
	}

	var infos []os.FileInfo
	seenDirs := make(map[string]bool)
	for p, node := range md.mfs.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := p[len(prefix):]
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			sub := rest[:i]
			if !seenDirs[sub] {
				seenDirs[sub] = true
				infos = append(infos, &memFileInfo{name: sub, mode: fs.ModeDir | 0755, modTime: time.Now()})
			}
			continue
		}
		infos = append(infos, node.info(p))
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name() < infos[j].Name()
	})
	if n > 0 && len(infos) > n {
		infos = infos[:n]
	}
	return infos, nil
}

func (md *memDir) Readdirnames(n int) ([]string, error) {
	infos, err := md.Readdir(n)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name()
	}
	return names, nil
}
