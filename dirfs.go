package staticcompress

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/absfs/absfs"
)

// dirFS is an absfs.Filer over a directory of the host filesystem. Names are
// slash separated and resolved below root.
type dirFS struct {
	root string
}

// NewDirFS returns a filer rooted at the directory root.
func NewDirFS(root string) (absfs.Filer, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: root, Err: fs.ErrInvalid}
	}
	return &dirFS{root: abs}, nil
}

// Path returns the host path of name.
func (d *dirFS) Path(name string) string {
	return filepath.Join(d.root, filepath.FromSlash(normalizePath(name)))
}

func (d *dirFS) Open(name string) (absfs.File, error) {
	return d.OpenFile(name, os.O_RDONLY, 0)
}

func (d *dirFS) OpenFile(name string, flag int, perm fs.FileMode) (absfs.File, error) {
	f, err := os.OpenFile(d.Path(name), flag, perm)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (d *dirFS) Create(name string) (absfs.File, error) {
	return d.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
}

func (d *dirFS) Mkdir(name string, perm fs.FileMode) error {
	return os.Mkdir(d.Path(name), perm)
}

func (d *dirFS) Remove(name string) error {
	return os.Remove(d.Path(name))
}

func (d *dirFS) Rename(oldpath, newpath string) error {
	return os.Rename(d.Path(oldpath), d.Path(newpath))
}

func (d *dirFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(d.Path(name))
}

func (d *dirFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(d.Path(name))
}

func (d *dirFS) Chmod(name string, mode os.FileMode) error {
	return os.Chmod(d.Path(name), mode)
}

func (d *dirFS) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return os.Chtimes(d.Path(name), atime, mtime)
}

func (d *dirFS) Chown(name string, uid, gid int) error {
	return os.Chown(d.Path(name), uid, gid)
}
