package staticcompress

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	"github.com/absfs/absfs"
)

// Exists reports whether name exists in the wrapped filesystem.
func (cfs *FS) Exists(name string) bool {
	_, err := cfs.base.Stat(name)
	return err == nil
}

// Open opens name for reading
func (cfs *FS) Open(name string) (absfs.File, error) {
	return cfs.base.OpenFile(name, os.O_RDONLY, 0)
}

// Save writes data to name. It never overwrites: callers delete an existing
// file first. The content becomes visible at name only once complete.
func (cfs *FS) Save(name string, data []byte) error {
	if cfs.Exists(name) {
		return &fs.PathError{Op: "save", Path: name, Err: fs.ErrExist}
	}
	w, err := createArtifact(cfs.base, name)
	if err != nil {
		return err
	}
	defer w.Abort()

	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Commit()
}

// Delete removes name
func (cfs *FS) Delete(name string) error {
	return cfs.base.Remove(name)
}

// Path returns the physical location of name when the wrapped filesystem
// can report one, and the cleaned name otherwise.
func (cfs *FS) Path(name string) string {
	if p, ok := cfs.base.(Pather); ok {
		return p.Path(name)
	}
	return path.Clean(name)
}

// Stat returns file information for name. When originals are not kept the
// information of the first existing artifact is returned instead.
func (cfs *FS) Stat(name string) (fs.FileInfo, error) {
	if cfs.config.KeepOriginal {
		return cfs.base.Stat(name)
	}
	_, info, err := cfs.alternate(name)
	return info, err
}

// ModTime returns the modification time of name, following the same
// redirection as Stat.
func (cfs *FS) ModTime(name string) (time.Time, error) {
	info, err := cfs.Stat(name)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// AlternatePath returns the name of the first existing artifact of name in
// method order. A name that already carries a method's extension is
// checked as is for that method.
func (cfs *FS) AlternatePath(name string) (string, error) {
	p, _, err := cfs.alternate(name)
	return p, err
}

func (cfs *FS) alternate(name string) (string, fs.FileInfo, error) {
	for _, m := range cfs.methods {
		p := name
		if !strings.HasSuffix(name, "."+m.Codec.Extension()) {
			p = ArtifactName(name, m.Codec.Extension())
		}
		info, err := cfs.base.Stat(p)
		if err == nil {
			return p, info, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", nil, err
		}
	}
	return "", nil, &fs.PathError{Op: "stat", Path: name, Err: ErrNoArtifact}
}

// readAll reads name fully. The content is read once per file and shared by
// every codec.
func (cfs *FS) readAll(name string) ([]byte, error) {
	f, err := cfs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}
