package staticcompress

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/absfs/absfs"
)

var tempSeq atomic.Uint64

// artifactWriter writes an artifact to a temporary sibling and renames it
// into place on Commit, so no reader ever sees a partial artifact at the
// final name. Abort removes the temporary file and is a no-op after Commit;
// callers defer it right after creation.
type artifactWriter struct {
	base Filer
	name string
	tmp  string
	f    absfs.File
	n    int64
	done bool
}

func createArtifact(base Filer, name string) (*artifactWriter, error) {
	dir, file := path.Split(path.Clean(name))
	tmp := dir + "." + file + ".tmp" +
		strconv.FormatInt(time.Now().UnixNano(), 36) +
		strconv.FormatUint(tempSeq.Add(1), 36)

	f, err := base.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("staticcompress: create %s: %w", tmp, err)
	}
	return &artifactWriter{base: base, name: name, tmp: tmp, f: f}, nil
}

func (w *artifactWriter) Write(p []byte) (int, error) {
	if w.done {
		return 0, fs.ErrClosed
	}
	n, err := w.f.Write(p)
	w.n += int64(n)
	if err != nil {
		return n, fmt.Errorf("staticcompress: write %s: %w", w.tmp, err)
	}
	return n, nil
}

// Commit flushes the temporary file and renames it to the final name.
func (w *artifactWriter) Commit() error {
	if w.done {
		return fs.ErrClosed
	}
	if err := w.f.Sync(); err != nil {
		return fmt.Errorf("staticcompress: sync %s: %w", w.tmp, err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("staticcompress: close %s: %w", w.tmp, err)
	}
	w.f = nil
	if err := w.base.Rename(w.tmp, w.name); err != nil {
		return fmt.Errorf("staticcompress: rename %s: %w", w.name, err)
	}
	w.done = true
	return nil
}

// Abort discards the temporary file unless Commit succeeded.
func (w *artifactWriter) Abort() {
	if w.done {
		return
	}
	w.done = true
	if w.f != nil {
		w.f.Close()
	}
	w.base.Remove(w.tmp)
}
