package staticcompress

import (
	"io/fs"
	"time"
)

// stater is the metadata capability the freshness check needs.
type stater interface {
	Stat(name string) (fs.FileInfo, error)
}

// Stale reports whether the artifact at path must be regenerated for a
// source last modified at sourceMod.
//
// Both times are truncated to whole seconds so that filesystems with coarse
// timestamps do not cause spurious recompression; the artifact is fresh if
// it is not older than the source. A missing artifact, or any error reading
// its metadata, counts as stale.
//
// Known limitation: freshness is mtime based. Clock skew, copies that
// preserve mtimes, and a source edited within the same second as the
// artifact was written can all leave a stale artifact looking fresh.
func Stale(st stater, path string, sourceMod time.Time) bool {
	info, err := st.Stat(path)
	if err != nil {
		return true
	}
	artifactMod := info.ModTime().Truncate(time.Second)
	return artifactMod.Before(sourceMod.Truncate(time.Second))
}
