package staticcompress

import "strings"

// Selector decides which files are worth compressing.
type Selector struct {
	suffixes []string
	minSize  int64
}

// NewSelector returns a Selector accepting names that end in "." plus one
// of exts and whose size is at least minSizeKB KiB.
func NewSelector(exts []string, minSizeKB int64) *Selector {
	suffixes := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext == "" {
			continue
		}
		suffixes = append(suffixes, "."+ext)
	}
	return &Selector{suffixes: suffixes, minSize: minSizeKB * 1024}
}

// Allowed reports whether name carries an allowed extension.
func (s *Selector) Allowed(name string) bool {
	for _, suffix := range s.suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// Eligible reports whether a file named name of size bytes is compressed.
// The threshold is inclusive.
func (s *Selector) Eligible(name string, size int64) bool {
	return s.Allowed(name) && size >= s.minSize
}
