package staticcompress

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

var (
	ErrUnsupportedAlgorithm = errors.New("staticcompress: unsupported compression algorithm")
	ErrInvalidLevel         = errors.New("staticcompress: invalid compression level")
	ErrCorruptedData        = errors.New("staticcompress: corrupted compressed data")
	ErrConfiguration        = errors.New("staticcompress: invalid configuration")
	ErrCompressionFailed    = errors.New("staticcompress: compression failed")

	// ErrNoArtifact is returned by metadata queries on a logical name when
	// the original has been removed and no artifact exists for any
	// configured method. It matches fs.ErrNotExist.
	ErrNoArtifact = fmt.Errorf("staticcompress: no compressed artifact: %w", fs.ErrNotExist)
)

// ConfigurationError reports an invalid or contradictory method list.
type ConfigurationError struct {
	Reason  string
	Methods []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("staticcompress: %s (methods: [%s])", e.Reason, strings.Join(e.Methods, ", "))
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// CompressionError reports a codec that could not produce an artifact for a
// file. It aborts the pass.
type CompressionError struct {
	Name   string
	Method string
	Err    error
}

func (e *CompressionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("staticcompress: failed to produce %s output for %s: %v", e.Method, e.Name, e.Err)
	}
	return fmt.Sprintf("staticcompress: failed to produce %s output for %s: empty result", e.Method, e.Name)
}

func (e *CompressionError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrCompressionFailed, e.Err}
	}
	return []error{ErrCompressionFailed}
}
