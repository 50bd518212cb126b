package staticcompress

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Config holds the precompression settings. Callers resolve defaults with
// DefaultConfig and override fields as needed.
type Config struct {
	// Extensions eligible for compression, without the dot.
	// Matching is a case-sensitive suffix match on "." + extension.
	Extensions []string

	// Methods to run, in order (see KnownMethods).
	// "gz" and "gz+zlib" cannot be used together.
	Methods []string

	// KeepOriginal keeps the uncompressed file after compression.
	// When false the original is removed once at least one artifact was
	// written, and metadata queries resolve to the first existing artifact.
	KeepOriginal bool

	// MinSizeKB skips files smaller than MinSizeKB*1024 bytes.
	MinSizeKB int64

	// Workers is the number of files compressed concurrently (default: 1)
	Workers int

	// DestName maps a logical name to the name stored in the wrapped
	// filesystem, e.g. a content-hashed name. Nil means identity.
	DestName func(name string) string

	// Logger receives progress and skip decisions. Nil disables logging.
	Logger *zap.Logger

	// Registerer receives pass metrics. Nil disables metrics.
	Registerer prometheus.Registerer
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Extensions:   []string{"js", "css", "svg", "html", "txt", "xml"},
		Methods:      []string{MethodZlib, MethodBrotli},
		KeepOriginal: true,
		MinSizeKB:    30,
		Workers:      1,
	}
}

func (c *Config) destName(name string) string {
	if c.DestName == nil {
		return name
	}
	return c.DestName(name)
}
