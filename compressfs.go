package staticcompress

import (
	"io/fs"

	"github.com/absfs/absfs"
	"go.uber.org/zap"
)

// Filer is the storage capability set FS builds on. Every absfs.Filer
// satisfies it.
type Filer interface {
	OpenFile(name string, flag int, perm fs.FileMode) (absfs.File, error)
	Mkdir(name string, perm fs.FileMode) error
	Remove(name string) error
	Rename(oldpath, newpath string) error
	Stat(name string) (fs.FileInfo, error)
}

// Pather is implemented by filers that can report the physical location of
// a name, such as the OS directory filer returned by NewDirFS.
type Pather interface {
	Path(name string) string
}

// FS wraps a Filer with a precompression pass. Storage operations are
// delegated to the wrapped filer; metadata queries are redirected to the
// artifacts when originals are not kept.
type FS struct {
	base     Filer
	config   *Config
	methods  []Method
	selector *Selector
	log      *zap.Logger
	stats    Stats
	metrics  *metrics
}

// New creates a precompressing wrapper around base. The method list is
// validated before anything is read or written.
func New(base Filer, config *Config) (*FS, error) {
	if config == nil {
		config = DefaultConfig()
	}
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	methods, err := ParseMethods(config.Methods, log)
	if err != nil {
		return nil, err
	}

	m, err := newMetrics(config.Registerer)
	if err != nil {
		return nil, err
	}

	return &FS{
		base:     base,
		config:   config,
		methods:  methods,
		selector: NewSelector(config.Extensions, config.MinSizeKB),
		log:      log,
		metrics:  m,
	}, nil
}

// Methods returns the configured methods in pass order.
func (cfs *FS) Methods() []Method {
	out := make([]Method, len(cfs.methods))
	copy(out, cfs.methods)
	return out
}

// Selector returns the eligibility filter in use.
func (cfs *FS) Selector() *Selector {
	return cfs.selector
}

// GetStats returns a snapshot of the counters.
func (cfs *FS) GetStats() StatsSnapshot {
	return cfs.stats.Snapshot()
}

// ResetStats resets statistics to zero
func (cfs *FS) ResetStats() {
	cfs.stats.reset()
}
