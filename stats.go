package staticcompress

import (
	"errors"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Stats holds pass counters. All fields are updated atomically.
type Stats struct {
	filesCompressed atomic.Int64
	filesSkipped    atomic.Int64
	artifactsFresh  atomic.Int64
	artifacts       atomic.Int64
	originalsDelete atomic.Int64
	bytesIn         atomic.Int64
	bytesOut        atomic.Int64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	FilesCompressed  int64 // files with at least one artifact written
	FilesSkipped     int64 // ineligible files
	ArtifactsFresh   int64 // (file, method) pairs skipped as fresh
	ArtifactsWritten int64
	OriginalsRemoved int64
	BytesIn          int64 // source bytes fed to codecs
	BytesOut         int64 // artifact bytes written
}

// CompressionRatio returns BytesOut/BytesIn, or 0 when nothing was compressed.
func (s StatsSnapshot) CompressionRatio() float64 {
	return GetCompressionRatio(s.BytesIn, s.BytesOut)
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		FilesCompressed:  s.filesCompressed.Load(),
		FilesSkipped:     s.filesSkipped.Load(),
		ArtifactsFresh:   s.artifactsFresh.Load(),
		ArtifactsWritten: s.artifacts.Load(),
		OriginalsRemoved: s.originalsDelete.Load(),
		BytesIn:          s.bytesIn.Load(),
		BytesOut:         s.bytesOut.Load(),
	}
}

func (s *Stats) reset() {
	s.filesCompressed.Store(0)
	s.filesSkipped.Store(0)
	s.artifactsFresh.Store(0)
	s.artifacts.Store(0)
	s.originalsDelete.Store(0)
	s.bytesIn.Store(0)
	s.bytesOut.Store(0)
}

// Metric names.
const (
	MetricArtifacts   = "staticcompress_artifacts_total"
	MetricInputBytes  = "staticcompress_input_bytes_total"
	MetricOutputBytes = "staticcompress_output_bytes_total"
)

// metrics mirrors the pass counters into Prometheus. A nil *metrics is a
// no-op.
type metrics struct {
	artifacts   *prometheus.CounterVec
	inputBytes  prometheus.Counter
	outputBytes prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	if reg == nil {
		return nil, nil
	}
	m := &metrics{
		artifacts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricArtifacts,
			Help: "Compression outcomes per method and status.",
		}, []string{"method", "status"}),
		inputBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricInputBytes,
			Help: "Source bytes fed to codecs.",
		}),
		outputBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricOutputBytes,
			Help: "Compressed bytes written to artifacts.",
		}),
	}

	var err error
	m.artifacts, err = register(reg, m.artifacts)
	if err != nil {
		return nil, err
	}
	if m.inputBytes, err = register(reg, m.inputBytes); err != nil {
		return nil, err
	}
	if m.outputBytes, err = register(reg, m.outputBytes); err != nil {
		return nil, err
	}
	return m, nil
}

// register registers c, reusing an identical collector that is already
// registered so that several FS values can share one registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *metrics) observe(method string, status Status) {
	if m == nil {
		return
	}
	m.artifacts.WithLabelValues(method, status.String()).Inc()
}

func (m *metrics) addBytes(in, out int) {
	if m == nil {
		return
	}
	m.inputBytes.Add(float64(in))
	m.outputBytes.Add(float64(out))
}
