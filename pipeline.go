package staticcompress

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Status is the result of one (file, method) step of a pass.
type Status int

const (
	// StatusSkippedIneligible means the file was filtered out by extension
	// or size; no method ran for it.
	StatusSkippedIneligible Status = iota + 1
	// StatusSkippedFresh means the artifact is not older than its source.
	StatusSkippedFresh
	// StatusWritten means a new artifact was written.
	StatusWritten
	// StatusPlanned means a dry run found the artifact stale.
	StatusPlanned
)

func (s Status) String() string {
	switch s {
	case StatusSkippedIneligible:
		return "skipped_ineligible"
	case StatusSkippedFresh:
		return "skipped_fresh"
	case StatusWritten:
		return "written"
	case StatusPlanned:
		return "planned"
	default:
		return "unknown"
	}
}

// Origin is the storage a source file was collected from. Its modification
// time is the one compared against artifacts.
type Origin interface {
	Stat(name string) (fs.FileInfo, error)
}

// Source is a candidate file of a pass.
type Source struct {
	// Name is the logical name of the file in the wrapped filesystem.
	Name string
	// Path is the file's path within Origin. Empty means Name.
	Path string
	// Origin is where the file was collected from. Nil means the wrapped
	// filesystem.
	Origin Origin
}

// Outcome reports one step of a pass. Method and Artifact are empty for
// StatusSkippedIneligible.
type Outcome struct {
	Name     string // logical name
	Dest     string // name of the compressed original in the wrapped filesystem
	Artifact string
	Method   string
	Status   Status
}

// Written reports whether the outcome produced a new artifact.
func (o Outcome) Written() bool { return o.Status == StatusWritten }

type passOptions struct {
	dryRun bool
}

// PassOption configures a single PostProcess call.
type PassOption func(*passOptions)

// WithDryRun reports what would be compressed without touching the
// filesystem.
func WithDryRun() PassOption {
	return func(o *passOptions) { o.dryRun = true }
}

// errStop signals that the consumer of a pass stopped iterating.
var errStop = errors.New("staticcompress: iteration stopped")

// PostProcess runs one pass over sources and returns its outcomes as a lazy
// sequence. The pass does its work as the sequence is consumed; breaking out
// of the loop ends it. A non-nil error is the last element and aborts the
// pass: artifacts written before it are kept.
//
// Within a file the methods run in configured order. Files are independent
// and are processed concurrently when Config.Workers is above one, in which
// case outcomes of a file are delivered together once it is done.
func (cfs *FS) PostProcess(ctx context.Context, sources []Source, opts ...PassOption) iter.Seq2[Outcome, error] {
	var po passOptions
	for _, opt := range opts {
		opt(&po)
	}

	return func(yield func(Outcome, error) bool) {
		cfs.log.Info("post-processing static files", zap.Int("count", len(sources)), zap.Bool("dry_run", po.dryRun))

		if cfs.config.Workers > 1 {
			cfs.postProcessParallel(ctx, sources, po, yield)
			return
		}

		for _, src := range sources {
			if err := ctx.Err(); err != nil {
				yield(Outcome{}, err)
				return
			}
			err := cfs.processFile(src, po, func(o Outcome) bool {
				return yield(o, nil)
			})
			if errors.Is(err, errStop) {
				return
			}
			if err != nil {
				yield(Outcome{}, err)
				return
			}
		}
	}
}

func (cfs *FS) postProcessParallel(ctx context.Context, sources []Source, po passOptions, yield func(Outcome, error) bool) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfs.config.Workers)

	results := make(chan []Outcome)
	errc := make(chan error, 1)
	go func() {
		for _, src := range sources {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				var outs []Outcome
				err := cfs.processFile(src, po, func(o Outcome) bool {
					outs = append(outs, o)
					return true
				})
				// Artifacts already on storage are reported even when the
				// file failed or the pass is ending. The consumer drains
				// results on every path.
				if len(outs) > 0 {
					results <- outs
				}
				return err
			})
		}
		errc <- g.Wait()
		close(results)
	}()

	for outs := range results {
		for _, o := range outs {
			if !yield(o, nil) {
				cancel()
				for range results {
				}
				<-errc
				return
			}
		}
	}
	if err := <-errc; err != nil {
		yield(Outcome{}, err)
	}
}

// processFile runs every method for one source. emit returning false stops
// the file with errStop.
func (cfs *FS) processFile(src Source, po passOptions, emit func(Outcome) bool) error {
	dest := cfs.config.destName(src.Name)
	log := cfs.log.With(zap.String("file", src.Name))

	if !cfs.selector.Allowed(src.Name) {
		return cfs.skipIneligible(src, dest, log, emit)
	}
	info, err := cfs.base.Stat(dest)
	if err != nil {
		return fmt.Errorf("staticcompress: stat %s: %w", dest, err)
	}
	if !cfs.selector.Eligible(src.Name, info.Size()) {
		return cfs.skipIneligible(src, dest, log, emit)
	}

	origin, originPath := src.Origin, src.Path
	if origin == nil {
		origin = cfs.base
	}
	if originPath == "" {
		originPath = src.Name
	}
	srcInfo, err := origin.Stat(originPath)
	if err != nil {
		return fmt.Errorf("staticcompress: stat source %s: %w", originPath, err)
	}
	srcMod := srcInfo.ModTime()

	var (
		data    []byte
		loaded  bool
		written int
	)
	for _, m := range cfs.methods {
		artifact := ArtifactName(dest, m.Codec.Extension())
		out := Outcome{Name: src.Name, Dest: dest, Artifact: artifact, Method: m.ID}

		if !Stale(cfs.base, artifact, srcMod) {
			log.Debug("artifact is fresh", zap.String("method", m.ID))
			cfs.stats.artifactsFresh.Add(1)
			cfs.metrics.observe(m.ID, StatusSkippedFresh)
			out.Status = StatusSkippedFresh
			if !emit(out) {
				return errStop
			}
			continue
		}

		if po.dryRun {
			out.Status = StatusPlanned
			if !emit(out) {
				return errStop
			}
			continue
		}

		// Save refuses to overwrite.
		if cfs.Exists(artifact) {
			if err := cfs.Delete(artifact); err != nil {
				return fmt.Errorf("staticcompress: delete stale %s: %w", artifact, err)
			}
		}

		if !loaded {
			if data, err = cfs.readAll(dest); err != nil {
				return fmt.Errorf("staticcompress: %w", err)
			}
			loaded = true
		}

		compressed, err := m.Codec.Compress(data)
		if err != nil || len(compressed) == 0 {
			return &CompressionError{Name: src.Name, Method: m.ID, Err: err}
		}

		log.Info("saving compressed output",
			zap.String("artifact", artifact),
			zap.String("method", m.ID),
			zap.Int("size", len(data)),
			zap.Int("compressed", len(compressed)),
		)
		if err := cfs.Save(artifact, compressed); err != nil {
			return fmt.Errorf("staticcompress: save %s: %w", artifact, err)
		}
		written++
		cfs.stats.artifacts.Add(1)
		cfs.stats.bytesIn.Add(int64(len(data)))
		cfs.stats.bytesOut.Add(int64(len(compressed)))
		cfs.metrics.observe(m.ID, StatusWritten)
		cfs.metrics.addBytes(len(data), len(compressed))

		out.Status = StatusWritten
		if !emit(out) {
			return errStop
		}
	}

	if written == 0 {
		return nil
	}
	cfs.stats.filesCompressed.Add(1)

	if !cfs.config.KeepOriginal {
		if err := cfs.Delete(dest); err != nil {
			return fmt.Errorf("staticcompress: delete original %s: %w", dest, err)
		}
		cfs.stats.originalsDelete.Add(1)
		log.Debug("removed original")
	}
	return nil
}

func (cfs *FS) skipIneligible(src Source, dest string, log *zap.Logger, emit func(Outcome) bool) error {
	log.Debug("file is not eligible for compression")
	cfs.stats.filesSkipped.Add(1)
	if !emit(Outcome{Name: src.Name, Dest: dest, Status: StatusSkippedIneligible}) {
		return errStop
	}
	return nil
}

// Run consumes a full pass and returns the written outcomes.
func (cfs *FS) Run(ctx context.Context, sources []Source, opts ...PassOption) ([]Outcome, error) {
	var written []Outcome
	for o, err := range cfs.PostProcess(ctx, sources, opts...) {
		if err != nil {
			return written, err
		}
		if o.Written() {
			written = append(written, o)
		}
	}
	return written, nil
}
