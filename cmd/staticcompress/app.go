package main

import (
	"context"
	"fmt"
	"io"

	"github.com/absfs/absfs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/absfs/staticcompress"
)

// app bundles what every subcommand needs for one asset directory.
type app struct {
	base     absfs.Filer
	fs       *staticcompress.FS
	log      *zap.Logger
	registry *prometheus.Registry
	out      io.Writer
}

func newApp(cmd *cobra.Command, args []string) (*app, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	log, err := newLogger()
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(cmd, configPath)
	if err != nil {
		return nil, err
	}

	base, err := staticcompress.NewDirFS(dir)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dir, err)
	}

	registry := prometheus.NewRegistry()
	cfg.Logger = log
	cfg.Registerer = registry

	cfs, err := staticcompress.New(base, cfg)
	if err != nil {
		return nil, err
	}
	return &app{base: base, fs: cfs, log: log, registry: registry, out: cmd.OutOrStdout()}, nil
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// pass collects the directory and runs one pass over it.
func (a *app) pass(ctx context.Context, dryRun bool) error {
	sources, err := staticcompress.Collect(a.base, ".")
	if err != nil {
		return err
	}

	var opts []staticcompress.PassOption
	if dryRun {
		opts = append(opts, staticcompress.WithDryRun())
	}

	a.fs.ResetStats()
	for o, err := range a.fs.PostProcess(ctx, sources, opts...) {
		if err != nil {
			return err
		}
		switch o.Status {
		case staticcompress.StatusWritten:
			fmt.Fprintf(a.out, "%s -> %s\n", o.Dest, o.Artifact)
		case staticcompress.StatusPlanned:
			fmt.Fprintf(a.out, "would compress %s -> %s\n", o.Dest, o.Artifact)
		}
	}

	s := a.fs.GetStats()
	fmt.Fprintf(a.out, "%d files compressed, %d artifacts written, %d fresh, %d files skipped",
		s.FilesCompressed, s.ArtifactsWritten, s.ArtifactsFresh, s.FilesSkipped)
	if s.BytesIn > 0 {
		fmt.Fprintf(a.out, " (%.1f%% saved)", staticcompress.GetCompressionPercentage(s.BytesIn, s.BytesOut))
	}
	fmt.Fprintln(a.out)

	return a.writeMetrics()
}

func (a *app) writeMetrics() error {
	if metricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(metricsFile, a.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
