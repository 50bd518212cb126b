package main

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags.
	configPath   string
	verbose      bool
	methods      []string
	extensions   []string
	minSizeKB    int64
	keepOriginal bool
	workers      int
	metricsFile  string
)

var rootCmd = &cobra.Command{
	Use:   "staticcompress",
	Short: "Precompress static assets into brotli and gzip artifacts",
	Long: `Staticcompress writes compressed variants of static assets next to the
originals (app.js -> app.js.gz, app.js.br) so a web server can serve them
without compressing on every request.

Artifacts are only regenerated when the source is newer than the artifact,
so running it on every deploy is cheap.

Examples:
  # Compress ./public with the defaults (gz+zlib, br; files >= 30KB)
  staticcompress run ./public

  # Use a config file and add zstd artifacts
  staticcompress run ./public --config staticcompress.yaml --methods gz+zlib,br,zst

  # Recompress on change while developing
  staticcompress watch ./public --min-size-kb 0

  # Check that every artifact matches its source
  staticcompress verify ./public`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.StringSliceVarP(&methods, "methods", "m", nil, "compression methods in order (gz+zlib, gz, br, zst, lz4, sz)")
	flags.StringSliceVarP(&extensions, "extensions", "e", nil, "file extensions to compress")
	flags.Int64Var(&minSizeKB, "min-size-kb", 30, "skip files smaller than this many KiB")
	flags.BoolVar(&keepOriginal, "keep-original", true, "keep uncompressed files next to the artifacts")
	flags.IntVarP(&workers, "workers", "w", 1, "number of files compressed in parallel")
	flags.StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file after each pass")
}
