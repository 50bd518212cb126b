// Package staticcompress precompresses static assets stored in any
// absfs.Filer, writing compressed artifacts next to the originals so a web
// server can serve them without compressing on every request.
//
// # Features
//
//   - Brotli and gzip artifacts by default; zstd, lz4 and snappy on demand
//   - Incremental: artifacts are regenerated only when older than the source
//   - Deterministic output (gzip headers carry no timestamp)
//   - Atomic artifact writes (temporary file, then rename)
//   - Extension allow-list and minimum size threshold
//   - Optional removal of originals, with metadata redirected to artifacts
//   - Statistics and Prometheus metrics
//
// # Quick Start
//
//	base, _ := staticcompress.NewDirFS("/srv/static")
//
//	cfs, err := staticcompress.New(base, staticcompress.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err) // invalid method list
//	}
//
//	sources, _ := staticcompress.Collect(base, ".")
//	for o, err := range cfs.PostProcess(ctx, sources) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if o.Written() {
//	        fmt.Println(o.Dest, "->", o.Artifact)
//	    }
//	}
//
// # Methods
//
// Config.Methods lists method identifiers in the order they run:
//
//   - gz+zlib: gzip, standard library deflate (default)
//   - gz:      gzip, klauspost deflate; cannot be combined with gz+zlib
//   - br:      brotli quality 11 (default)
//   - zst:     zstd
//   - lz4:     lz4 frame
//   - sz:      snappy framed
//
// # Freshness
//
// An artifact is fresh when its modification time, truncated to the second,
// is not before the source's. This avoids hashing every file on each pass at
// the cost of trusting mtimes: clock skew, mtime-preserving copies and edits
// within the same second as the last pass can leave stale artifacts in place.
package staticcompress
