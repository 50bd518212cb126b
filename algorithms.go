package staticcompress

import (
	stdgzip "compress/gzip"
	"io"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// createCompressor creates a compressor for the specified algorithm
func createCompressor(algo Algorithm, w io.Writer, level int) (io.WriteCloser, error) {
	switch algo {
	case AlgorithmZlib:
		return createZlibCompressor(w, level)
	case AlgorithmGzip:
		return createGzipCompressor(w, level)
	case AlgorithmZstd:
		return createZstdCompressor(w, level)
	case AlgorithmLZ4:
		return createLZ4Compressor(w, level)
	case AlgorithmBrotli:
		return createBrotliCompressor(w, level)
	case AlgorithmSnappy:
		return createSnappyCompressor(w, level)
	default:
		return nil, ErrUnsupportedAlgorithm
	}
}

// createDecompressor creates a decompressor for the specified algorithm
func createDecompressor(algo Algorithm, r io.Reader) (io.ReadCloser, error) {
	switch algo {
	case AlgorithmZlib:
		return stdgzip.NewReader(r)
	case AlgorithmGzip:
		return gzip.NewReader(r)
	case AlgorithmZstd:
		return createZstdDecompressor(r)
	case AlgorithmLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case AlgorithmBrotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	case AlgorithmSnappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	default:
		return nil, ErrUnsupportedAlgorithm
	}
}

// The standard library gzip writer. The header carries no name and a zero
// MTIME so the output depends on the input bytes only. The Unix epoch is
// used rather than the zero time.Time, which klauspost encodes as a
// non-zero MTIME.
func createZlibCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	if level == 0 {
		level = stdgzip.BestCompression
	}
	zw, err := stdgzip.NewWriterLevel(w, level)
	if err != nil {
		return nil, ErrInvalidLevel
	}
	zw.Name = ""
	zw.ModTime = time.Unix(0, 0)
	return zw, nil
}

// klauspost gzip, same header rules as the zlib variant.
func createGzipCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	if level == 0 {
		level = gzip.BestCompression
	}
	zw, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		return nil, ErrInvalidLevel
	}
	zw.Name = ""
	zw.ModTime = time.Unix(0, 0)
	return zw, nil
}

func createZstdCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	encLevel := zstd.SpeedBestCompression
	if level > 0 {
		encLevel = zstd.EncoderLevelFromZstd(level)
	}
	// A single encoder goroutine keeps block boundaries stable across runs.
	return zstd.NewWriter(w,
		zstd.WithEncoderLevel(encLevel),
		zstd.WithEncoderConcurrency(1),
	)
}

func createZstdDecompressor(r io.Reader) (io.ReadCloser, error) {
	d, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return d.IOReadCloser(), nil
}

func createLZ4Compressor(w io.Writer, level int) (io.WriteCloser, error) {
	if level < 0 || level > 9 {
		return nil, ErrInvalidLevel
	}
	zw := lz4.NewWriter(w)
	opts := []lz4.Option{lz4.ConcurrencyOption(1)}
	if level > 0 {
		// lz4.Level1 .. lz4.Level9 are 1<<9 .. 1<<17.
		opts = append(opts, lz4.CompressionLevelOption(lz4.CompressionLevel(1<<(8+level))))
	}
	if err := zw.Apply(opts...); err != nil {
		return nil, err
	}
	return zw, nil
}

func createBrotliCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	if level < 0 || level > brotli.BestCompression {
		return nil, ErrInvalidLevel
	}
	if level == 0 {
		level = brotli.DefaultCompression
	}
	return brotli.NewWriterLevel(w, level), nil
}

// Snappy has no levels; the framed format is used so that artifacts can be
// streamed back.
func createSnappyCompressor(w io.Writer, _ int) (io.WriteCloser, error) {
	return snappy.NewBufferedWriter(w), nil
}
