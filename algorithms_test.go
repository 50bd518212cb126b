package staticcompress

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"
)

var testText = []byte(strings.Repeat("function hello(){return 'Hello, compressed world!';}\n"+
	"body { margin: 0; padding: 0; font-family: sans-serif; }\n", 64))

var allAlgorithms = []struct {
	name  string
	algo  Algorithm
	level int
}{
	{"zlib-default", AlgorithmZlib, 0},
	{"zlib-level9", AlgorithmZlib, 9},
	{"gzip-default", AlgorithmGzip, 0},
	{"gzip-level6", AlgorithmGzip, 6},
	{"brotli-default", AlgorithmBrotli, 0},
	{"brotli-level11", AlgorithmBrotli, 11},
	{"zstd-default", AlgorithmZstd, 0},
	{"zstd-level19", AlgorithmZstd, 19},
	{"lz4-default", AlgorithmLZ4, 0},
	{"lz4-level9", AlgorithmLZ4, 9},
	{"snappy", AlgorithmSnappy, 0},
}

func TestAllAlgorithmsRoundTrip(t *testing.T) {
	random := make([]byte, 8192)
	rand.New(rand.NewSource(1)).Read(random)

	inputs := map[string][]byte{
		"text":   testText,
		"random": random,
		"byte":   {'x'},
		"empty":  {},
	}

	for _, tt := range allAlgorithms {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := NewCodec(tt.algo, tt.level)
			if err != nil {
				t.Fatalf("Failed to create codec: %v", err)
			}
			for label, in := range inputs {
				compressed, err := codec.Compress(in)
				if err != nil {
					t.Fatalf("Failed to compress %s: %v", label, err)
				}
				if len(in) > 0 && len(compressed) == 0 {
					t.Fatalf("Expected non-empty output for %s", label)
				}
				out, err := codec.Decompress(compressed)
				if err != nil {
					t.Fatalf("Failed to decompress %s: %v", label, err)
				}
				if !bytes.Equal(out, in) {
					t.Fatalf("Round trip mismatch for %s: got %d bytes, want %d", label, len(out), len(in))
				}
			}
		})
	}
}

func TestAllAlgorithmsDeterministic(t *testing.T) {
	for _, tt := range allAlgorithms {
		t.Run(tt.name, func(t *testing.T) {
			first, err := CompressBytes(testText, tt.algo, tt.level)
			if err != nil {
				t.Fatalf("Failed to compress: %v", err)
			}
			// A fresh codec instance must not change the bytes either.
			second, err := CompressBytes(testText, tt.algo, tt.level)
			if err != nil {
				t.Fatalf("Failed to compress: %v", err)
			}
			if !bytes.Equal(first, second) {
				t.Fatal("Compressing the same input twice produced different output")
			}
		})
	}
}

func TestGzipHeaderHasNoTimestamp(t *testing.T) {
	for _, algo := range []Algorithm{AlgorithmZlib, AlgorithmGzip} {
		out, err := CompressBytes(testText, algo, 9)
		if err != nil {
			t.Fatalf("Failed to compress with %s: %v", algo, err)
		}
		// Bytes 4..7 of a gzip member hold MTIME; bit 3 of FLG marks a name.
		if !bytes.Equal(out[4:8], []byte{0, 0, 0, 0}) {
			t.Errorf("%s: expected zero MTIME, got %v", algo, out[4:8])
		}
		if out[3]&0x08 != 0 {
			t.Errorf("%s: expected no FNAME in header", algo)
		}
	}
}

func TestRepetitiveInputShrinks(t *testing.T) {
	in := bytes.Repeat([]byte{'a'}, 100)
	for _, tt := range allAlgorithms {
		t.Run(tt.name, func(t *testing.T) {
			out, err := CompressBytes(in, tt.algo, tt.level)
			if err != nil {
				t.Fatalf("Failed to compress: %v", err)
			}
			if len(out) == 0 || len(out) > len(in) {
				t.Errorf("Expected 0 < %d <= %d", len(out), len(in))
			}
		})
	}
}

func TestCodecExtensions(t *testing.T) {
	tests := map[Algorithm]string{
		AlgorithmZlib:   "gz",
		AlgorithmGzip:   "gz",
		AlgorithmBrotli: "br",
		AlgorithmZstd:   "zst",
		AlgorithmLZ4:    "lz4",
		AlgorithmSnappy: "sz",
	}
	for algo, want := range tests {
		codec, err := NewCodec(algo, 0)
		if err != nil {
			t.Fatalf("Failed to create %s codec: %v", algo, err)
		}
		if got := codec.Extension(); got != want {
			t.Errorf("%s: Extension() = %q, want %q", algo, got, want)
		}
		if got := codec.Name(); got != string(algo) {
			t.Errorf("Name() = %q, want %q", got, algo)
		}
	}
}

func TestNewCodecErrors(t *testing.T) {
	if _, err := NewCodec("rar", 0); !errors.Is(err, ErrUnsupportedAlgorithm) {
		t.Errorf("Expected ErrUnsupportedAlgorithm, got %v", err)
	}
	if _, err := NewCodec(AlgorithmBrotli, 12); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("Expected ErrInvalidLevel for brotli 12, got %v", err)
	}
	if _, err := NewCodec(AlgorithmLZ4, 10); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("Expected ErrInvalidLevel for lz4 10, got %v", err)
	}
	if _, err := NewCodec(AlgorithmZlib, 42); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("Expected ErrInvalidLevel for zlib 42, got %v", err)
	}
}

func TestDecompressCorruptedData(t *testing.T) {
	for _, algo := range []Algorithm{AlgorithmZlib, AlgorithmGzip, AlgorithmZstd, AlgorithmSnappy} {
		_, err := DecompressBytes([]byte("definitely not compressed"), algo)
		if !errors.Is(err, ErrCorruptedData) {
			t.Errorf("%s: expected ErrCorruptedData, got %v", algo, err)
		}
	}
}

func TestHasMagic(t *testing.T) {
	for _, tt := range allAlgorithms {
		out, err := CompressBytes(testText, tt.algo, tt.level)
		if err != nil {
			t.Fatalf("Failed to compress: %v", err)
		}
		if !HasMagic(tt.algo, out) {
			t.Errorf("%s: output does not start with its magic bytes", tt.name)
		}
	}
	if HasMagic(AlgorithmZstd, []byte("plain")) {
		t.Error("Expected plain text not to match zstd magic")
	}
}
