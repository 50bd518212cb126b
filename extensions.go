package staticcompress

import (
	"bytes"
	"strings"

	"go.uber.org/zap"
)

// Algorithm represents a compression algorithm implementation
type Algorithm string

const (
	AlgorithmZlib   Algorithm = "zlib" // gzip container, standard library deflate
	AlgorithmGzip   Algorithm = "gzip" // gzip container, klauspost deflate
	AlgorithmBrotli Algorithm = "brotli"
	AlgorithmZstd   Algorithm = "zstd"
	AlgorithmLZ4    Algorithm = "lz4"
	AlgorithmSnappy Algorithm = "snappy"
)

// Method identifiers accepted in Config.Methods.
const (
	MethodZlib   = "gz+zlib"
	MethodGzip   = "gz"
	MethodBrotli = "br"
	MethodZstd   = "zst"
	MethodLZ4    = "lz4"
	MethodSnappy = "sz"
)

// Extension mapping
var extensionMap = map[Algorithm]string{
	AlgorithmZlib:   ".gz",
	AlgorithmGzip:   ".gz",
	AlgorithmBrotli: ".br",
	AlgorithmZstd:   ".zst",
	AlgorithmLZ4:    ".lz4",
	AlgorithmSnappy: ".sz",
}

// Magic bytes for compression format detection. Brotli streams have none.
var magicBytes = map[Algorithm][]byte{
	AlgorithmZlib:   {0x1f, 0x8b},
	AlgorithmGzip:   {0x1f, 0x8b},
	AlgorithmZstd:   {0x28, 0xb5, 0x2f, 0xfd},
	AlgorithmLZ4:    {0x04, 0x22, 0x4d, 0x18},
	AlgorithmSnappy: {0xff, 0x06, 0x00, 0x00, 0x73, 0x4e, 0x61, 0x50, 0x70, 0x59},
}

// methodSpec describes how a method identifier is instantiated.
type methodSpec struct {
	algo  Algorithm
	level int
}

var methodTable = map[string]methodSpec{
	MethodZlib:   {AlgorithmZlib, 9},
	MethodGzip:   {AlgorithmGzip, 9},
	MethodBrotli: {AlgorithmBrotli, 11},
	MethodZstd:   {AlgorithmZstd, 19},
	MethodLZ4:    {AlgorithmLZ4, 9},
	MethodSnappy: {AlgorithmSnappy, 0},
}

// Method is a configured method identifier bound to its codec.
type Method struct {
	ID    string
	Codec Codec
}

// KnownMethods returns the accepted method identifiers.
func KnownMethods() []string {
	return []string{MethodZlib, MethodGzip, MethodBrotli, MethodZstd, MethodLZ4, MethodSnappy}
}

// GetExtension returns the file extension for an algorithm
func GetExtension(algo Algorithm) string {
	if ext, ok := extensionMap[algo]; ok {
		return ext
	}
	return ""
}

// ArtifactName returns the artifact name of name for the extension ext
// (given without a dot).
func ArtifactName(name, ext string) string {
	return name + "." + ext
}

// HasMagic reports whether data starts with the magic bytes of algo.
// Algorithms without magic bytes always match.
func HasMagic(algo Algorithm, data []byte) bool {
	magic, ok := magicBytes[algo]
	if !ok {
		return true
	}
	return len(data) >= len(magic) && bytes.Equal(data[:len(magic)], magic)
}

// ParseMethods instantiates the codecs for the configured method
// identifiers, preserving order. Unknown identifiers are dropped and logged;
// repeats collapse onto the first occurrence. An empty result or two methods
// sharing an artifact extension is a *ConfigurationError.
func ParseMethods(ids []string, log *zap.Logger) ([]Method, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("using compress methods", zap.Strings("methods", ids))

	var (
		methods []Method
		seen    = make(map[string]bool)
		byExt   = make(map[string]string)
	)
	for _, id := range ids {
		ms, ok := methodTable[id]
		if !ok {
			log.Warn("ignoring unknown compress method", zap.String("method", id))
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true

		ext := strings.TrimPrefix(GetExtension(ms.algo), ".")
		if other, ok := byExt[ext]; ok {
			return nil, &ConfigurationError{
				Reason:  "extension collision: " + other + " and " + id + " both produce ." + ext,
				Methods: ids,
			}
		}
		byExt[ext] = id

		codec, err := NewCodec(ms.algo, ms.level)
		if err != nil {
			return nil, err
		}
		methods = append(methods, Method{ID: id, Codec: codec})
	}

	if len(methods) == 0 {
		return nil, &ConfigurationError{Reason: "no valid method", Methods: ids}
	}

	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.Codec.Name()
	}
	log.Info("using compressors", zap.Strings("compressors", names))
	return methods, nil
}
