package staticcompress

// Preset configurations for common deployments

// BrotliOnlyConfig returns a configuration producing only .br artifacts,
// for servers whose clients all accept brotli.
func BrotliOnlyConfig() *Config {
	c := DefaultConfig()
	c.Methods = []string{MethodBrotli}
	return c
}

// ModernConfig adds zstd artifacts next to gzip and brotli.
// Compression uses the klauspost gzip implementation.
func ModernConfig() *Config {
	c := DefaultConfig()
	c.Methods = []string{MethodGzip, MethodBrotli, MethodZstd}
	c.Extensions = append(c.Extensions, "json", "wasm", "map", "mjs")
	c.MinSizeKB = 1
	return c
}

// CompressBytes compresses a byte slice using the specified algorithm and level
func CompressBytes(data []byte, algo Algorithm, level int) ([]byte, error) {
	c, err := NewCodec(algo, level)
	if err != nil {
		return nil, err
	}
	return c.Compress(data)
}

// DecompressBytes decompresses a byte slice using the specified algorithm
func DecompressBytes(data []byte, algo Algorithm) ([]byte, error) {
	c, err := NewCodec(algo, 0)
	if err != nil {
		return nil, err
	}
	return c.Decompress(data)
}

// GetCompressionRatio calculates the compression ratio for given original and compressed sizes
// Returns a value between 0 and 1, where lower is better
// E.g., 0.5 means the compressed size is 50% of the original
func GetCompressionRatio(originalSize, compressedSize int64) float64 {
	if originalSize == 0 {
		return 0
	}
	return float64(compressedSize) / float64(originalSize)
}

// GetCompressionPercentage calculates the compression percentage
// Returns the percentage of space saved (0-100)
// E.g., 50 means 50% space savings
func GetCompressionPercentage(originalSize, compressedSize int64) float64 {
	if originalSize == 0 {
		return 0
	}
	return (1 - float64(compressedSize)/float64(originalSize)) * 100
}
