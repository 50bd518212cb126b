package staticcompress

import (
	"bytes"
	"fmt"
	"io"
)

// Codec is a stateless byte-in/byte-out compressor bound to the file
// extension of the artifacts it produces.
//
// Compress must be deterministic: identical input yields identical output.
// Artifact freshness is judged by modification time only, so an embedded
// timestamp would make two runs over the same content disagree.
type Codec interface {
	// Name identifies the codec in logs, e.g. "brotli".
	Name() string
	// Extension returns the artifact extension without the dot, e.g. "br".
	Extension() string
	// Compress returns the compressed form of data.
	Compress(data []byte) ([]byte, error)
	// Decompress reverses Compress.
	Decompress(data []byte) ([]byte, error)
}

// algorithmCodec adapts an Algorithm and level to the Codec interface.
type algorithmCodec struct {
	name  string
	algo  Algorithm
	level int
}

var _ Codec = (*algorithmCodec)(nil)

// NewCodec returns a Codec for algo at the given level. A zero level picks
// the algorithm's default.
func NewCodec(algo Algorithm, level int) (Codec, error) {
	if GetExtension(algo) == "" {
		return nil, ErrUnsupportedAlgorithm
	}
	// Probe the level once so a bad level fails here and not mid-pass.
	zw, err := createCompressor(algo, io.Discard, level)
	if err != nil {
		return nil, err
	}
	zw.Close()
	return &algorithmCodec{name: string(algo), algo: algo, level: level}, nil
}

func (c *algorithmCodec) Name() string { return c.name }

func (c *algorithmCodec) Extension() string {
	return GetExtension(c.algo)[1:]
}

func (c *algorithmCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data) / 2)

	zw, err := createCompressor(c.algo, &buf, c.level)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, fmt.Errorf("%s: write: %w", c.name, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%s: close: %w", c.name, err)
	}
	return buf.Bytes(), nil
}

func (c *algorithmCodec) Decompress(data []byte) ([]byte, error) {
	zr, err := createDecompressor(c.algo, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", c.name, ErrCorruptedData, err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", c.name, ErrCorruptedData, err)
	}
	return out, nil
}

func (c *algorithmCodec) String() string {
	return fmt.Sprintf("%s(level=%d)", c.name, c.level)
}
