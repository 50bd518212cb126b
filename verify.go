package staticcompress

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"
)

// Mismatch describes an artifact whose content does not decompress to its
// source.
type Mismatch struct {
	Artifact string
	Method   string
	Err      error
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s (%s): %v", m.Artifact, m.Method, m.Err)
}

var errContentMismatch = errors.New("decompressed content differs from source")

// Verify decompresses every existing artifact of sources and compares it
// with the source content. Sources whose original is gone are skipped, as
// are missing artifacts. I/O errors other than missing files are returned.
func (cfs *FS) Verify(ctx context.Context, sources []Source) ([]Mismatch, error) {
	var mismatches []Mismatch
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return mismatches, err
		}
		if !cfs.selector.Allowed(src.Name) {
			continue
		}
		dest := cfs.config.destName(src.Name)
		data, err := cfs.readAll(dest)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return mismatches, err
		}

		for _, m := range cfs.methods {
			artifact := ArtifactName(dest, m.Codec.Extension())
			compressed, err := cfs.readAll(artifact)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return mismatches, err
			}

			if algo, ok := m.Codec.(*algorithmCodec); ok && !HasMagic(algo.algo, compressed) {
				mismatches = append(mismatches, Mismatch{Artifact: artifact, Method: m.ID, Err: ErrCorruptedData})
				continue
			}
			plain, err := m.Codec.Decompress(compressed)
			if err != nil {
				mismatches = append(mismatches, Mismatch{Artifact: artifact, Method: m.ID, Err: err})
				continue
			}
			if !bytes.Equal(plain, data) {
				mismatches = append(mismatches, Mismatch{Artifact: artifact, Method: m.ID, Err: errContentMismatch})
				continue
			}
			cfs.log.Debug("artifact verified", zap.String("artifact", artifact))
		}
	}
	return mismatches, nil
}
