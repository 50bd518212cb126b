package staticcompress

import (
	"context"
	"errors"
	"testing"
)

func TestVerify(t *testing.T) {
	base := NewMemFS()
	writeFile(t, base, "good.js", testText, testTime)
	writeFile(t, base, "bad.js", testText, testTime)
	writeFile(t, base, "partial.js", testText, testTime)

	cfs, err := New(base, smallConfig())
	if err != nil {
		t.Fatalf("Failed to create FS: %v", err)
	}
	sources := []Source{{Name: "good.js"}, {Name: "bad.js"}, {Name: "partial.js"}}
	if _, err := cfs.Run(context.Background(), sources); err != nil {
		t.Fatalf("Pass failed: %v", err)
	}

	// Corrupt one gzip artifact, replace a brotli one with another file's
	// content and drop one artifact entirely.
	writeFile(t, base, "bad.js.gz", []byte("garbage"), testTime)
	other, err := cfs.methods[1].Codec.Compress([]byte("other content"))
	if err != nil {
		t.Fatalf("Failed to compress: %v", err)
	}
	writeFile(t, base, "bad.js.br", other, testTime)
	if err := base.Remove("partial.js.br"); err != nil {
		t.Fatalf("Failed to remove: %v", err)
	}

	mismatches, err := cfs.Verify(context.Background(), sources)
	if err != nil {
		t.Fatalf("Failed to verify: %v", err)
	}
	if len(mismatches) != 2 {
		t.Fatalf("Expected 2 mismatches, got %v", mismatches)
	}
	if mismatches[0].Artifact != "bad.js.gz" || !errors.Is(mismatches[0].Err, ErrCorruptedData) {
		t.Errorf("Unexpected first mismatch: %v", mismatches[0])
	}
	if mismatches[1].Artifact != "bad.js.br" || !errors.Is(mismatches[1].Err, errContentMismatch) {
		t.Errorf("Unexpected second mismatch: %v", mismatches[1])
	}
}

func TestVerifySkipsRemovedOriginals(t *testing.T) {
	base := NewMemFS()
	writeFile(t, base, "app.js.br", []byte("anything"), testTime)
	cfs, err := New(base, smallConfig())
	if err != nil {
		t.Fatalf("Failed to create FS: %v", err)
	}
	mismatches, err := cfs.Verify(context.Background(), []Source{{Name: "app.js"}})
	if err != nil || len(mismatches) != 0 {
		t.Errorf("Expected nothing to verify, got %v, %v", mismatches, err)
	}
}
