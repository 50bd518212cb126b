package staticcompress

import (
	"context"
	"fmt"
	"os"
	"testing"
)

func generateHighlyCompressibleData(size int) []byte {
	data := make([]byte, size)
	pattern := []byte("The quick brown fox jumps over the lazy dog. ")
	for i := range data {
		data[i] = pattern[i%len(pattern)]
	}
	return data
}

func generateIncompressibleData(size int) []byte {
	data := make([]byte, size)
	seed := uint64(12345)
	for i := range data {
		seed = seed*1103515245 + 12345
		data[i] = byte(seed >> 16)
	}
	return data
}

func BenchmarkMethods(b *testing.B) {
	inputs := map[string][]byte{
		"text-64KB":   generateHighlyCompressibleData(64 * 1024),
		"random-64KB": generateIncompressibleData(64 * 1024),
	}
	for _, id := range KnownMethods() {
		methods, err := ParseMethods([]string{id}, nil)
		if err != nil {
			b.Fatal(err)
		}
		codec := methods[0].Codec
		for label, data := range inputs {
			b.Run(fmt.Sprintf("%s/%s", id, label), func(b *testing.B) {
				b.SetBytes(int64(len(data)))
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					if _, err := codec.Compress(data); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkFreshPass measures a pass where every artifact is fresh, the
// common case on redeploys.
func BenchmarkFreshPass(b *testing.B) {
	base := NewMemFS()
	cfg := DefaultConfig()
	cfg.MinSizeKB = 0
	cfs, err := New(base, cfg)
	if err != nil {
		b.Fatal(err)
	}

	data := generateHighlyCompressibleData(32 * 1024)
	var sources []Source
	for i := 0; i < 100; i++ {
		name := fmt.Sprintf("assets/file%03d.js", i)
		f, err := base.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			b.Fatal(err)
		}
		f.Write(data)
		f.Close()
		if err := base.Chtimes(name, testTime, testTime); err != nil {
			b.Fatal(err)
		}
		sources = append(sources, Source{Name: name})
	}
	if _, err := cfs.Run(context.Background(), sources); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := cfs.Run(context.Background(), sources); err != nil {
			b.Fatal(err)
		}
	}
}
