package staticcompress

import "testing"

func TestSelectorEligible(t *testing.T) {
	s := NewSelector([]string{"js", "css", ""}, 30)

	tests := []struct {
		name string
		size int64
		want bool
	}{
		{"app.js", 30 * 1024, true},
		{"app.js", 30*1024 - 1, false},
		{"app.js", 1 << 20, true},
		{"site.css", 40 * 1024, true},
		{"image.png", 1 << 20, false},
		{"APP.JS", 1 << 20, false},
		{"js", 1 << 20, false},
		{"app.mjs", 1 << 20, false},
		{"app.js.map", 1 << 20, false},
		{"noext", 1 << 20, false},
	}
	for _, tt := range tests {
		if got := s.Eligible(tt.name, tt.size); got != tt.want {
			t.Errorf("Eligible(%q, %d) = %v, want %v", tt.name, tt.size, got, tt.want)
		}
	}
}

func TestSelectorZeroThreshold(t *testing.T) {
	s := NewSelector([]string{"txt"}, 0)
	if !s.Eligible("empty.txt", 0) {
		t.Error("Expected empty file to be eligible with a zero threshold")
	}
}

func TestSelectorNoExtensions(t *testing.T) {
	s := NewSelector(nil, 0)
	if s.Allowed("app.js") {
		t.Error("Expected nothing to be allowed without extensions")
	}
}
