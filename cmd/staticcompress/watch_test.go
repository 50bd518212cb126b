package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/absfs/staticcompress"
)

func TestRelevantChanges(t *testing.T) {
	dir := t.TempDir()
	base, err := staticcompress.NewDirFS(dir)
	if err != nil {
		t.Fatalf("Failed to create dir filer: %v", err)
	}
	cfs, err := staticcompress.New(base, nil)
	if err != nil {
		t.Fatalf("Failed to create FS: %v", err)
	}
	a := &app{base: base, fs: cfs}
	root := cfs.Path(".")

	tests := []struct {
		name string
		want bool
	}{
		{"js/app.js", true},
		{"site.css", true},
		{"js/app.js.gz", false},
		{"js/app.js.br", false},
		{"js/.app.js.gz.tmp1a", false},
		{"logo.png", false},
	}
	for _, tt := range tests {
		p := filepath.Join(root, filepath.FromSlash(tt.name))
		if got := relevant(a, root, p); got != tt.want {
			t.Errorf("relevant(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAddTreeSkipsHiddenDirectories(t *testing.T) {
	dir := t.TempDir()
	for _, d := range []string{"js/vendor", ".git/objects", "css"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer w.Close()

	if err := addTree(w, dir); err != nil {
		t.Fatalf("Failed to watch tree: %v", err)
	}
	watched := make(map[string]bool)
	for _, p := range w.WatchList() {
		watched[p] = true
	}
	for _, d := range []string{"", "js", "js/vendor", "css"} {
		if !watched[filepath.Join(dir, filepath.FromSlash(d))] {
			t.Errorf("Expected %q to be watched", d)
		}
	}
	if watched[filepath.Join(dir, ".git")] || watched[filepath.Join(dir, ".git/objects")] {
		t.Error("Hidden directories must not be watched")
	}
}

func TestNewDirectoryTriggersPass(t *testing.T) {
	dir := t.TempDir()
	base, err := staticcompress.NewDirFS(dir)
	if err != nil {
		t.Fatalf("Failed to create dir filer: %v", err)
	}
	cfs, err := staticcompress.New(base, nil)
	if err != nil {
		t.Fatalf("Failed to create FS: %v", err)
	}
	a := &app{base: base, fs: cfs, log: zap.NewNop()}
	root := cfs.Path(".")

	w, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer w.Close()

	// A directory moved in together with its assets.
	moved := filepath.Join(root, "js")
	if err := os.MkdirAll(moved, 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(moved, "app.js"), []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if !triggersPass(a, w, root, fsnotify.Event{Name: moved, Op: fsnotify.Create}) {
		t.Error("Expected a new directory to schedule a pass")
	}
	found := false
	for _, p := range w.WatchList() {
		if p == moved {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected %s to be watched", moved)
	}

	if triggersPass(a, w, root, fsnotify.Event{Name: filepath.Join(moved, "app.js.br"), Op: fsnotify.Create}) {
		t.Error("Artifact writes must not schedule a pass")
	}
	if triggersPass(a, w, root, fsnotify.Event{Name: filepath.Join(moved, "app.js"), Op: fsnotify.Chmod}) {
		t.Error("Chmod must not schedule a pass")
	}
	if !triggersPass(a, w, root, fsnotify.Event{Name: filepath.Join(moved, "app.js"), Op: fsnotify.Write}) {
		t.Error("Expected an asset write to schedule a pass")
	}
}
