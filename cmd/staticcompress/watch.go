package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Compress a directory and recompress whenever assets change",
	Long: `Run a pass over dir, then watch it and run another pass after assets
are created or modified. Events are debounced so that a burst of writes
triggers a single pass. Artifact writes do not trigger passes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

var debounce time.Duration

func init() {
	watchCmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "quiet period before a pass starts")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, args)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.pass(ctx, false); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	root := a.fs.Path(".")
	if err := addTree(w, root); err != nil {
		return err
	}
	a.log.Info("watching for changes", zap.String("dir", root))

	return watchLoop(ctx, a, w, root)
}

// addTree watches dir and every non-hidden directory below it; fsnotify
// watches are not recursive.
func addTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

func watchLoop(ctx context.Context, a *app, w *fsnotify.Watcher, root string) error {
	timer := time.NewTimer(debounce)
	timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !triggersPass(a, w, root, event) {
				continue
			}
			pending = true
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.log.Error("watcher error", zap.Error(err))

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			if err := a.pass(ctx, false); err != nil {
				// A failed pass is reported and retried on the next change.
				a.log.Error("compression pass failed", zap.Error(err))
			}
		}
	}
}

// triggersPass reports whether event should schedule a pass. A new
// directory is watched and schedules a pass for the files it arrived with.
func triggersPass(a *app, w *fsnotify.Watcher, root string, event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := addTree(w, event.Name); err != nil {
				a.log.Warn("failed to watch new directory", zap.Error(err))
			}
			a.log.Debug("directory added", zap.String("dir", event.Name))
			return true
		}
	}
	if !relevant(a, root, event.Name) {
		return false
	}
	a.log.Debug("asset changed", zap.String("file", event.Name), zap.Stringer("op", event.Op))
	return true
}

// relevant reports whether a change to the host path p can produce new
// artifacts. Artifacts, temporary files and other extensions are ignored.
func relevant(a *app, root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	name := filepath.ToSlash(rel)
	if strings.HasPrefix(filepath.Base(name), ".") {
		return false
	}
	return a.fs.Selector().Allowed(name)
}
