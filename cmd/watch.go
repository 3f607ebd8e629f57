package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/papapumpkin/neo/internal/telemetry"
	"github.com/papapumpkin/neo/internal/ui"
)

// reloadDebounce coalesces the burst of events a single save produces.
const reloadDebounce = 250 * time.Millisecond

// setupSignalContext returns a context that is canceled on SIGINT or SIGTERM.
func setupSignalContext(parent context.Context, printer *ui.Printer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			printer.Info("\nstopping watch...")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// watch reloads the data files and calls rerun each time one of them changes,
// until ctx is canceled. Load and rerun errors are printed and watching
// continues.
func (s *session) watch(ctx context.Context, rerun func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer watcher.Close()

	// Directories are watched so that files replaced by rename are still seen.
	targets := make(map[string]bool)
	for _, p := range []string{s.cfg.NEOsPath, s.cfg.CADPath} {
		targets[filepath.Clean(p)] = true
		dir := filepath.Dir(p)
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch: %s: %w", dir, err)
		}
	}
	s.printer.Info("watching data files for changes (ctrl-c to stop)")

	var (
		pending <-chan time.Time
		changed string
	)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			changed = event.Name
			pending = time.After(reloadDebounce)

		case <-pending:
			pending = nil
			s.printer.Reloading(changed)
			s.emitter.Record(telemetry.KindReload, map[string]any{"path": changed})
			if err := s.load(); err != nil {
				s.printer.Error(err.Error())
				continue
			}
			if err := rerun(); err != nil {
				s.printer.Error(err.Error())
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.printer.Error(fmt.Sprintf("watch: %v", err))
		}
	}
}
