package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Alia5/joymap/internal/log"
	"github.com/Alia5/joymap/internal/script"
	"github.com/Alia5/joymap/joymap"
)

// Watch keeps a mapper alive and reloads its mapping table whenever one of
// the mapping databases changes on disk.
type Watch struct {
	Script   string        `help:"Event script applied once at start, typically to connect devices" type:"existingfile"`
	Debounce time.Duration `help:"Quiet period before a changed database is reloaded" default:"250ms"`

	ready    func()
	onReload func(*joymap.Mapper)
}

// Run is called by Kong when the watch command is executed.
func (c *Watch) Run(g *Globals, logger *slog.Logger, events log.EventLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.watch(ctx, os.Stdout, g, logger, events)
}

func (c *Watch) watch(ctx context.Context, out io.Writer, g *Globals, logger *slog.Logger, events log.EventLogger) error {
	paths, _ := g.DBPaths()
	if len(paths) == 0 {
		return errors.New("no mapping database to watch")
	}

	table, _, err := g.LoadTable(logger)
	if err != nil {
		return err
	}
	m := g.NewMapper(table, logger)
	if c.Script != "" {
		s, err := script.ReadFile(c.Script)
		if err != nil {
			return err
		}
		if err := s.Apply(m, events); err != nil {
			return err
		}
	}
	reportSlots(out, m)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	// Directories are watched instead of files so that editors replacing the
	// file through a rename are noticed.
	for d := range dirs {
		if err := w.Add(d); err != nil {
			logger.Warn("cannot watch directory", "dir", d, "error", err)
		}
	}
	logger.Info("watching mapping databases", "files", len(targets))
	if c.ready != nil {
		c.ready()
	}

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			logger.Info("stopped watching")
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if _, hit := targets[filepath.Clean(ev.Name)]; !hit {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			logger.Debug("mapping database changed", "file", ev.Name, "op", ev.Op.String())
			fire = time.After(c.Debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		case <-fire:
			fire = nil
			table, _, err := g.LoadTable(logger)
			if err != nil {
				logger.Error("reload failed, keeping previous mappings", "error", err)
				continue
			}
			m.SetTable(table)
			logger.Info("mapping table reloaded", "mappings", table.NumMappings())
			reportSlots(out, m)
			if c.onReload != nil {
				c.onReload(m)
			}
		}
	}
}

func reportSlots(out io.Writer, m *joymap.Mapper) {
	fmt.Fprintf(out, "%d mappings loaded\n", m.Table().NumMappings())
	for i := 0; i < joymap.MaxNumJoysticks; i++ {
		am, ok := m.AssignedMapping(i)
		if !ok {
			continue
		}
		fmt.Fprintf(out, "slot=%d guid=%s name=%q mapped=%t row=%d\n", i, am.GUID, am.Name, am.Valid, am.Index)
	}
}
