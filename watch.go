package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/agentflare-ai/coffee-docmd/internal/coffeedoc"
)

// watchSources calls build whenever a CoffeeScript file under srcDir
// changes, until ctx is cancelled. Each build starts with an empty module
// cache, so edits are always picked up.
func watchSources(ctx context.Context, srcDir string, logger *log.Logger, build func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != srcDir && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		return err
	}
	logger.Info("watching for changes", "dir", srcDir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isDirCreate(event) {
				if err := watcher.Add(event.Name); err != nil {
					logger.Warn("cannot watch directory", "dir", event.Name, "err", err)
				}
				continue
			}
			if !affectsSources(event) {
				continue
			}
			logger.Info("rebuilding", "file", event.Name, "op", event.Op.String())
			if err := build(); err != nil {
				logger.Error("build failed", "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}

// affectsSources reports whether event touches a CoffeeScript source in a
// way that changes analyzer output.
func affectsSources(event fsnotify.Event) bool {
	if filepath.Ext(event.Name) != coffeedoc.SourceExt {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func isDirCreate(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) {
		return false
	}
	info, err := os.Stat(event.Name)
	return err == nil && info.IsDir()
}
