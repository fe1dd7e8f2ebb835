package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 200 * time.Millisecond

// WatchPrompt reloads p whenever its resume file is written or replaced,
// until ctx is done. The parent directory is watched so editors that save
// by rename are picked up.
func WatchPrompt(ctx context.Context, p *Prompt, log *zap.Logger) error {
	if p.Path() == "" {
		return fmt.Errorf("watch prompt: no resume path")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target := filepath.Clean(p.Path())
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	log.Info("watching resume", zap.String("path", target))

	timer := time.NewTimer(reloadDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				timer.Reset(reloadDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("resume watcher error", zap.Error(err))

		case <-timer.C:
			if err := p.Reload(); err != nil {
				log.Warn("resume reload failed, keeping previous prompt", zap.Error(err))
				continue
			}
			log.Info("resume reloaded", zap.String("path", target))
		}
	}
}
