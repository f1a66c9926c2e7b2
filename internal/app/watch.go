package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/fsnotify/fsnotify"

	"github.com/mikeh74/favicon-generator/internal/config"
	"github.com/mikeh74/favicon-generator/internal/imaging"
	"github.com/mikeh74/favicon-generator/internal/logging"
)

const (
	rebuildDebounce  = 150 * time.Millisecond
	decodeRetryMax   = 2 * time.Second
	decodeRetryFirst = 50 * time.Millisecond
	decodeRetryBurst = 500 * time.Millisecond
)

// runWatch performs an initial build, then rebuilds the artifact
// whenever the input file changes. Each rebuild runs the same one-shot
// pipeline; only decode errors are retried, because editors save files
// non-atomically and a change event can arrive mid-write.
func (g *Generator) runWatch(ctx context.Context) error {
	output := config.DeriveOutputPath(g.opts)
	lock, lockedByOther, err := acquireOutputLock(output)
	if err != nil {
		return err
	}
	if lockedByOther {
		return fmt.Errorf("another watcher is already rebuilding %s", output)
	}
	defer func() {
		_ = lock.Release()
	}()

	if err := g.buildOnce(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to initialize fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	input := filepath.Clean(g.opts.Args.InputFile)
	watchDir := filepath.Dir(input)
	if err := watcher.Add(watchDir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", watchDir, err)
	}
	g.logger.Info("watching input", logging.Field("path", input), logging.Field("output", output))

	debounce := time.NewTimer(rebuildDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			g.logger.Debug("stopping watcher: context canceled")
			return nil
		case event := <-watcher.Events:
			if filepath.Clean(event.Name) != input {
				continue
			}
			g.logger.Debugf("fsnotify event: op=%s path=%s", event.Op.String(), event.Name)
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				debounce.Reset(rebuildDebounce)
			}
		case err := <-watcher.Errors:
			if err != nil {
				g.logger.Warn("watcher error", logging.Field("error", err))
			}
		case <-debounce.C:
			g.rebuild(ctx)
		}
	}
}

// rebuild regenerates the artifact after a change event. Failures are
// logged and the watcher keeps running; the next save gets another try.
func (g *Generator) rebuild(ctx context.Context) {
	img, err := g.decodeInputRetrying(ctx)
	if err != nil {
		g.logger.Warn("rebuild skipped", logging.Field("error", err))
		return
	}
	if err := g.packageAndWrite(img); err != nil {
		g.logger.Warn("rebuild failed", logging.Field("error", err))
	}
}

func (g *Generator) decodeInputRetrying(ctx context.Context) (image.Image, error) {
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = decodeRetryFirst
	retry.MaxInterval = decodeRetryBurst

	return backoff.Retry(ctx, func() (image.Image, error) {
		img, err := g.decodeInput()
		if err == nil {
			return img, nil
		}
		// A half-written file decodes as corrupt; wait for the writer to
		// finish. Anything else will not fix itself.
		if errors.Is(err, imaging.ErrInvalidImage) {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	},
		backoff.WithBackOff(retry),
		backoff.WithMaxElapsedTime(decodeRetryMax),
		backoff.WithNotify(func(err error, next time.Duration) {
			g.logger.Debug("retrying decode",
				logging.Field("error", err),
				logging.Field("next_retry", next.String()))
		}),
	)
}
