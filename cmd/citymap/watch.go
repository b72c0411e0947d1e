package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ha1tch/citymap/internal/ui"
	"github.com/ha1tch/citymap/pkg/mapfile"
)

// debounceDelay collapses the burst of events an editor save produces.
const debounceDelay = 100 * time.Millisecond

func newWatchCmd(a *app) *cobra.Command {
	var out string
	var width, height int

	cmd := &cobra.Command{
		Use:   "watch <map>",
		Short: "Re-render a map whenever its file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			target, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			w, h := a.canvasSize(width, height)

			dirty := false
			e, src, err := a.openMap(ctx, target, func() { dirty = true })
			if err != nil {
				return err
			}

			repaint := func() {
				if !dirty {
					return
				}
				stats, err := writeImage(e, out, w, h)
				if err != nil {
					ui.Fail("render: %v", err)
					return
				}
				dirty = false
				ui.Success("wrote %s (%d cities, %d routes)", out, stats.Nodes, stats.Edges)
			}
			repaint()

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("failed to create file watcher: %w", err)
			}
			defer watcher.Close()

			// Watch the directory so saves that replace the file are seen.
			if err := watcher.Add(filepath.Dir(target)); err != nil {
				return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
			}
			a.logger.Info("watching", slog.String("path", target), slog.String("output", out))

			return watchLoop(ctx, watcher.Events, watcher.Errors, target, debounceDelay, a.logger, func() {
				if err := mapfile.Load(ctx, src, e); err != nil {
					ui.Fail("reload: %v", err)
					return
				}
				repaint()
			})
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (.png or .svg)")
	cmd.Flags().IntVar(&width, "width", 0, "canvas width in pixels (default from config)")
	cmd.Flags().IntVar(&height, "height", 0, "canvas height in pixels (default from config)")
	cmd.MarkFlagRequired("output")
	return cmd
}

// watchLoop calls onChange once per burst of writes to target. It returns
// nil when ctx is done and an error if the event channel closes.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error,
	target string, delay time.Duration, logger *slog.Logger, onChange func()) error {

	debounce := time.NewTimer(delay)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	pending := false
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("map changed", slog.String("op", ev.Op.String()))
			pending = true
			debounce.Reset(delay)

		case err, ok := <-errs:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			logger.Warn("watcher error", slog.Any("err", err))

		case <-debounce.C:
			if pending {
				pending = false
				onChange()
			}
		}
	}
}
