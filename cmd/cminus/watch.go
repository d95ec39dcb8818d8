package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *options) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-check a C-- file every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cfg := opts.config()
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

			run := func() {
				if _, err := checkFile(cfg, path, false, out, errOut); err != nil {
					fmt.Fprintln(errOut, "error:", err)
				}
			}

			w, err := newFileWatcher(path)
			if err != nil {
				return err
			}
			defer w.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			run()
			opts.logger.Info("watching for changes", "file", path, "debounce", debounce)
			return w.Run(ctx, debounce, func() {
				fmt.Fprintf(out, "--- %s changed\n", path)
				run()
			})
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 250*time.Millisecond, "quiet period before re-checking after a change")
	return cmd
}

// fileWatcher reports changes to one file. It watches the file's directory,
// so that editors which save by replacing the file are still seen.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
}

func newFileWatcher(path string) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	abs = filepath.Clean(abs)

	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}
	return &fileWatcher{watcher: watcher, path: abs}, nil
}

func (w *fileWatcher) Close() error {
	return w.watcher.Close()
}

// Run calls onChange once per burst of changes to the file, after
// debounce has passed without a further change. It returns when ctx is
// done or the watcher fails.
func (w *fileWatcher) Run(ctx context.Context, debounce time.Duration, onChange func()) error {
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	pending := false

	resetDebounce := func() {
		if pending {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		}
		timer.Reset(debounce)
		pending = true
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			resetDebounce()
		case <-timer.C:
			if pending {
				pending = false
				onChange()
			}
		case watchErr, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return watchErr
		}
	}
}
