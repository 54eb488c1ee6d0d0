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

	"quicknotes/client"
	"quicknotes/model"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchDelay time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <id> <file>",
	Short: "Autosave a note's content from a local file until interrupted",
	Long: `watch mirrors <file> into the note's content. Every change to the file
restarts the autosave delay, so a burst of writes results in one save.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s, err := openSession()
		if err != nil {
			return err
		}
		if err := s.store.LoadNotes(ctx, "", nil); err != nil {
			return err
		}
		if !s.store.Select(args[0]) {
			return fmt.Errorf("note %s not found", args[0])
		}
		note := *s.store.Selected()

		path, err := filepath.Abs(args[1])
		if err != nil {
			return err
		}

		saver := client.NewAutosaver(context.Background(), watchDelay, func(ctx context.Context, n model.Note) (*model.Note, error) {
			saved, err := s.store.UpdateNote(ctx, n)
			if err != nil {
				slog.Error("autosave failed", "id", n.ID, "error", err)
				return nil, err
			}
			slog.Info("saved", "id", saved.ID, "updated", saved.UpdatedAt.Format(time.RFC3339))
			return saved, nil
		})

		return watchFile(ctx, path, func(content string) {
			note.Content = content
			saver.Edit(note)
		}, saver.Flush)
	},
}

// watchFile calls onChange with the file's content after each write until ctx
// is done, then calls done. The parent directory is watched so editors that
// save by rename are still seen.
func watchFile(ctx context.Context, path string, onChange func(string), done func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	slog.Info("watching", "file", path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return done()
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				slog.Warn("could not read file", "file", path, "error", err)
				continue
			}
			if len(raw) == 0 {
				// Truncate-then-write shows up as an empty intermediate state.
				continue
			}
			onChange(string(raw))

		case err, ok := <-watcher.Errors:
			if !ok {
				return done()
			}
			slog.Error("watch error", "error", err)

		case <-ctx.Done():
			slog.Debug("stopping watcher")
			return done()
		}
	}
}

func init() {
	watchCmd.Flags().DurationVar(&watchDelay, "delay", client.DefaultAutosaveDelay, "Autosave idle delay")
	rootCmd.AddCommand(watchCmd)
}
