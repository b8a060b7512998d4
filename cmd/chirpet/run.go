package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/sethgrid/chirpet/internal/art"
	"github.com/sethgrid/chirpet/internal/storage"
	"github.com/sethgrid/chirpet/internal/term"
	"github.com/sethgrid/chirpet/internal/watch"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Let your pet loose in this terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := loadPet()
		if err != nil {
			return err
		}

		// The terminal belongs to the pet now, so logs go to a file.
		f, err := logFile(l.config)
		if err != nil {
			return err
		}
		defer f.Close()
		setupLogging(f)

		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to create screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("failed to initialize screen: %w", err)
		}
		defer screen.Fini()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		updates := make(chan string, 1)
		w, err := watch.NewWatcher(l.configPath)
		if err != nil {
			slog.Warn("config watcher unavailable, style edits need a restart", "error", err)
		} else {
			defer w.Close()
			go followStyle(ctx, w, l.configPath, updates)
		}

		driver, err := term.New(screen, l.engine, term.Options{
			Tick:         l.config.TickInterval,
			Styles:       l.catalog.Styles(),
			StyleUpdates: updates,
			OnStyle: func(style string) {
				if err := storage.SaveStyle(l.configPath, style); err != nil {
					slog.Error("failed to persist style", "style", style, "error", err)
				}
			},
		})
		if err != nil {
			return err
		}

		slog.Info("pet running", "name", l.engine.Name(), "style", l.engine.Style(), "mood", l.engine.Mood())
		if err := driver.Run(ctx); err != nil {
			return err
		}
		return l.save()
	},
}

// followStyle turns config edits into style changes for the driver.
func followStyle(ctx context.Context, w *watch.Watcher, configPath string, updates chan<- string) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-w.Events:
			if !ok {
				return
			}
			cfg, err := storage.LoadConfig(configPath)
			if err != nil {
				slog.Warn("config changed but could not be read", "path", configPath, "error", err)
				continue
			}
			select {
			case updates <- art.NormalizeStyle(cfg.Style):
			case <-ctx.Done():
				return
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", "error", err)
		}
	}
}
