package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sethgrid/chirpet/internal/art"
	"github.com/sethgrid/chirpet/internal/conditions"
	"github.com/sethgrid/chirpet/internal/discovery"
	"github.com/sethgrid/chirpet/internal/health"
	"github.com/sethgrid/chirpet/internal/pet"
	"github.com/sethgrid/chirpet/internal/storage"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

const Version = "v0.1.0"

var petNames = []string{
	"Pip",
	"Chirp",
	"Tweety",
	"Peep",
	"Skye",
	"Kiwi",
}

func randomPetName() string {
	return petNames[rand.IntN(len(petNames))]
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "chirpet",
		Short: "chirpet - a little bird that lives on your desktop",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(os.Stderr)
		},
		Run: func(cmd *cobra.Command, args []string) {
			if version, _ := cmd.Flags().GetBool("version"); version {
				fmt.Println(Version)
				return
			}
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to pet config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log engine transitions")
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(styleCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(w io.Writer) {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Hatch a new pet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		global, _ := cmd.Flags().GetBool("global")

		var baseDir string
		if global {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}
			baseDir = home
		} else {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			baseDir = cwd
		}

		name := randomPetName()
		if len(args) == 1 {
			name = args[0]
		}

		path, err := storage.InitPet(name, baseDir)
		if err != nil {
			return fmt.Errorf("failed to hatch pet: %w", err)
		}

		fmt.Printf("%s hatched! Config written to %s\n", name, path)
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("global", false, "Create the pet in your home directory")
}

// loaded is a pet read from disk and ready to tick.
type loaded struct {
	engine     *pet.Engine
	catalog    *art.Catalog
	config     pet.Config
	configPath string
	statePath  string
	savedAt    time.Time
}

func loadCatalog(cfg pet.Config) (*art.Catalog, error) {
	catalog, err := art.DefaultCatalog()
	if err != nil {
		return nil, err
	}
	if cfg.StylesFile != "" {
		if err := catalog.LoadOverridesFile(cfg.StylesFile); err != nil {
			return nil, fmt.Errorf("failed to load styles: %w", err)
		}
	}
	return catalog, nil
}

// openSheet returns nil rather than a typed nil so the engine sees "no sheet".
func openSheet(cfg pet.Config, style string) pet.Sheet {
	sheet, err := art.OpenSheet(art.SheetPath(cfg, style), cfg.SheetCols, cfg.SheetRows)
	if err != nil {
		slog.Warn("sprite sheet unavailable", "style", style, "error", err)
		return nil
	}
	return sheet
}

func loadPet() (*loaded, error) {
	cwd, _ := os.Getwd()
	path, err := discovery.Locate(configPath, cwd)
	if err != nil {
		return nil, err
	}

	cfg, err := storage.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load pet: %w", err)
	}
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	style := art.NormalizeStyle(cfg.Style)
	if !catalog.HasStyle(style) {
		slog.Warn("unknown style in config, using default", "style", cfg.Style)
		style = art.DefaultStyle
	}

	engine, err := pet.NewEngine(cfg.Name, catalog, style, pet.NewRandom())
	if err != nil {
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}
	if err := engine.LoadStyle(openSheet(cfg, style), style); err != nil {
		return nil, err
	}

	l := &loaded{
		engine:     engine,
		catalog:    catalog,
		config:     cfg,
		configPath: path,
		statePath:  discovery.GetStatePathFromConfig(path),
	}

	snap, err := storage.LoadSnapshot(l.statePath)
	switch {
	case errors.Is(err, storage.ErrNoSnapshot):
	case err != nil:
		return nil, err
	default:
		engine.Restore(snap)
		l.savedAt = snap.SavedAt
	}
	return l, nil
}

// catchUp lets needs drift for the time the pet was away.
func (l *loaded) catchUp(now time.Time) {
	if l.savedAt.IsZero() || !now.After(l.savedAt) {
		return
	}
	l.engine.Elapse(now.Sub(l.savedAt))
}

func (l *loaded) save() error {
	if err := storage.SaveSnapshot(l.engine.Snapshot(), l.statePath); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func executeStatefulCommand(fn func(*loaded) error) error {
	l, err := loadPet()
	if err != nil {
		return err
	}

	l.catchUp(time.Now())

	if err := fn(l); err != nil {
		return err
	}

	return l.save()
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how your pet is doing",
	RunE: func(cmd *cobra.Command, args []string) error {
		long, _ := cmd.Flags().GetBool("long")
		return executeStatefulCommand(func(l *loaded) error {
			e := l.engine
			now := time.Now()
			snap := e.Snapshot()
			snap.SavedAt = l.savedAt

			score := health.ComputeHealth(e.Hunger(), e.Energy(), health.ComputationWeighted)
			status := conditions.DeriveStatus(snap, now, score)

			fmt.Printf("%s is %s\n", e.Name(), conditions.FormatConditions(status.AllOrdered))
			if !long {
				return nil
			}

			fmt.Println()
			fmt.Printf("mood: %s\n", e.Mood())
			fmt.Printf("health: %d\n", status.Health)
			fmt.Printf("hunger: %.0f\n", e.Hunger())
			fmt.Printf("energy: %.0f\n", e.Energy())
			fmt.Printf("style: %s\n", e.Style())
			if _, visible := e.RenderData(); !visible {
				fmt.Printf("sprite sheet: missing (%s)\n", art.SheetPath(l.config, e.Style()))
			}
			if !l.savedAt.IsZero() {
				fmt.Printf("last seen: %s\n", humanize.Time(l.savedAt))
			}
			return nil
		})
	},
}

func init() {
	statusCmd.Flags().BoolP("long", "l", false, "Show the full stats card")
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Feed your pet",
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeStatefulCommand(func(l *loaded) error {
			l.engine.Feed()
			fmt.Printf("%s: %s\n", l.engine.Name(), l.engine.Speech())
			return nil
		})
	},
}

var styleCmd = &cobra.Command{
	Use:   "style [name]",
	Short: "Show or change your pet's style",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := loadPet()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			fmt.Printf("current: %s\n", l.engine.Style())
			fmt.Printf("available: %s\n", strings.Join(l.catalog.Styles(), ", "))
			return nil
		}

		style := art.NormalizeStyle(args[0])
		if !l.catalog.HasStyle(style) {
			return fmt.Errorf("%w: %s (available: %s)", pet.ErrUnknownStyle, args[0], strings.Join(l.catalog.Styles(), ", "))
		}
		if err := l.engine.LoadStyle(openSheet(l.config, style), style); err != nil {
			return err
		}
		if err := storage.SaveStyle(l.configPath, style); err != nil {
			return err
		}
		if err := l.save(); err != nil {
			return err
		}

		fmt.Printf("%s is now wearing the %s style\n", l.engine.Name(), style)
		return nil
	},
}

func logFile(cfg pet.Config) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
