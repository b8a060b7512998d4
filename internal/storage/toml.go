package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/sethgrid/chirpet/internal/art"
	"github.com/sethgrid/chirpet/internal/pet"
)

const (
	ConfigVersion       = "1.0"
	DefaultName         = "Chirp"
	DefaultStyle        = "Default"
	DefaultAssetsDir    = "assets"
	DefaultLogFile      = "chirpet.log"
	DefaultTickInterval = 16 * time.Millisecond

	DirName      = ".chirpet"
	ConfigFile   = "config.toml"
	SnapshotFile = "pet.state.toml"
)

// ErrNoSnapshot is returned by LoadSnapshot when the pet has never been saved.
var ErrNoSnapshot = errors.New("no saved pet state")

// DefaultConfig returns a config for a new pet called name.
func DefaultConfig(name string) pet.Config {
	if name == "" {
		name = DefaultName
	}
	return pet.Config{
		Version:   ConfigVersion,
		Name:      name,
		Style:     DefaultStyle,
		AssetsDir: DefaultAssetsDir,
		Sheets: map[string]string{
			"Default":   "defaultspritesheet.png",
			"Christmas": "christmasspritesheet.png",
			"Sombrero":  "sombrerospritesheet.png",
		},
		SheetCols:    art.DefaultSheetCols,
		SheetRows:    art.DefaultSheetRows,
		LogFile:      DefaultLogFile,
		TickInterval: DefaultTickInterval,
	}
}

// LoadConfig reads config.toml, filling in defaults for anything left blank.
func LoadConfig(configPath string) (pet.Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return pet.Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig("")
	cfg.Sheets = nil
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return pet.Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Sheets == nil {
		cfg.Sheets = DefaultConfig("").Sheets
	}
	if cfg.SheetCols <= 0 {
		cfg.SheetCols = art.DefaultSheetCols
	}
	if cfg.SheetRows <= 0 {
		cfg.SheetRows = art.DefaultSheetRows
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}

	// Relative asset and log paths are relative to the config directory.
	dir := filepath.Dir(configPath)
	cfg.AssetsDir = resolve(dir, cfg.AssetsDir)
	cfg.LogFile = resolve(dir, cfg.LogFile)
	if cfg.StylesFile != "" {
		cfg.StylesFile = resolve(dir, cfg.StylesFile)
	}
	return cfg, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// SaveStyle persists the selected style without touching the rest of the file.
func SaveStyle(configPath, style string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if raw == nil {
		raw = make(map[string]any)
	}
	raw["style"] = style

	out, err := toml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := writeFile(configPath, out); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadSnapshot reads the saved mood and needs.
func LoadSnapshot(statePath string) (pet.Snapshot, error) {
	data, err := os.ReadFile(statePath)
	if errors.Is(err, os.ErrNotExist) {
		return pet.Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return pet.Snapshot{}, fmt.Errorf("failed to read state file: %w", err)
	}

	var snap pet.Snapshot
	if err := toml.Unmarshal(data, &snap); err != nil {
		return pet.Snapshot{}, fmt.Errorf("failed to parse state file: %w", err)
	}
	return snap, nil
}

// SaveSnapshot writes the engine's mood and needs next to the config.
func SaveSnapshot(snap pet.Snapshot, statePath string) error {
	data, err := toml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	dir := filepath.Dir(statePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := writeFile(statePath, data); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// InitPet creates baseDir/.chirpet with a fresh config and state.
func InitPet(name string, baseDir string) (string, error) {
	petDir := filepath.Join(baseDir, DirName)
	if err := os.MkdirAll(petDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create pet directory: %w", err)
	}

	configPath := filepath.Join(petDir, ConfigFile)
	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("a pet already lives in %s", petDir)
	}

	configData, err := toml.Marshal(DefaultConfig(name))
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, configData, 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	snap := pet.Snapshot{
		Mood:    pet.MoodHappy,
		Hunger:  0,
		Energy:  100,
		Style:   DefaultStyle,
		SavedAt: time.Now(),
	}
	if err := SaveSnapshot(snap, filepath.Join(petDir, SnapshotFile)); err != nil {
		return "", err
	}
	return configPath, nil
}

// writeFile replaces path atomically so a watcher never sees a half-written file.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
