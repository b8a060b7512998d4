package pet

import (
	"time"
)

// Config is the user-editable pet configuration stored in config.toml.
type Config struct {
	Version string `toml:"version"`
	Name    string `toml:"name"`

	// Style is the last selected visual style. It is written whenever the
	// user switches styles and read back at startup.
	Style      string            `toml:"style"`
	AssetsDir  string            `toml:"assetsDir"`
	Sheets     map[string]string `toml:"sheets"`
	SheetCols  int               `toml:"sheetCols"`
	SheetRows  int               `toml:"sheetRows"`
	StylesFile string            `toml:"stylesFile,omitempty"`

	LogFile      string        `toml:"logFile"`
	TickInterval time.Duration `toml:"tickInterval"`
}

// Snapshot is the part of the engine that survives restarts.
type Snapshot struct {
	Mood    Mood      `toml:"mood"`
	Hunger  float64   `toml:"hunger"`
	Energy  float64   `toml:"energy"`
	Style   string    `toml:"style"`
	SavedAt time.Time `toml:"savedAt"`
}
