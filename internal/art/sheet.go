package art

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/sethgrid/chirpet/internal/pet"
)

// ErrSheetMissing means a sprite sheet could not be found or read. Callers
// log it and load the style without a sheet.
var ErrSheetMissing = errors.New("sprite sheet missing")

const (
	DefaultSheetCols = 10
	DefaultSheetRows = 10
)

// FileSheet is a sprite sheet on disk, probed but not decoded. The renderer
// owns pixel decoding; the engine only needs the cell count.
type FileSheet struct {
	path       string
	cols, rows int
	cellW      float64
	cellH      float64
}

// OpenSheet checks that path is a readable PNG large enough for a cols x rows grid.
func OpenSheet(path string, cols, rows int) (*FileSheet, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("invalid sheet grid %dx%d", cols, rows)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSheetMissing, err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrSheetMissing, path, err)
	}
	if cfg.Width < cols || cfg.Height < rows {
		return nil, fmt.Errorf("%w: %s is %dx%d, too small for %dx%d cells", ErrSheetMissing, path, cfg.Width, cfg.Height, cols, rows)
	}

	return &FileSheet{
		path:  path,
		cols:  cols,
		rows:  rows,
		cellW: float64(cfg.Width) / float64(cols),
		cellH: float64(cfg.Height) / float64(rows),
	}, nil
}

func (s *FileSheet) ID() string { return s.path }
func (s *FileSheet) Len() int   { return s.cols * s.rows }

// cellSize returns the pixel size of one sprite cell.
func (s *FileSheet) cellSize() (w, h float64) { return s.cellW, s.cellH }

// SheetPath returns where the sprite sheet for style lives, using the
// config's explicit mapping first and "<style>spritesheet.png" otherwise.
func SheetPath(cfg pet.Config, style string) string {
	key := NormalizeStyle(style)
	name := ""
	for k, v := range cfg.Sheets {
		if NormalizeStyle(k) == key {
			name = v
			break
		}
	}
	if name == "" {
		name = key + "spritesheet.png"
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(cfg.AssetsDir, name)
}
