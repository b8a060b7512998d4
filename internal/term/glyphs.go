package term

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/sethgrid/chirpet/internal/art"
)

const glyphCells = art.DefaultSheetCols * art.DefaultSheetRows

// faces holds two text frames per sheet row. Rows follow the sprite sheet
// layout: wink, look, speak, walk right, walk left, sleep, flap, puff, flap
// hard, inquisitive.
var faces = [art.DefaultSheetRows][2]string{
	{"(o.o)", "(o.-)"},
	{"(o.o)", "(O.o)"},
	{"(o.o)", "(oOo)"},
	{"(o.o)>", "(o.o)>"},
	{"<(o.o)", "<(o.o)"},
	{"(-.-)", "(-.-)z"},
	{"\\(o.o)/", "/(o.o)\\"},
	{"((o.o))", "(( o.o ))"},
	{"\\\\(O.O)//", "//(O.O)\\\\"},
	{"(o.O)?", "(O.o)?"},
}

var hats = map[string]string{
	"christmas": "*",
	"sombrero":  "_/^\\_",
}

var tints = map[string]tcell.Color{
	"christmas": tcell.ColorRed,
	"sombrero":  tcell.ColorYellow,
}

// GlyphSheet stands in for a sprite sheet on a terminal: each cell index maps
// to a short text face.
type GlyphSheet struct {
	style string
}

func NewGlyphSheet(style string) *GlyphSheet {
	return &GlyphSheet{style: art.NormalizeStyle(style)}
}

func (g *GlyphSheet) ID() string { return "glyph:" + g.style }
func (g *GlyphSheet) Len() int   { return glyphCells }

// Face returns the text for a sheet cell, or "" when index is off the sheet.
func (g *GlyphSheet) Face(index int) string {
	if index < 0 || index >= glyphCells {
		return ""
	}
	row := index / art.DefaultSheetCols
	return faces[row][index%2]
}

// Hat is drawn on the line above the face.
func (g *GlyphSheet) Hat() string { return hats[g.style] }

func (g *GlyphSheet) Style() tcell.Style {
	if c, ok := tints[g.style]; ok {
		return tcell.StyleDefault.Foreground(c)
	}
	return tcell.StyleDefault
}

// flip reverses a face for a pet turned upside down or facing the other way.
func flip(face string) string {
	mirror := map[rune]rune{
		'(': ')', ')': '(', '<': '>', '>': '<', '/': '\\', '\\': '/',
	}
	runes := []rune(face)
	var b strings.Builder
	for i := len(runes) - 1; i >= 0; i-- {
		r := runes[i]
		if m, ok := mirror[r]; ok {
			r = m
		}
		b.WriteRune(r)
	}
	return b.String()
}
