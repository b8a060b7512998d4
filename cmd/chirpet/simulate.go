package main

import (
	"cmp"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sethgrid/chirpet/internal/art"
	"github.com/sethgrid/chirpet/internal/desk"
	"github.com/sethgrid/chirpet/internal/pet"
	"github.com/spf13/cobra"
)

const (
	simDesktopWidth = 1920
	simPetWidth     = 128
)

type simOptions struct {
	Ticks  int
	DT     time.Duration
	Seed   uint64
	Name   string
	Style  string
	Cursor float64 // distance to the right of the window, 0 for no cursor
	Quiet  bool
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the behaviour engine headless and report what the pet did",
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts simOptions
		opts.Ticks, _ = cmd.Flags().GetInt("ticks")
		opts.DT, _ = cmd.Flags().GetDuration("dt")
		opts.Seed, _ = cmd.Flags().GetUint64("seed")
		opts.Name, _ = cmd.Flags().GetString("name")
		opts.Style, _ = cmd.Flags().GetString("style")
		opts.Cursor, _ = cmd.Flags().GetFloat64("cursor")
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")
		if opts.Seed == 0 {
			opts.Seed = rand.Uint64()
		}
		return simulate(cmd.OutOrStdout(), opts)
	},
}

func init() {
	simulateCmd.Flags().Int("ticks", 3750, "Number of ticks to run")
	simulateCmd.Flags().Duration("dt", 16*time.Millisecond, "Time per tick")
	simulateCmd.Flags().Uint64("seed", 0, "Random seed (0 picks one)")
	simulateCmd.Flags().String("name", "Pip", "Pet name")
	simulateCmd.Flags().String("style", art.DefaultStyle, "Style to animate")
	simulateCmd.Flags().Float64("cursor", 0, "Keep the cursor this many pixels right of the pet")
	simulateCmd.Flags().BoolP("quiet", "q", false, "Only print the summary")
}

// headlessSheet is a sheet with every cell present, so render data is always
// available without touching the filesystem.
type headlessSheet struct{}

func (headlessSheet) ID() string { return "headless" }
func (headlessSheet) Len() int   { return art.DefaultSheetCols * art.DefaultSheetRows }

func simulate(out io.Writer, opts simOptions) error {
	catalog, err := art.DefaultCatalog()
	if err != nil {
		return err
	}
	style := art.NormalizeStyle(opts.Style)
	e, err := pet.NewEngine(opts.Name, catalog, style, pet.NewSeededRandom(opts.Seed))
	if err != nil {
		return err
	}
	if err := e.LoadStyle(headlessSheet{}, style); err != nil {
		return err
	}

	walker := desk.NewWalker(desk.Bounds{Left: 0, Right: simDesktopWidth}, simPetWidth, simDesktopWidth-300, 800)
	ticksIn := make(map[pet.State]int)
	var transitions, chirps int
	prev, prevSpeech, chirped := e.State(), "", false
	elapsed := time.Duration(0)

	for range opts.Ticks {
		var pos *pet.Positions
		if opts.Cursor > 0 {
			window := walker.Window()
			pos = &pet.Positions{Cursor: pet.Point{X: window.X + opts.Cursor, Y: window.Y}, Window: window}
		}
		e.Update(opts.DT, pos)
		cursorX := 0.0
		if pos != nil {
			cursorX = pos.Cursor.X
		}
		walker.Step(e, cursorX)
		elapsed += opts.DT

		s := e.State()
		ticksIn[s]++
		if s != prev {
			transitions++
			if !opts.Quiet {
				fmt.Fprintf(out, "%9s  %-16s -> %-16s mood=%-6s hunger=%3.0f energy=%3.0f x=%d\n",
					elapsed.Round(time.Millisecond), prev, s, e.Mood(), e.Hunger(), e.Energy(), walker.X())
			}
			prev = s
		}
		if sp := e.Speech(); sp != "" && sp != prevSpeech && !opts.Quiet {
			fmt.Fprintf(out, "%9s  %s says %q\n", elapsed.Round(time.Millisecond), e.Name(), sp)
		}
		prevSpeech = e.Speech()
		if e.HasChirped() && !chirped {
			chirps++
		}
		chirped = e.HasChirped()
	}

	fmt.Fprintf(out, "\nseed %d: %s ticks, %s simulated, %s transitions, %s chirps\n",
		opts.Seed, humanize.Comma(int64(opts.Ticks)), elapsed, humanize.Comma(int64(transitions)), humanize.Comma(int64(chirps)))
	fmt.Fprintf(out, "final: %s, mood %s, hunger %.1f, energy %.1f\n\n", e.State(), e.Mood(), e.Hunger(), e.Energy())

	type row struct {
		state pet.State
		ticks int
	}
	var rows []row
	for s, n := range ticksIn {
		rows = append(rows, row{s, n})
	}
	slices.SortFunc(rows, func(a, b row) int {
		if c := cmp.Compare(b.ticks, a.ticks); c != 0 {
			return c
		}
		return cmp.Compare(a.state, b.state)
	})
	for _, r := range rows {
		share := 100 * float64(r.ticks) / float64(max(opts.Ticks, 1))
		fmt.Fprintf(out, "%-16s %8s  %5.1f%%\n", r.state, humanize.Comma(int64(r.ticks)), share)
	}
	return nil
}
