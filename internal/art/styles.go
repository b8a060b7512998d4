package art

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sethgrid/chirpet/internal/pet"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var bundledStyles string

// animSpec is one state override as written in a styles file.
type animSpec struct {
	Frames   []int  `yaml:"frames"`
	Mirror   []int  `yaml:"mirror"`
	Interval int    `yaml:"interval"` // milliseconds
	Loop     bool   `yaml:"loop"`
	Next     string `yaml:"next"`
}

// LoadOverrides reads a YAML document of the form
//
//	style:
//	  state_name: {frames: [...], interval: 150, next: idle}
//
// and merges it into the catalog. A style listed with no states is valid and
// behaves exactly like the default.
func (c *Catalog) LoadOverrides(r io.Reader) error {
	var doc map[string]map[string]animSpec
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse styles: %w", err)
	}

	for name, states := range doc {
		key := NormalizeStyle(name)
		table, ok := c.styles[key]
		if !ok {
			table = make(map[pet.State]pet.AnimationDef)
			c.styles[key] = table
		}
		for stateName, spec := range states {
			s, err := pet.ParseState(stateName)
			if err != nil {
				return fmt.Errorf("style %s: %w", name, err)
			}
			def, err := spec.def()
			if err != nil {
				return fmt.Errorf("style %s/%s: %w", name, s, err)
			}
			table[s] = def
		}
	}
	return nil
}

// LoadOverridesFile merges a user styles file into the catalog.
func (c *Catalog) LoadOverridesFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open styles file: %w", err)
	}
	defer f.Close()
	return c.LoadOverrides(f)
}

func (s animSpec) def() (pet.AnimationDef, error) {
	if len(s.Frames) == 0 {
		return pet.AnimationDef{}, errors.New("no frames")
	}
	if s.Interval <= 0 {
		return pet.AnimationDef{}, errors.New("interval must be positive")
	}
	if len(s.Mirror) > 0 && len(s.Mirror) != len(s.Frames) {
		return pet.AnimationDef{}, fmt.Errorf("mirror has %d frames, want %d", len(s.Mirror), len(s.Frames))
	}
	interval := time.Duration(s.Interval) * time.Millisecond

	var def pet.AnimationDef
	switch {
	case s.Loop && s.Next != "":
		return pet.AnimationDef{}, errors.New("looping animation cannot have a successor")
	case s.Loop:
		def = pet.Looping(interval, s.Frames...)
	case s.Next != "":
		next, err := pet.ParseState(s.Next)
		if err != nil {
			return pet.AnimationDef{}, err
		}
		def = pet.Then(interval, next, s.Frames...)
	default:
		def = pet.Held(interval, s.Frames...)
	}
	if len(s.Mirror) > 0 {
		def = def.WithMirror(s.Mirror...)
	}
	return def, nil
}
