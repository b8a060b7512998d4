package main

import (
	"testing"
	"time"

	"github.com/sethgrid/chirpet/internal/art"
	"github.com/sethgrid/chirpet/internal/pet"
)

func TestCatchUpIsDeterministic(t *testing.T) {
	catalog, err := art.DefaultCatalog()
	if err != nil {
		t.Fatal(err)
	}
	now := time.Now()

	for seed := range uint64(40) {
		e, err := pet.NewEngine("Pip", catalog, art.DefaultStyle, pet.NewSeededRandom(seed))
		if err != nil {
			t.Fatal(err)
		}
		e.Restore(pet.Snapshot{Mood: pet.MoodHappy, Hunger: 0, Energy: 100})

		l := &loaded{engine: e, savedAt: now.Add(-24 * time.Hour)}
		l.catchUp(now)

		if e.Hunger() != 100 || e.Energy() != 0 {
			t.Fatalf("seed %d: hunger %v energy %v after a day away", seed, e.Hunger(), e.Energy())
		}
	}
}

func TestCatchUpSkipsUnsavedPet(t *testing.T) {
	catalog, err := art.DefaultCatalog()
	if err != nil {
		t.Fatal(err)
	}
	e, err := pet.NewEngine("Pip", catalog, art.DefaultStyle, pet.NewSeededRandom(1))
	if err != nil {
		t.Fatal(err)
	}

	(&loaded{engine: e}).catchUp(time.Now())
	if e.Hunger() != 0 || e.Energy() != 100 {
		t.Errorf("a never-saved pet should not drift: %v %v", e.Hunger(), e.Energy())
	}
}
