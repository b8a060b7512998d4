package pet

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	minSpeechDelay = 30 * time.Second
	maxSpeechDelay = 90 * time.Second
	chatterTime    = 3000 * time.Millisecond
)

var vocabulary = []string{
	"chirp", "tweet", "hello", "seeds", "snack", "sun", "friend",
	"fly", "wings", "nap", "play", "wow", "hmm", "yay", "cursor",
	"shiny", "window", "peck", "fluff", "hop",
}

var terminators = []string{"!", ".", "?", "!!"}

func (e *Engine) tickSpeech(dt time.Duration) {
	if e.speechTimer > 0 {
		e.speechTimer -= dt
		if e.speechTimer <= 0 {
			e.speechTimer = 0
			e.speech = ""
		}
	}

	e.nextSpeech -= dt
	if e.nextSpeech <= 0 {
		e.SayRandomThing()
		e.nextSpeech = rollSpeechDelay(e.rng)
	}
}

func (e *Engine) say(text string, d time.Duration) {
	e.speech = text
	e.speechTimer = d
}

// HandleInteraction reacts to the user clicking the pet.
func (e *Engine) HandleInteraction() {
	if e.state == StateSleep {
		e.setMood(MoodGrumpy)
		e.SetState(StateShake)
		e.say("Mrrp!", 1000*time.Millisecond)
		return
	}

	switch e.mood {
	case MoodGrumpy:
		if e.hunger > hungryThreshold {
			e.say("I'm hungry!", complaintDuration)
			e.SetState(StateShake)
		} else {
			e.setMood(MoodHappy)
			e.SetState(StateJump)
		}
	case MoodHappy:
		if chance(e.rng, 0.3) {
			e.setMood(MoodHyper)
			e.SetState(StateSpin)
		} else {
			e.SetState(StateJump)
		}
	default:
		e.SetState(StateJump)
	}
	e.moodTimer = 0
}

// Feed empties hunger, cheers the pet up and gives it some energy.
func (e *Engine) Feed() {
	e.hunger = 0
	e.setMood(MoodHappy)
	e.say("Mmm!", complaintDuration)
	e.SetState(StateJump)
	e.energy = clamp(e.energy+20, minNeed, maxNeed)
}

// SayRandomThing babbles one to four words, sometimes the pet's own name.
func (e *Engine) SayRandomThing() {
	n := 1 + int(e.rng.Float64()*4)
	if n > 4 {
		n = 4
	}
	words := make([]string, 0, n)
	for range n {
		if e.name != "" && chance(e.rng, 0.2) {
			words = append(words, e.name)
			continue
		}
		words = append(words, pick(e.rng, vocabulary))
	}
	text := capitalize(strings.Join(words, " ")) + pick(e.rng, terminators)

	e.say(text, chatterTime)
	e.SetState(StateSpeak)
}

// SayName introduces the pet.
func (e *Engine) SayName() {
	e.say("I am "+e.name+"!", chatterTime)
	e.SetState(StateSpeak)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func rollSpeechDelay(r Random) time.Duration {
	return between(r, minSpeechDelay, maxSpeechDelay)
}
