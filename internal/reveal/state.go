// Package reveal animates a text label from scrambled symbols to its true
// characters, one third of a character per tick.
package reveal

import (
	"iter"
	"math/rand/v2"
	"strings"
)

// Alphabet is the set of placeholder symbols drawn for unrevealed positions.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"

// stepsPerChar is the denominator of the iteration counter: each tick
// advances the reveal by 1/stepsPerChar of a character.
const stepsPerChar = 3

var alphabet = []rune(Alphabet)

// RandSource picks placeholder symbols. *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand is the goroutine-safe process-wide source.
var DefaultRand RandSource = globalRand{}

// State is the reveal progress of a single text value. The iteration
// counter is kept as a whole number of thirds.
type State struct {
	text []rune
	step int
}

// NewState returns the initial state for text.
func NewState(text string) *State {
	return &State{text: []rune(text)}
}

// Text returns the source text.
func (s *State) Text() string { return string(s.text) }

// Iteration returns the fractional iteration counter.
func (s *State) Iteration() float64 {
	return float64(s.step) / stepsPerChar
}

// Done reports whether every position has been revealed.
func (s *State) Done() bool {
	return s.step >= stepsPerChar*len(s.text)
}

// Revealed reports, per rune position, whether the true character is shown.
// Spaces are always shown.
func (s *State) Revealed() []bool {
	out := make([]bool, len(s.text))
	for i, r := range s.text {
		out[i] = r == ' ' || s.revealed(i)
	}
	return out
}

func (s *State) revealed(i int) bool {
	return stepsPerChar*i < s.step
}

// Frame renders the display string at the current iteration.
func (s *State) Frame(rng RandSource) string {
	var b strings.Builder
	b.Grow(len(s.text))
	for i, r := range s.text {
		switch {
		case r == ' ':
			b.WriteRune(' ')
		case s.revealed(i):
			b.WriteRune(r)
		default:
			b.WriteRune(alphabet[rng.IntN(len(alphabet))])
		}
	}
	return b.String()
}

// Advance moves the iteration forward by one third of a character.
func (s *State) Advance() {
	s.step++
}

// Sequence returns the lazy, finite sequence of frames for text: one
// frame per tick, 3*len(text) frames in total, the last equal to text.
// Empty text yields nothing.
func Sequence(text string, rng RandSource) iter.Seq[string] {
	if rng == nil {
		rng = DefaultRand
	}
	return func(yield func(string) bool) {
		s := NewState(text)
		for !s.Done() {
			frame := s.Frame(rng)
			s.Advance()
			if !yield(frame) {
				return
			}
		}
	}
}
