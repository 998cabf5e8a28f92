package reveal

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func TestAlphabet(t *testing.T) {
	require.Len(t, alphabet, 70)
	for _, r := range alphabet {
		assert.NotEqual(t, ' ', r)
	}
}

func TestSequence_CompletesAfterThreeTicksPerChar(t *testing.T) {
	for _, text := range []string{"a", "Hi", "Zach Kordas-Potter", "  lead", "résumé ok"} {
		frames := slices.Collect(Sequence(text, seeded()))
		n := len([]rune(text))

		require.Len(t, frames, 3*n, "text %q", text)
		assert.Equal(t, text, frames[len(frames)-1], "text %q", text)
		for _, f := range frames {
			assert.Len(t, []rune(f), n)
		}
	}
}

func TestSequence_SpacesNeverScrambled(t *testing.T) {
	text := "a b  c d"
	src := []rune(text)
	for frame := range Sequence(text, seeded()) {
		for i, r := range []rune(frame) {
			if src[i] == ' ' {
				assert.Equal(t, ' ', r, "frame %q pos %d", frame, i)
			} else {
				assert.NotEqual(t, ' ', r, "frame %q pos %d", frame, i)
			}
		}
	}
}

func TestState_RevealIsMonotonic(t *testing.T) {
	s := NewState("monotonic reveal")
	prev := s.Revealed()
	for !s.Done() {
		s.Advance()
		cur := s.Revealed()
		for i := range cur {
			if prev[i] {
				require.True(t, cur[i], "position %d un-revealed at iteration %v", i, s.Iteration())
			}
		}
		prev = cur
	}
	for i, ok := range prev {
		assert.True(t, ok, "position %d not revealed at end", i)
	}
}

func TestState_FirstFrameUsesAlphabet(t *testing.T) {
	s := NewState("abc")
	frame := s.Frame(seeded())
	for _, r := range frame {
		assert.True(t, strings.ContainsRune(Alphabet, r))
	}
	assert.Equal(t, 0.0, s.Iteration())
}

func TestState_IterationStepsInThirds(t *testing.T) {
	s := NewState("ab")
	s.Advance()
	s.Advance()
	assert.InDelta(t, 2.0/3.0, s.Iteration(), 1e-12)
	assert.Equal(t, []bool{true, false}, s.Revealed())
	s.Advance()
	assert.Equal(t, 1.0, s.Iteration())
	assert.Equal(t, []bool{true, false}, s.Revealed())
	s.Advance()
	assert.Equal(t, []bool{true, true}, s.Revealed())
}

func TestSequence_EmptyText(t *testing.T) {
	frames := slices.Collect(Sequence("", nil))
	assert.Empty(t, frames)
	assert.True(t, NewState("").Done())
}

func TestSequence_DeterministicWithSeed(t *testing.T) {
	a := slices.Collect(Sequence("seeded text", seeded()))
	b := slices.Collect(Sequence("seeded text", seeded()))
	assert.Equal(t, a, b)
}

func TestSequence_StopsEarly(t *testing.T) {
	count := 0
	for range Sequence("early exit", seeded()) {
		count++
		if count == 4 {
			break
		}
	}
	assert.Equal(t, 4, count)
}
