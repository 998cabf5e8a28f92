package reveal

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the delay between frames.
const DefaultInterval = 30 * time.Millisecond

// Ticker delivers ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker is the TickerFunc backed by time.Ticker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Option configures an Animator.
type Option func(*Animator)

// WithInterval sets the tick interval.
func WithInterval(d time.Duration) Option {
	return func(a *Animator) {
		if d > 0 {
			a.interval = d
		}
	}
}

// WithRand sets the placeholder symbol source.
func WithRand(rng RandSource) Option {
	return func(a *Animator) {
		if rng != nil {
			a.rng = rng
		}
	}
}

// WithTicker replaces the ticker factory.
func WithTicker(fn TickerFunc) Option {
	return func(a *Animator) {
		if fn != nil {
			a.newTicker = fn
		}
	}
}

// Animator drives the reveal of one displayed label. At most one tick
// loop runs per Animator; starting a new text stops the previous loop first.
type Animator struct {
	interval  time.Duration
	rng       RandSource
	newTicker TickerFunc

	// lifecycle serializes Start and Stop.
	lifecycle sync.Mutex

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	current string
}

// New returns an idle Animator.
func New(opts ...Option) *Animator {
	a := &Animator{
		interval:  DefaultInterval,
		rng:       DefaultRand,
		newTicker: NewTimeTicker,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start begins revealing text and returns the channel of frames. The channel
// is closed after the final frame (equal to text), when ctx is done, or when
// the animator is stopped or restarted. Empty text closes the channel
// without emitting any frame.
func (a *Animator) Start(ctx context.Context, text string) <-chan string {
	a.lifecycle.Lock()
	defer a.lifecycle.Unlock()
	a.stop()

	frames := make(chan string)
	state := NewState(text)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = ""
	if state.Done() {
		a.current = text
		close(frames)
		return frames
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	a.cancel = cancel
	a.done = done
	go a.run(runCtx, cancel, state, frames, done)
	return frames
}

func (a *Animator) run(ctx context.Context, cancel context.CancelFunc, state *State, frames chan<- string, done chan<- struct{}) {
	ticker := a.newTicker(a.interval)
	defer func() {
		ticker.Stop()
		cancel()
		close(frames)
		close(done)
	}()

	for !state.Done() {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
		}

		frame := state.Frame(a.rng)
		state.Advance()

		a.mu.Lock()
		a.current = frame
		a.mu.Unlock()

		select {
		case frames <- frame:
		case <-ctx.Done():
			return
		}
	}
}

// Stop cancels the running loop, if any, and waits for it to release its ticker.
func (a *Animator) Stop() {
	a.lifecycle.Lock()
	defer a.lifecycle.Unlock()
	a.stop()
}

func (a *Animator) stop() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Current returns the most recently produced frame.
func (a *Animator) Current() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Running reports whether a tick loop is active.
func (a *Animator) Running() bool {
	a.mu.Lock()
	done := a.done
	a.mu.Unlock()
	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}
