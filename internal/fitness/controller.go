package fitness

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/weight"
)

// ErrClosed is returned by SelectWindow after Close.
var ErrClosed = errors.New("fitness: controller closed")

// defaultFetchTimeout bounds a single fetch when no timeout is configured.
const defaultFetchTimeout = 10 * time.Second

// Fetcher retrieves the samples of the last days days, ascending by date.
type Fetcher interface {
	FetchWeights(ctx context.Context, days int) ([]weight.Sample, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, days int) ([]weight.Sample, error)

// FetchWeights calls f.
func (f FetcherFunc) FetchWeights(ctx context.Context, days int) ([]weight.Sample, error) {
	return f(ctx, days)
}

// Recorder receives controller events for telemetry.
type Recorder interface {
	FetchIssued(w Window)
	FetchResolved(w Window, outcome Outcome, elapsed time.Duration)
	IntegrityWarning(w Window)
}

type nopRecorder struct{}

func (nopRecorder) FetchIssued(Window)                          {}
func (nopRecorder) FetchResolved(Window, Outcome, time.Duration) {}
func (nopRecorder) IntegrityWarning(Window)                     {}

// Option configures a Controller.
type Option func(*Controller)

// WithFetchTimeout bounds each fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.fetchTimeout = d
		}
	}
}

// WithRecorder attaches a telemetry recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithDefaultWindow sets the window EnsureStarted selects.
func WithDefaultWindow(w Window) Option {
	return func(c *Controller) {
		if w.Valid() {
			c.defaultWindow = w
		}
	}
}

// Controller owns one visitor's weight panel. SelectWindow never blocks:
// each fetch runs in its own goroutine and reports back through
// OnFetchResolved, where results from superseded selections are dropped.
type Controller struct {
	fetcher       Fetcher
	log           logger.Logger
	recorder      Recorder
	fetchTimeout  time.Duration
	defaultWindow Window

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	panel  Panel
	closed bool
}

// NewController returns an Idle controller.
func NewController(fetcher Fetcher, log logger.Logger, opts ...Option) *Controller {
	if log == nil {
		log = logger.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		fetcher:       fetcher,
		log:           log,
		recorder:      nopRecorder{},
		fetchTimeout:  defaultFetchTimeout,
		defaultWindow: DefaultWindow,
		ctx:           ctx,
		cancel:        cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the panel.
func (c *Controller) State() PanelState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panel.State()
}

// SelectWindow moves the panel to Loading and issues a fetch for w under a
// new epoch. Re-selecting the current window fetches again.
func (c *Controller) SelectWindow(w Window) error {
	c.mu.Lock()
	epoch, err := c.selectLocked(w)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.issue(epoch, w)
	return nil
}

// EnsureStarted selects the default window if nothing has been selected yet.
// It reports whether a fetch was issued.
func (c *Controller) EnsureStarted() bool {
	c.mu.Lock()
	if c.panel.State().Status != StatusIdle {
		c.mu.Unlock()
		return false
	}
	w := c.defaultWindow
	epoch, err := c.selectLocked(w)
	c.mu.Unlock()
	if err != nil {
		return false
	}
	c.issue(epoch, w)
	return true
}

func (c *Controller) selectLocked(w Window) (uint64, error) {
	if c.closed {
		return 0, ErrClosed
	}
	epoch, err := c.panel.Select(w)
	if err != nil {
		return 0, err
	}
	c.wg.Add(1)
	return epoch, nil
}

func (c *Controller) issue(epoch uint64, w Window) {
	c.recorder.FetchIssued(w)
	c.log.Debug("Weight window selected",
		logger.Int("window", w.Days()),
		logger.Uint64("epoch", epoch),
	)
	go c.fetch(epoch, w)
}

func (c *Controller) fetch(epoch uint64, w Window) {
	defer c.wg.Done()

	ctx, cancel := context.WithTimeout(c.ctx, c.fetchTimeout)
	defer cancel()

	start := time.Now()
	samples, err := c.fetcher.FetchWeights(ctx, w.Days())
	c.resolve(epoch, w, Result{Samples: samples, Err: err}, time.Since(start))
}

// OnFetchResolved delivers the result of the fetch issued under epoch.
// Results for any epoch other than the latest selection are discarded.
func (c *Controller) OnFetchResolved(epoch uint64, res Result) {
	c.resolve(epoch, c.State().Window, res, 0)
}

func (c *Controller) resolve(epoch uint64, w Window, res Result, elapsed time.Duration) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	current := c.panel.Epoch()
	outcome, err := c.panel.Resolve(epoch, res)
	c.mu.Unlock()

	c.recorder.FetchResolved(w, outcome, elapsed)

	fields := []logger.Field{
		logger.Int("window", w.Days()),
		logger.Uint64("epoch", epoch),
	}
	switch outcome {
	case OutcomeStale:
		c.log.Debug("Discarded stale weight response", append(fields, logger.Uint64("current_epoch", current))...)
	case OutcomeFailed:
		c.log.Error("Failed to load weight data", append(fields, logger.Error(err))...)
	case OutcomeEmpty:
		c.log.Info("No weight data for window", fields...)
	case OutcomeReady:
		if IsIntegrityWarning(err) {
			c.recorder.IntegrityWarning(w)
			c.log.Warn("Weight samples not ascending by date", append(fields, logger.Error(err))...)
		}
	}
}

// Wait blocks until every issued fetch has reported back.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels outstanding fetches and waits for them. Results arriving
// after Close are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}
