package fitness

import (
	"errors"
	"fmt"
	"time"

	"github.com/Zachkp/portfolio/internal/chart"
	"github.com/Zachkp/portfolio/internal/weight"
)

// FailureMessage is the only error text shown on the panel.
const FailureMessage = "Failed to load weight data"

// Status tags the variant held by a PanelState.
type Status int

// Panel statuses.
const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// MarshalText renders the status by name in JSON.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// PanelState is the renderable state of the weight panel. Only the fields
// belonging to Status are meaningful.
type PanelState struct {
	Status Status `json:"status"`
	Window Window `json:"window"`
	Epoch  uint64 `json:"epoch"`

	// Ready.
	Samples   []weight.Sample  `json:"samples,omitempty"`
	Stats     weight.Stats     `json:"stats"`
	Chart     chart.Projection `json:"chart"`
	NoData    bool             `json:"no_data,omitempty"`
	Integrity string           `json:"integrity,omitempty"`

	// Error.
	Message string `json:"message,omitempty"`
}

// LastUpdated returns the date of the most recent sample of a Ready panel.
func (s PanelState) LastUpdated() (time.Time, bool) {
	if s.Status != StatusReady || len(s.Samples) == 0 {
		return time.Time{}, false
	}
	return s.Samples[len(s.Samples)-1].Date, true
}

// FetchError wraps a failed fetch for a window.
type FetchError struct {
	Window Window
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %d-day weight data: %v", e.Window, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Result is the outcome of one fetch.
type Result struct {
	Samples []weight.Sample
	Err     error
}

// Outcome describes what Resolve did with a result.
type Outcome int

// Resolve outcomes.
const (
	OutcomeStale Outcome = iota
	OutcomeReady
	OutcomeEmpty
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStale:
		return "stale"
	case OutcomeReady:
		return "ready"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Panel is the window state machine. It performs no I/O and no locking;
// Controller serializes access to it.
type Panel struct {
	state PanelState
	epoch uint64
}

// State returns the current state.
func (p *Panel) State() PanelState { return p.state }

// Epoch returns the epoch of the most recently issued selection.
func (p *Panel) Epoch() uint64 { return p.epoch }

// Select validates w and moves the panel to Loading under a new epoch.
// An invalid window leaves the state untouched.
func (p *Panel) Select(w Window) (uint64, error) {
	if !w.Valid() {
		return 0, &InvalidWindowError{Value: fmt.Sprint(int(w))}
	}
	p.epoch++
	p.state = PanelState{Status: StatusLoading, Window: w, Epoch: p.epoch}
	return p.epoch, nil
}

// Resolve applies the result of the fetch issued under epoch. Results from
// superseded epochs are discarded without touching the state. The returned
// error is a data-integrity warning (*weight.OrderError) or the fetch failure.
func (p *Panel) Resolve(epoch uint64, res Result) (Outcome, error) {
	if epoch != p.epoch || p.state.Status != StatusLoading {
		return OutcomeStale, nil
	}
	w := p.state.Window

	if res.Err != nil {
		p.state = PanelState{Status: StatusError, Window: w, Epoch: epoch, Message: FailureMessage}
		return OutcomeFailed, &FetchError{Window: w, Err: res.Err}
	}

	if len(res.Samples) == 0 {
		p.state = PanelState{Status: StatusReady, Window: w, Epoch: epoch, NoData: true}
		return OutcomeEmpty, nil
	}

	next := PanelState{Status: StatusReady, Window: w, Epoch: epoch, Samples: res.Samples}
	orderErr := weight.CheckOrder(res.Samples)
	if orderErr != nil {
		next.Integrity = orderErr.Error()
	}

	stats, err := weight.ComputeStats(res.Samples)
	if err != nil {
		// Unreachable for a non-empty slice; treat it as a failed fetch.
		p.state = PanelState{Status: StatusError, Window: w, Epoch: epoch, Message: FailureMessage}
		return OutcomeFailed, &FetchError{Window: w, Err: err}
	}
	next.Stats = stats
	next.Chart = chart.Project(res.Samples)
	p.state = next

	if orderErr != nil {
		return OutcomeReady, orderErr
	}
	return OutcomeReady, nil
}

// IsIntegrityWarning reports whether err from Resolve only flags unordered data.
func IsIntegrityWarning(err error) bool {
	var oerr *weight.OrderError
	return errors.As(err, &oerr)
}
