// Package fitness owns the weight panel: the selected lookback window, the
// fetches issued for it and the panel state rendered from their results.
package fitness

import (
	"fmt"
	"strconv"
)

// Window is a lookback period in days.
type Window int

// Selectable windows.
const (
	Window30  Window = 30
	Window90  Window = 90
	Window180 Window = 180
	Window365 Window = 365
)

// DefaultWindow is selected when the panel first mounts.
const DefaultWindow = Window90

// Windows lists the selectable windows in display order.
var Windows = []Window{Window30, Window90, Window180, Window365}

// Valid reports whether w is one of the selectable windows.
func (w Window) Valid() bool {
	switch w {
	case Window30, Window90, Window180, Window365:
		return true
	}
	return false
}

// Days returns the window length in days.
func (w Window) Days() int { return int(w) }

// Label is the button caption for w.
func (w Window) Label() string {
	switch w {
	case Window180:
		return "6 months"
	case Window365:
		return "1 year"
	default:
		return strconv.Itoa(int(w)) + " days"
	}
}

// InvalidWindowError is returned when a window outside the selectable set is requested.
type InvalidWindowError struct {
	Value string
}

func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("invalid window %q: must be one of 30, 90, 180, 365", e.Value)
}

// ParseWindow validates days as a Window.
func ParseWindow(days int) (Window, error) {
	w := Window(days)
	if !w.Valid() {
		return 0, &InvalidWindowError{Value: strconv.Itoa(days)}
	}
	return w, nil
}

// ParseWindowString parses a decimal day count, as sent by the window buttons.
func ParseWindowString(s string) (Window, error) {
	days, err := strconv.Atoi(s)
	if err != nil {
		return 0, &InvalidWindowError{Value: s}
	}
	return ParseWindow(days)
}
