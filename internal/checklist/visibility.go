package checklist

import (
	"setup-checklist/internal/model"
	"setup-checklist/internal/provider"
)

// State is the single render state chosen for the widget on every update.
type State int

const (
	// StateUnresolved: the dismissal flag has not been read yet. Render nothing.
	StateUnresolved State = iota
	// StateDismissed: the user asked not to see the widget. Render nothing.
	StateDismissed
	// StateUnavailable: loading, errored, or no data. Render nothing.
	StateUnavailable
	// StateComplete: every item is done. Render the celebration panel.
	StateComplete
	// StateActive: render the step list.
	StateActive
)

func (s State) String() string {
	switch s {
	case StateDismissed:
		return "dismissed"
	case StateUnavailable:
		return "unavailable"
	case StateComplete:
		return "complete"
	case StateActive:
		return "active"
	default:
		return "unresolved"
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Visible reports whether the state renders anything at all.
func (s State) Visible() bool {
	return s == StateComplete || s == StateActive
}

// Resolve picks the render state. Precedence is fixed: the first matching rule wins.
func Resolve(d model.Dismissal, q provider.Query) State {
	switch {
	case !d.Resolved():
		return StateUnresolved
	case d == model.DismissalDismissed:
		return StateDismissed
	case q.Unavailable():
		return StateUnavailable
	case Summarize(q.Data.Items).AllComplete:
		return StateComplete
	default:
		return StateActive
	}
}
