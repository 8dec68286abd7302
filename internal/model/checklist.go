package model

// ChecklistItem is one onboarding step as supplied by the backend.
//
// Items are display-ordered by the backend. Callers must not re-sort them by completion.
type ChecklistItem struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Href      string `json:"href" yaml:"href"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// ChecklistData is a single fetch result. It is treated as read-only once returned.
type ChecklistData struct {
	Items []ChecklistItem `json:"items" yaml:"items"`
}

// Dismissal is the observed state of the persisted "don't show again" flag.
//
// The zero value is DismissalUnresolved: the flag has not been read yet. It must never be
// treated like DismissalNotDismissed, otherwise the widget flashes before the read lands.
type Dismissal int

const (
	DismissalUnresolved Dismissal = iota
	DismissalNotDismissed
	DismissalDismissed
)

func DismissalFromBool(dismissed bool) Dismissal {
	if dismissed {
		return DismissalDismissed
	}
	return DismissalNotDismissed
}

func (d Dismissal) Resolved() bool { return d != DismissalUnresolved }

func (d Dismissal) String() string {
	switch d {
	case DismissalNotDismissed:
		return "not-dismissed"
	case DismissalDismissed:
		return "dismissed"
	default:
		return "unresolved"
	}
}
