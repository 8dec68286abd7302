package checklist

import (
	"math"

	"setup-checklist/internal/model"
)

// Progress is derived from a fetched item list; it is never stored.
type Progress struct {
	Completed   int     `json:"completed"`
	Total       int     `json:"total"`
	Percent     float64 `json:"percent"`
	AllComplete bool    `json:"allComplete"`
}

// Percent returns 100*completed/total, or 0 for an empty list.
func Percent(items []model.ChecklistItem) float64 {
	return Summarize(items).Percent
}

func Summarize(items []model.ChecklistItem) Progress {
	p := Progress{Total: len(items)}
	for _, it := range items {
		if it.Completed {
			p.Completed++
		}
	}
	if p.Total == 0 {
		return p
	}
	p.AllComplete = p.Completed == p.Total
	if p.AllComplete {
		// Exact, independent of float rounding.
		p.Percent = 100
		return p
	}
	p.Percent = 100 * float64(p.Completed) / float64(p.Total)
	return p
}

// Rounded is the percent used for display (1 of 3 => 33).
func (p Progress) Rounded() int {
	return int(math.Round(p.Percent))
}

// Fraction is Percent in [0,1], for progress bars.
func (p Progress) Fraction() float64 {
	return p.Percent / 100
}
