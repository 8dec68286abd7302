package checklist

import (
	"errors"
	"testing"

	"setup-checklist/internal/model"
	"setup-checklist/internal/provider"
)

func TestResolve_Precedence(t *testing.T) {
	t.Parallel()

	active := &model.ChecklistData{Items: itemsWith(3, 1)}
	done := &model.ChecklistData{Items: itemsWith(2, 2)}
	empty := &model.ChecklistData{}

	queries := map[string]provider.Query{
		"loading": provider.Loading(),
		"error":   provider.Settled(nil, errors.New("boom")),
		"nodata":  provider.Settled(nil, nil),
		"empty":   provider.Settled(empty, nil),
		"active":  provider.Settled(active, nil),
		"done":    provider.Settled(done, nil),
	}

	for name, q := range queries {
		if got := Resolve(model.DismissalUnresolved, q); got != StateUnresolved {
			t.Fatalf("unresolved/%s: expected %v; got %v", name, StateUnresolved, got)
		}
		if got := Resolve(model.DismissalDismissed, q); got != StateDismissed {
			t.Fatalf("dismissed/%s: expected %v; got %v", name, StateDismissed, got)
		}
	}

	cases := []struct {
		query string
		want  State
	}{
		{"loading", StateUnavailable},
		{"error", StateUnavailable},
		{"nodata", StateUnavailable},
		{"empty", StateUnavailable},
		{"active", StateActive},
		{"done", StateComplete},
	}
	for _, tc := range cases {
		if got := Resolve(model.DismissalNotDismissed, queries[tc.query]); got != tc.want {
			t.Fatalf("not-dismissed/%s: expected %v; got %v", tc.query, tc.want, got)
		}
	}
}

func TestState_Visible(t *testing.T) {
	t.Parallel()

	for _, s := range []State{StateUnresolved, StateDismissed, StateUnavailable} {
		if s.Visible() {
			t.Fatalf("%v must render nothing", s)
		}
	}
	for _, s := range []State{StateComplete, StateActive} {
		if !s.Visible() {
			t.Fatalf("%v must render", s)
		}
	}
}
