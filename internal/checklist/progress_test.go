package checklist

import (
	"fmt"
	"testing"

	"setup-checklist/internal/model"

	"github.com/google/go-cmp/cmp"
)

func itemsWith(n, k int) []model.ChecklistItem {
	out := make([]model.ChecklistItem, n)
	for i := range out {
		out[i] = model.ChecklistItem{
			ID:        fmt.Sprintf("step-%d", i),
			Title:     fmt.Sprintf("Step %d", i),
			Href:      fmt.Sprintf("/steps/%d", i),
			Completed: i < k,
		}
	}
	return out
}

func TestPercent_MatchesRatio(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 12; n++ {
		prev := -1.0
		for k := 0; k <= n; k++ {
			got := Percent(itemsWith(n, k))
			want := 100 * float64(k) / float64(n)
			if k == n {
				want = 100
			}
			if got != want {
				t.Fatalf("n=%d k=%d: expected %v; got %v", n, k, want, got)
			}
			if got < prev {
				t.Fatalf("n=%d k=%d: percent decreased from %v to %v", n, k, prev, got)
			}
			prev = got
		}
	}
}

func TestPercent_EmptyIsZero(t *testing.T) {
	t.Parallel()

	if got := Percent(nil); got != 0 {
		t.Fatalf("expected 0 for nil; got %v", got)
	}
	if got := Percent([]model.ChecklistItem{}); got != 0 {
		t.Fatalf("expected 0 for empty; got %v", got)
	}
}

func TestSummarize_AllCompleteIffNonEmptyAndDone(t *testing.T) {
	t.Parallel()

	if Summarize(nil).AllComplete {
		t.Fatalf("empty list must not be all-complete")
	}
	for n := 1; n <= 6; n++ {
		for k := 0; k <= n; k++ {
			if got, want := Summarize(itemsWith(n, k)).AllComplete, k == n; got != want {
				t.Fatalf("n=%d k=%d: expected AllComplete=%v; got %v", n, k, want, got)
			}
		}
	}
}

func TestSummarize_OneOfThree(t *testing.T) {
	t.Parallel()

	got := Summarize(itemsWith(3, 1))
	want := Progress{Completed: 1, Total: 3, Percent: 100.0 / 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("progress mismatch (-want +got):\n%s", diff)
	}
	if got.Rounded() != 33 {
		t.Fatalf("expected rounded 33; got %d", got.Rounded())
	}
}

func TestSummarize_DoesNotReorderOrMutate(t *testing.T) {
	t.Parallel()

	items := []model.ChecklistItem{
		{ID: "b", Completed: false},
		{ID: "a", Completed: true},
	}
	before := append([]model.ChecklistItem(nil), items...)
	_ = Summarize(items)
	if diff := cmp.Diff(before, items); diff != "" {
		t.Fatalf("items changed (-before +after):\n%s", diff)
	}
}
