package store

import (
	"context"
	"errors"
	"testing"
)

type failingKV struct {
	getErr   error
	setErr   error
	panicGet bool
	panicSet bool
	sets     int
}

func (f *failingKV) Get(context.Context, string) (string, bool, error) {
	if f.panicGet {
		panic("storage exploded")
	}
	return "", false, f.getErr
}

func (f *failingKV) Set(context.Context, string, string) error {
	f.sets++
	if f.panicSet {
		panic("quota exceeded")
	}
	return f.setErr
}

func (f *failingKV) Delete(context.Context, string) error { return f.setErr }
func (f *failingKV) Location() string                     { return "failing" }

func TestDismissalStore_ReadValues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cases := []struct {
		name  string
		value *string
		want  bool
	}{
		{name: "missing", value: nil, want: false},
		{name: "sentinel", value: strPtr(DismissedValue), want: true},
		{name: "sentinel with whitespace", value: strPtr(" dismissed\n"), want: true},
		{name: "true is not the sentinel", value: strPtr("true"), want: false},
		{name: "empty", value: strPtr(""), want: false},
	}
	for _, tc := range cases {
		kv := NewMemoryKV()
		if tc.value != nil {
			_ = kv.Set(ctx, DismissalKey, *tc.value)
		}
		d := NewDismissalStore(kv, nil)
		if got := d.Read(ctx); got != tc.want {
			t.Fatalf("%s: expected %v; got %v", tc.name, tc.want, got)
		}
	}
}

func TestDismissalStore_ReadFailuresResolveToFalse(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	for _, kv := range []KV{
		&failingKV{getErr: errors.New("disk on fire")},
		&failingKV{panicGet: true},
		DisabledKV{},
	} {
		if NewDismissalStore(kv, nil).Read(ctx) {
			t.Fatalf("%T: expected read failure to resolve to false", kv)
		}
	}

	var nilStore *DismissalStore
	if nilStore.Read(ctx) {
		t.Fatalf("expected nil store to read false")
	}
}

func TestDismissalStore_WriteFailuresAreSwallowed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	for _, kv := range []*failingKV{
		{setErr: errors.New("quota exceeded")},
		{panicSet: true},
	} {
		NewDismissalStore(kv, nil).Write(ctx)
		if kv.sets != 1 {
			t.Fatalf("expected one write attempt; got %d", kv.sets)
		}
	}
	NewDismissalStore(DisabledKV{}, nil).Write(ctx)
}

func TestDismissalStore_PersistsAcrossReload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	for _, backend := range []string{BackendSQLite, BackendJSON} {
		dir := t.TempDir()
		kv, err := OpenKV(backend, Store{Dir: dir})
		if err != nil {
			t.Fatalf("OpenKV(%s): %v", backend, err)
		}
		NewDismissalStore(kv, nil).Write(ctx)

		// Fresh store over the same dir simulates a reload.
		kv2, _ := OpenKV(backend, Store{Dir: dir})
		d := NewDismissalStore(kv2, nil)
		if !d.Read(ctx) {
			t.Fatalf("%s: expected dismissal to survive reload", backend)
		}

		if err := d.Clear(ctx); err != nil {
			t.Fatalf("%s: Clear: %v", backend, err)
		}
		if d.Read(ctx) {
			t.Fatalf("%s: expected cleared dismissal to read false", backend)
		}
	}
}

func TestDismissalStore_ClearReportsErrors(t *testing.T) {
	t.Parallel()

	d := NewDismissalStore(DisabledKV{}, nil)
	if err := d.Clear(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable; got %v", err)
	}
}

func strPtr(s string) *string { return &s }
