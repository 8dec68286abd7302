package store

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	// DismissalKey is the single well-known key the widget persists under.
	DismissalKey = "setup_checklist_dismissed"
	// DismissedValue is the only value that reads back as dismissed.
	DismissedValue = "dismissed"
)

// DismissalStore wraps a KV so that reads and writes of the dismissal flag never fail.
//
// Read resolves to false on any problem (missing key, unknown value, backend error, panic).
// Write swallows backend problems after logging them; the caller keeps its in-memory state.
type DismissalStore struct {
	kv  KV
	log *zap.Logger
}

func NewDismissalStore(kv KV, log *zap.Logger) *DismissalStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &DismissalStore{kv: kv, log: log}
}

func (d *DismissalStore) Read(ctx context.Context) (dismissed bool) {
	if d == nil || d.kv == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			d.log.Warn("dismissal read panicked; treating as not dismissed", zap.Any("panic", r))
			dismissed = false
		}
	}()

	v, ok, err := d.kv.Get(ctx, DismissalKey)
	if err != nil {
		d.log.Warn("dismissal read failed; treating as not dismissed",
			zap.String("location", d.kv.Location()), zap.Error(err))
		return false
	}
	return ok && strings.TrimSpace(v) == DismissedValue
}

func (d *DismissalStore) Write(ctx context.Context) {
	if d == nil || d.kv == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.log.Warn("dismissal write panicked; dismissal is session-only", zap.Any("panic", r))
		}
	}()

	if err := d.kv.Set(ctx, DismissalKey, DismissedValue); err != nil {
		d.log.Warn("dismissal write failed; dismissal is session-only",
			zap.String("location", d.kv.Location()), zap.Error(err))
		return
	}
	d.log.Debug("dismissal persisted", zap.String("location", d.kv.Location()))
}

// Clear removes the flag. Unlike Read/Write this reports errors: it is an explicit
// maintenance action (`checklist reset`), not part of the widget.
func (d *DismissalStore) Clear(ctx context.Context) (err error) {
	if d == nil || d.kv == nil {
		return ErrUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clear dismissal: %v", r)
		}
	}()
	return d.kv.Delete(ctx, DismissalKey)
}

func (d *DismissalStore) Location() string {
	if d == nil || d.kv == nil {
		return ""
	}
	return d.kv.Location()
}
