package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"setup-checklist/internal/model"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// FileProvider reads ChecklistData from a local JSON or YAML fixture.
type FileProvider struct {
	Path string
}

func (p FileProvider) Fetch(ctx context.Context) (*model.ChecklistData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, err
	}
	var data model.ChecklistData
	switch strings.ToLower(filepath.Ext(p.Path)) {
	case ".json":
		err = json.Unmarshal(b, &data)
	default:
		err = yaml.Unmarshal(b, &data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(p.Path), err)
	}
	return &data, nil
}

// Watch notifies (coalesced) whenever the fixture is written, created, or replaced.
//
// We watch the parent directory: editors commonly save via rename, which drops a watch on
// the file itself.
func (p FileProvider) Watch(ctx context.Context) (<-chan struct{}, error) {
	abs, err := filepath.Abs(p.Path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				select {
				case out <- struct{}{}:
				default:
					// A notification is already pending.
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return out, nil
}
