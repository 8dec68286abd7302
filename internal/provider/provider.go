package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"setup-checklist/internal/model"
)

// ErrNoSource is returned when no checklist source is configured.
var ErrNoSource = errors.New("no checklist source configured")

// Provider supplies the ordered onboarding steps for the current user.
//
// Implementations may be slow and may fail. Retries, if any, are the provider's business:
// the widget asks once per mount and once per change notification.
type Provider interface {
	Fetch(ctx context.Context) (*model.ChecklistData, error)
}

// Watcher is implemented by providers that can notify when their data may have changed.
// The channel is closed when ctx is done.
type Watcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Query is the widget's view of a fetch: loading, errored, or settled with data.
type Query struct {
	Data      *model.ChecklistData `json:"data,omitempty"`
	IsLoading bool                 `json:"isLoading"`
	IsError   bool                 `json:"isError"`
	Err       error                `json:"-"`
}

func Loading() Query { return Query{IsLoading: true} }

func Settled(data *model.ChecklistData, err error) Query {
	if err != nil {
		return Query{IsError: true, Err: err}
	}
	return Query{Data: data}
}

// Unavailable reports whether there is nothing to show: loading, errored, no data, or a
// list with no items. Callers can't tell these apart.
func (q Query) Unavailable() bool {
	return q.IsLoading || q.IsError || q.Data == nil || len(q.Data.Items) == 0
}

// Run performs one fetch and folds the outcome into a settled Query.
func Run(ctx context.Context, p Provider) Query {
	if p == nil {
		return Settled(nil, ErrNoSource)
	}
	data, err := p.Fetch(ctx)
	if err == nil {
		err = validate(data)
	}
	return Settled(data, err)
}

func validate(data *model.ChecklistData) error {
	if data == nil {
		return nil
	}
	seen := make(map[string]bool, len(data.Items))
	for i, it := range data.Items {
		id := strings.TrimSpace(it.ID)
		if id == "" {
			return fmt.Errorf("checklist item %d: missing id", i)
		}
		if seen[id] {
			return fmt.Errorf("checklist item %d: duplicate id %q", i, id)
		}
		seen[id] = true
	}
	return nil
}

// Options configure FromSource.
type Options struct {
	Token             string
	RequestsPerSecond float64
}

// FromSource picks a provider for source: http(s) URLs use the HTTP backend, anything else
// is a local fixture file.
func FromSource(source string, opts Options) (Provider, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrNoSource
	}
	lower := strings.ToLower(source)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewHTTPProvider(HTTPOptions{
			URL:               source,
			Token:             opts.Token,
			RequestsPerSecond: opts.RequestsPerSecond,
		})
	}
	return FileProvider{Path: source}, nil
}

// Static returns fixed data (or a fixed error). Each Fetch returns a fresh copy.
type Static struct {
	Data *model.ChecklistData
	Err  error
}

func (s Static) Fetch(ctx context.Context) (*model.ChecklistData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Data == nil {
		return nil, nil
	}
	items := make([]model.ChecklistItem, len(s.Data.Items))
	copy(items, s.Data.Items)
	return &model.ChecklistData{Items: items}, nil
}
