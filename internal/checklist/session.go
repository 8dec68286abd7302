package checklist

import (
	"context"

	"setup-checklist/internal/model"
	"setup-checklist/internal/provider"
)

// DismissalPersister is the dismissal store as the widget sees it. Both calls are total:
// Read resolves to false on failure and Write never fails from the caller's view.
type DismissalPersister interface {
	Read(ctx context.Context) bool
	Write(ctx context.Context)
}

// Session is the state owned by one widget instance: the dismissal flag as observed in this
// session, and the latest query result. It is not safe for concurrent use; the UI event
// loop is its only caller.
type Session struct {
	store     DismissalPersister
	dismissal model.Dismissal
	query     provider.Query
}

func NewSession(store DismissalPersister) *Session {
	return &Session{store: store, query: provider.Loading()}
}

// ResolveDismissal performs the one read of the persisted flag.
func (s *Session) ResolveDismissal(ctx context.Context) model.Dismissal {
	dismissed := false
	if s.store != nil {
		dismissed = s.store.Read(ctx)
	}
	s.SetDismissal(model.DismissalFromBool(dismissed))
	return s.dismissal
}

// SetDismissal applies an already-read flag. A session that has been dismissed stays
// dismissed, so a late read can't bring the widget back.
func (s *Session) SetDismissal(d model.Dismissal) {
	if s.dismissal == model.DismissalDismissed {
		return
	}
	s.dismissal = d
}

func (s *Session) ApplyQuery(q provider.Query) {
	s.query = q
}

// Dismiss persists the flag and hides the widget for the rest of the session, whether or
// not persistence worked.
func (s *Session) Dismiss(ctx context.Context) {
	s.MarkDismissed()
	if s.store != nil {
		s.store.Write(ctx)
	}
}

// MarkDismissed hides the widget for the rest of the session without persisting. UI loops
// use it together with an asynchronous Write so the event loop never blocks on storage.
func (s *Session) MarkDismissed() {
	s.dismissal = model.DismissalDismissed
}

func (s *Session) State() State { return Resolve(s.dismissal, s.query) }

func (s *Session) Dismissal() model.Dismissal { return s.dismissal }

func (s *Session) Query() provider.Query { return s.query }

// Items returns the fetched items in backend order, or nil when unavailable.
func (s *Session) Items() []model.ChecklistItem {
	if s.query.Unavailable() {
		return nil
	}
	return s.query.Data.Items
}

func (s *Session) Progress() Progress { return Summarize(s.Items()) }
