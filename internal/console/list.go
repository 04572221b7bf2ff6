package console

import (
	"context"
	"errors"
	"sync"
)

// Kind names an admin-managed entity collection.
type Kind string

const (
	KindNews     Kind = "news"
	KindRegions  Kind = "regions"
	KindCities   Kind = "cities"
	KindUsers    Kind = "users"
	KindAds      Kind = "ads"
	KindPartners Kind = "partners"
)

// ErrNoPendingDelete is returned by Confirm when nothing is awaiting
// confirmation.
var ErrNoPendingDelete = errors.New("console: no delete pending confirmation")

// Deleter fires the destructive call for one entity.
type Deleter func(ctx context.Context, id int) error

// Refresher re-fetches the entity list after a delete attempt.
type Refresher func(ctx context.Context) error

// PendingDelete holds the delete candidate and the label shown in the
// confirmation prompt.
type PendingDelete struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// ListCoordinator runs the two-step delete flow for one entity kind:
// idle, then pending-confirmation, then back to idle whether the user
// confirms or cancels. At most one delete is pending at a time; a new
// request replaces the previous one.
type ListCoordinator struct {
	mu      sync.Mutex
	kind    Kind
	delete  Deleter
	refresh Refresher
	pending *PendingDelete
}

func NewListCoordinator(kind Kind, del Deleter, refresh Refresher) *ListCoordinator {
	return &ListCoordinator{
		kind:    kind,
		delete:  del,
		refresh: refresh,
	}
}

// Kind returns the entity kind this coordinator manages.
func (l *ListCoordinator) Kind() Kind {
	return l.kind
}

// RequestDelete enters pending-confirmation for one entity, replacing
// any earlier pending request. No destructive call is made here.
func (l *ListCoordinator) RequestDelete(id int, label string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending = &PendingDelete{ID: id, Label: label}
}

// Pending returns the delete awaiting confirmation, if any.
func (l *ListCoordinator) Pending() (PendingDelete, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pending == nil {
		return PendingDelete{}, false
	}
	return *l.pending, true
}

// Cancel drops the pending delete without firing anything.
func (l *ListCoordinator) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending = nil
}

// Confirm fires the delete for the pending entity and returns to idle.
// The list is re-fetched regardless of whether the delete succeeded, so
// the view always reflects the server.
func (l *ListCoordinator) Confirm(ctx context.Context) error {
	l.mu.Lock()
	if l.pending == nil {
		l.mu.Unlock()
		return ErrNoPendingDelete
	}
	id := l.pending.ID
	l.pending = nil
	l.mu.Unlock()

	deleteErr := l.delete(ctx, id)

	if l.refresh != nil {
		if refreshErr := l.refresh(ctx); refreshErr != nil && deleteErr == nil {
			return refreshErr
		}
	}
	return deleteErr
}
