package testutil

import (
	"context"
	"sync"

	"github.com/khoahotran/devconnector/internal/domain/profile"
)

// EventRecorder collects published profile events.
type EventRecorder struct {
	mu     sync.Mutex
	events []profile.Event
	Err    error
}

func (r *EventRecorder) PublishProfileEvent(_ context.Context, evt profile.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return r.Err
}

func (r *EventRecorder) Events() []profile.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]profile.Event(nil), r.events...)
}
