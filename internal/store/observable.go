// Package store owns the in-memory trip state and mediates every mutation
// through the REST collaborator. Presenters observe it for change
// notifications and never mutate the collections themselves.
package store

import "bigtrip/internal/model"

// Event is a model change notification. Point is set for PATCH and for
// add/update MINOR events; Err is set for ERROR events.
type Event struct {
	Type  model.UpdateType
	Point *model.Point
	Err   error
}

// Observer receives model change notifications.
type Observer func(Event)

// Observable is the generic notification base the domain models embed.
type Observable struct {
	observers []Observer
}

// AddObserver registers the callback. Registration is append-only and not
// de-duplicated; registering the same callback twice invokes it twice.
func (o *Observable) AddObserver(fn Observer) {
	o.observers = append(o.observers, fn)
}

// Notify synchronously invokes every registered observer in registration
// order. There is no error isolation between observers: one that panics
// aborts the remaining notifications. Known limitation.
func (o *Observable) Notify(e Event) {
	for _, fn := range o.observers {
		fn(e)
	}
}
