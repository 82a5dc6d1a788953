package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bigtrip/internal/model"
	"bigtrip/internal/store"
)

func TestObservable_NotifiesInRegistrationOrder(t *testing.T) {
	var obs store.Observable
	var order []string

	obs.AddObserver(func(e store.Event) { order = append(order, "first") })
	obs.AddObserver(func(e store.Event) { order = append(order, "second") })
	obs.AddObserver(func(e store.Event) { order = append(order, "third") })

	obs.Notify(store.Event{Type: model.UpdateMinor})

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestObservable_DuplicateObserverInvokedTwice(t *testing.T) {
	var obs store.Observable
	calls := 0
	fn := func(e store.Event) { calls++ }

	obs.AddObserver(fn)
	obs.AddObserver(fn)
	obs.Notify(store.Event{Type: model.UpdatePatch})

	assert.Equal(t, 2, calls)
}

func TestObservable_EventCarriesPayload(t *testing.T) {
	var obs store.Observable
	var got store.Event

	obs.AddObserver(func(e store.Event) { got = e })

	point := model.Point{ID: "p1"}
	obs.Notify(store.Event{Type: model.UpdatePatch, Point: &point})

	assert.Equal(t, model.UpdatePatch, got.Type)
	assert.Equal(t, "p1", got.Point.ID)
}
