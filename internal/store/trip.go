package store

import (
	"context"

	"golang.org/x/sync/errgroup"

	"bigtrip/internal/api"
	"bigtrip/internal/model"
)

// TripModel is the aggregate and single source of truth for points,
// offers and destinations. Points notifications are relayed to the trip
// model's own observers, so presenters subscribe in one place.
type TripModel struct {
	Observable

	points       *PointsModel
	offers       *OffersModel
	destinations *DestinationsModel

	initErr error
}

// NewTripModel builds the aggregate over a backend service. The service is
// injected, never reached through package state, so tests and demo mode
// swap it freely.
func NewTripModel(svc api.Service) *TripModel {
	m := &TripModel{
		points:       NewPointsModel(svc),
		offers:       NewOffersModel(svc),
		destinations: NewDestinationsModel(svc),
	}
	m.points.AddObserver(func(e Event) { m.Notify(e) })
	return m
}

// Init concurrently fetches points, offers and destinations. The model
// becomes ready only after all three settle; one rejection is total
// failure and none of the successful fetches is applied. Notifies INIT on
// success, ERROR with the cause on failure.
func (m *TripModel) Init(ctx context.Context) error {
	var (
		points       []model.Point
		offerGroups  []model.OfferGroup
		destinations []model.Destination
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		points, err = m.points.load(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		offerGroups, err = m.offers.load(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		destinations, err = m.destinations.load(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		m.initErr = err
		m.Notify(Event{Type: model.UpdateError, Err: err})
		return err
	}

	m.points.set(points)
	m.offers.set(offerGroups)
	m.destinations.set(destinations)
	m.Notify(Event{Type: model.UpdateInit})
	return nil
}

// Err returns the initialization failure, if any.
func (m *TripModel) Err() error {
	return m.initErr
}

// Points returns the current point collection.
func (m *TripModel) Points() []model.Point {
	return m.points.Points()
}

// Offers returns every offer group.
func (m *TripModel) Offers() []model.OfferGroup {
	return m.offers.Offers()
}

// Destinations returns every destination.
func (m *TripModel) Destinations() []model.Destination {
	return m.destinations.Destinations()
}

// AddPoint creates the point through the backend. On failure local state
// is untouched and the error propagates to the caller, which reverts the
// UI.
func (m *TripModel) AddPoint(ctx context.Context, update model.Point) error {
	return m.points.AddPoint(ctx, update)
}

// UpdatePoint replaces the point through the backend, notifying at the
// requested granularity.
func (m *TripModel) UpdatePoint(ctx context.Context, updateType model.UpdateType, update model.Point) error {
	return m.points.UpdatePoint(ctx, updateType, update)
}

// DeletePoint removes the point through the backend.
func (m *TripModel) DeletePoint(ctx context.Context, update model.Point) error {
	return m.points.DeletePoint(ctx, update)
}

// OffersByType returns the offer group for a point type, empty when the
// type has none.
func (m *TripModel) OffersByType(t model.PointType) model.OfferGroup {
	return m.offers.OffersByType(t)
}

// OffersByID resolves selected offer ids within a type's group.
func (m *TripModel) OffersByID(t model.PointType, ids []string) []model.Offer {
	return m.offers.OffersByID(t, ids)
}

// DestinationByID looks up a destination.
func (m *TripModel) DestinationByID(id string) (model.Destination, bool) {
	return m.destinations.DestinationByID(id)
}

// DestinationByName looks up a destination by name.
func (m *TripModel) DestinationByName(name string) (model.Destination, bool) {
	return m.destinations.DestinationByName(name)
}

// TotalCost sums base price plus selected offer prices over all points.
// Recomputed on every call; never cached across mutations.
func (m *TripModel) TotalCost() int {
	total := 0
	for _, p := range m.points.Points() {
		total += p.BasePrice
		for _, offer := range m.offers.OffersByID(p.Type, p.Offers) {
			total += offer.Price
		}
	}
	return total
}
