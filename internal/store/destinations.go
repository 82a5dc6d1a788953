package store

import (
	"context"
	"fmt"

	"bigtrip/internal/api"
	"bigtrip/internal/model"
)

// DestinationsModel holds the immutable destination reference data.
type DestinationsModel struct {
	svc          api.Service
	destinations []model.Destination
}

// NewDestinationsModel creates a destinations model backed by the given
// service.
func NewDestinationsModel(svc api.Service) *DestinationsModel {
	return &DestinationsModel{svc: svc}
}

// Destinations returns every destination.
func (m *DestinationsModel) Destinations() []model.Destination {
	return m.destinations
}

func (m *DestinationsModel) load(ctx context.Context) ([]model.Destination, error) {
	records, err := m.svc.Destinations(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch destinations: %w", err)
	}
	destinations := make([]model.Destination, 0, len(records))
	for _, rec := range records {
		destinations = append(destinations, adaptDestination(rec))
	}
	return destinations, nil
}

func (m *DestinationsModel) set(destinations []model.Destination) {
	m.destinations = destinations
}

// DestinationByID looks up a destination. The second return is false when
// the id is unknown; a point referencing one is a recognized referential
// gap, handled per row by the presenter.
func (m *DestinationsModel) DestinationByID(id string) (model.Destination, bool) {
	for _, d := range m.destinations {
		if d.ID == id {
			return d, true
		}
	}
	return model.Destination{}, false
}

// DestinationByName looks up a destination by its unique name.
func (m *DestinationsModel) DestinationByName(name string) (model.Destination, bool) {
	for _, d := range m.destinations {
		if d.Name == name {
			return d, true
		}
	}
	return model.Destination{}, false
}
