package store

import (
	"context"
	"errors"
	"fmt"

	"bigtrip/internal/api"
	"bigtrip/internal/model"
)

// ErrPointNotFound is returned by update/delete when the id is absent from
// the in-memory list. The guard fires before any network call.
var ErrPointNotFound = errors.New("point not found")

// PointsModel owns the point collection. All mutation goes through the
// backend first; local state changes only after the server confirms.
type PointsModel struct {
	Observable

	svc    api.Service
	points []model.Point
}

// NewPointsModel creates a points model backed by the given service.
func NewPointsModel(svc api.Service) *PointsModel {
	return &PointsModel{svc: svc}
}

// Points returns the current collection. Callers must treat it as
// read-only.
func (m *PointsModel) Points() []model.Point {
	return m.points
}

// load fetches and adapts the point list without touching model state, so
// the aggregate can stage results until every init fetch has settled.
func (m *PointsModel) load(ctx context.Context) ([]model.Point, error) {
	records, err := m.svc.Points(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch points: %w", err)
	}

	points := make([]model.Point, 0, len(records))
	for _, rec := range records {
		point, err := adaptPointToClient(rec)
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}
	return points, nil
}

func (m *PointsModel) set(points []model.Point) {
	m.points = points
}

// UpdatePoint sends the full replacement to the backend and swaps the
// entry in place on success. The notification granularity is the caller's
// choice: PATCH for a favorite-only toggle, MINOR for a full edit.
func (m *PointsModel) UpdatePoint(ctx context.Context, updateType model.UpdateType, update model.Point) error {
	index := m.indexOf(update.ID)
	if index == -1 {
		return fmt.Errorf("can't update point %q: %w", update.ID, ErrPointNotFound)
	}

	record, err := m.svc.UpdatePoint(ctx, adaptPointToServer(update))
	if err != nil {
		return err
	}
	updated, err := adaptPointToClient(record)
	if err != nil {
		return err
	}

	m.points[index] = updated
	m.Notify(Event{Type: updateType, Point: &updated})
	return nil
}

// AddPoint creates the point on the backend and prepends the
// server-confirmed result (id assigned by the server).
func (m *PointsModel) AddPoint(ctx context.Context, update model.Point) error {
	record, err := m.svc.AddPoint(ctx, adaptPointToServer(update))
	if err != nil {
		return err
	}
	created, err := adaptPointToClient(record)
	if err != nil {
		return err
	}

	m.points = append([]model.Point{created}, m.points...)
	m.Notify(Event{Type: model.UpdateMinor, Point: &created})
	return nil
}

// DeletePoint removes the point on the backend and locally.
func (m *PointsModel) DeletePoint(ctx context.Context, update model.Point) error {
	index := m.indexOf(update.ID)
	if index == -1 {
		return fmt.Errorf("can't delete point %q: %w", update.ID, ErrPointNotFound)
	}

	if err := m.svc.DeletePoint(ctx, update.ID); err != nil {
		return err
	}

	m.points = append(m.points[:index], m.points[index+1:]...)
	m.Notify(Event{Type: model.UpdateMinor})
	return nil
}

func (m *PointsModel) indexOf(id string) int {
	for i, p := range m.points {
		if p.ID == id {
			return i
		}
	}
	return -1
}
