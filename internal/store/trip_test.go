package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bigtrip/internal/api"
	"bigtrip/internal/model"
	"bigtrip/internal/store"
)

// mockService is a hand-written double for api.Service. Each method is a
// function field; set only what the test needs. The counters record how
// often the network was touched.
type mockService struct {
	points       func(ctx context.Context) ([]api.PointRecord, error)
	destinations func(ctx context.Context) ([]api.DestinationRecord, error)
	offers       func(ctx context.Context) ([]api.OfferGroupRecord, error)
	updatePoint  func(ctx context.Context, rec api.PointRecord) (api.PointRecord, error)
	addPoint     func(ctx context.Context, rec api.PointRecord) (api.PointRecord, error)
	deletePoint  func(ctx context.Context, id string) error

	updateCalls int
	deleteCalls int
}

var _ api.Service = (*mockService)(nil)

func (m *mockService) Points(ctx context.Context) ([]api.PointRecord, error) {
	return m.points(ctx)
}

func (m *mockService) Destinations(ctx context.Context) ([]api.DestinationRecord, error) {
	return m.destinations(ctx)
}

func (m *mockService) Offers(ctx context.Context) ([]api.OfferGroupRecord, error) {
	return m.offers(ctx)
}

func (m *mockService) UpdatePoint(ctx context.Context, rec api.PointRecord) (api.PointRecord, error) {
	m.updateCalls++
	return m.updatePoint(ctx, rec)
}

func (m *mockService) AddPoint(ctx context.Context, rec api.PointRecord) (api.PointRecord, error) {
	return m.addPoint(ctx, rec)
}

func (m *mockService) DeletePoint(ctx context.Context, id string) error {
	m.deleteCalls++
	return m.deletePoint(ctx, id)
}

// taxiFixture matches the canonical scenario: one taxi point on
// 2019-03-18, base price 20, one selected offer priced 20.
func taxiFixture() *mockService {
	return &mockService{
		points: func(context.Context) ([]api.PointRecord, error) {
			return []api.PointRecord{{
				ID:          "1",
				Type:        "taxi",
				Destination: "d1",
				DateFrom:    "2019-03-18T10:30:00.000Z",
				DateTo:      "2019-03-18T11:00:00.000Z",
				BasePrice:   20,
				Offers:      []string{"taxi-1"},
			}}, nil
		},
		destinations: func(context.Context) ([]api.DestinationRecord, error) {
			return []api.DestinationRecord{{ID: "d1", Name: "Amsterdam"}}, nil
		},
		offers: func(context.Context) ([]api.OfferGroupRecord, error) {
			return []api.OfferGroupRecord{{
				Type: "taxi",
				Offers: []api.OfferRecord{
					{ID: "taxi-1", Title: "Order Uber", Price: 20},
					{ID: "taxi-2", Title: "Comfort seat", Price: 50},
				},
			}}, nil
		},
	}
}

func initialized(t *testing.T, svc api.Service) *store.TripModel {
	t.Helper()
	trip := store.NewTripModel(svc)
	require.NoError(t, trip.Init(context.Background()))
	return trip
}

func TestTripModel_Init_AdaptsServerFields(t *testing.T) {
	trip := initialized(t, taxiFixture())

	points := trip.Points()
	require.Len(t, points, 1)
	p := points[0]
	assert.Equal(t, model.TypeTaxi, p.Type)
	assert.Equal(t, 20, p.BasePrice)
	assert.Equal(t, "2019-03-18T10:30:00Z", p.DateFrom.Format("2006-01-02T15:04:05Z"))
	assert.Equal(t, 30*60, int(p.Duration().Seconds()))
}

func TestTripModel_Init_NotifiesInit(t *testing.T) {
	trip := store.NewTripModel(taxiFixture())
	var events []model.UpdateType
	trip.AddObserver(func(e store.Event) { events = append(events, e.Type) })

	require.NoError(t, trip.Init(context.Background()))

	assert.Equal(t, []model.UpdateType{model.UpdateInit}, events)
}

func TestTripModel_Init_AllOrNothing(t *testing.T) {
	// Destinations fail while points and offers succeed. Nothing may be
	// applied, and the failure must surface as an ERROR notification.
	svc := taxiFixture()
	cause := errors.New("boom")
	svc.destinations = func(context.Context) ([]api.DestinationRecord, error) {
		return nil, cause
	}

	trip := store.NewTripModel(svc)
	var events []store.Event
	trip.AddObserver(func(e store.Event) { events = append(events, e) })

	err := trip.Init(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, trip.Err(), cause)
	assert.Empty(t, trip.Points())
	assert.Empty(t, trip.Offers())
	assert.Empty(t, trip.Destinations())
	require.Len(t, events, 1)
	assert.Equal(t, model.UpdateError, events[0].Type)
	assert.ErrorIs(t, events[0].Err, cause)
}

func TestTripModel_TotalCost(t *testing.T) {
	trip := initialized(t, taxiFixture())

	// 20 base + 20 for the selected taxi-1 offer; taxi-2 is not selected.
	assert.Equal(t, 40, trip.TotalCost())
}

func TestTripModel_TotalCost_TracksBasePriceChange(t *testing.T) {
	svc := taxiFixture()
	svc.updatePoint = func(_ context.Context, rec api.PointRecord) (api.PointRecord, error) {
		return rec, nil
	}
	trip := initialized(t, svc)
	before := trip.TotalCost()

	update := trip.Points()[0]
	update.BasePrice = 50
	require.NoError(t, trip.UpdatePoint(context.Background(), model.UpdateMinor, update))

	assert.Equal(t, before+30, trip.TotalCost())
}

func TestTripModel_UpdatePoint_NotFoundBeforeNetwork(t *testing.T) {
	svc := taxiFixture()
	svc.updatePoint = func(_ context.Context, rec api.PointRecord) (api.PointRecord, error) {
		return rec, nil
	}
	trip := initialized(t, svc)

	err := trip.UpdatePoint(context.Background(), model.UpdateMinor, model.Point{ID: "missing"})

	assert.ErrorIs(t, err, store.ErrPointNotFound)
	assert.Zero(t, svc.updateCalls, "network must observe zero calls")
}

func TestTripModel_DeletePoint_NotFoundBeforeNetwork(t *testing.T) {
	svc := taxiFixture()
	svc.deletePoint = func(context.Context, string) error { return nil }
	trip := initialized(t, svc)

	err := trip.DeletePoint(context.Background(), model.Point{ID: "missing"})

	assert.ErrorIs(t, err, store.ErrPointNotFound)
	assert.Zero(t, svc.deleteCalls)
}

func TestTripModel_UpdatePoint_FailureLeavesStateAndPropagates(t *testing.T) {
	// Optimistic favorite rollback: the toggle is dispatched, the backend
	// rejects it, and once the rejection is observed the stored point is
	// unchanged. The UI had flipped optimistically and reverts on error.
	svc := taxiFixture()
	svc.updatePoint = func(context.Context, api.PointRecord) (api.PointRecord, error) {
		return api.PointRecord{}, &api.StatusError{Code: 500, Status: "500 Internal Server Error"}
	}
	trip := initialized(t, svc)
	var events []store.Event
	trip.AddObserver(func(e store.Event) { events = append(events, e) })

	toggled := trip.Points()[0]
	wasFavorite := toggled.IsFavorite
	toggled.IsFavorite = !wasFavorite

	err := trip.UpdatePoint(context.Background(), model.UpdatePatch, toggled)

	require.Error(t, err)
	assert.Equal(t, wasFavorite, trip.Points()[0].IsFavorite)
	assert.Empty(t, events, "no notification on failure")
}

func TestTripModel_UpdatePoint_PatchGranularity(t *testing.T) {
	svc := taxiFixture()
	svc.updatePoint = func(_ context.Context, rec api.PointRecord) (api.PointRecord, error) {
		return rec, nil
	}
	trip := initialized(t, svc)
	var events []store.Event
	trip.AddObserver(func(e store.Event) { events = append(events, e) })

	update := trip.Points()[0]
	update.IsFavorite = !update.IsFavorite
	require.NoError(t, trip.UpdatePoint(context.Background(), model.UpdatePatch, update))

	require.Len(t, events, 1)
	assert.Equal(t, model.UpdatePatch, events[0].Type)
	require.NotNil(t, events[0].Point)
	assert.Equal(t, update.IsFavorite, events[0].Point.IsFavorite)
	assert.Equal(t, update.IsFavorite, trip.Points()[0].IsFavorite)
}

func TestTripModel_AddPoint_PrependsServerConfirmed(t *testing.T) {
	svc := taxiFixture()
	svc.addPoint = func(_ context.Context, rec api.PointRecord) (api.PointRecord, error) {
		rec.ID = "server-2"
		return rec, nil
	}
	trip := initialized(t, svc)
	var events []store.Event
	trip.AddObserver(func(e store.Event) { events = append(events, e) })

	draft := model.Point{
		Type:        model.TypeFlight,
		Destination: "d1",
		DateFrom:    trip.Points()[0].DateFrom,
		DateTo:      trip.Points()[0].DateTo,
		BasePrice:   100,
	}
	require.NoError(t, trip.AddPoint(context.Background(), draft))

	points := trip.Points()
	require.Len(t, points, 2)
	assert.Equal(t, "server-2", points[0].ID)
	require.Len(t, events, 1)
	assert.Equal(t, model.UpdateMinor, events[0].Type)
}

func TestTripModel_AddPoint_FailureLeavesState(t *testing.T) {
	svc := taxiFixture()
	svc.addPoint = func(context.Context, api.PointRecord) (api.PointRecord, error) {
		return api.PointRecord{}, &api.StatusError{Code: 400, Status: "400 Bad Request"}
	}
	trip := initialized(t, svc)

	err := trip.AddPoint(context.Background(), model.Point{Type: model.TypeFlight})

	require.Error(t, err)
	assert.Len(t, trip.Points(), 1)
}

func TestTripModel_DeletePoint_RemovesAndNotifiesMinor(t *testing.T) {
	svc := taxiFixture()
	svc.deletePoint = func(context.Context, string) error { return nil }
	trip := initialized(t, svc)
	var events []store.Event
	trip.AddObserver(func(e store.Event) { events = append(events, e) })

	require.NoError(t, trip.DeletePoint(context.Background(), trip.Points()[0]))

	assert.Empty(t, trip.Points())
	require.Len(t, events, 1)
	assert.Equal(t, model.UpdateMinor, events[0].Type)
}

func TestTripModel_Lookups_AbsenceIsEmptyNotError(t *testing.T) {
	trip := initialized(t, taxiFixture())

	group := trip.OffersByType(model.TypeShip)
	assert.Empty(t, group.Offers)

	assert.Empty(t, trip.OffersByID(model.TypeTaxi, []string{"nope"}))

	_, ok := trip.DestinationByID("missing")
	assert.False(t, ok)
}

func TestTripModel_OffersByID_KeepsGroupOrder(t *testing.T) {
	trip := initialized(t, taxiFixture())

	offers := trip.OffersByID(model.TypeTaxi, []string{"taxi-2", "taxi-1"})

	require.Len(t, offers, 2)
	assert.Equal(t, "taxi-1", offers[0].ID)
	assert.Equal(t, "taxi-2", offers[1].ID)
}
