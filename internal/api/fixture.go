package api

import (
	"context"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var fixtureDestinations = []DestinationRecord{
	{
		Name:        "Amsterdam",
		Description: "Amsterdam is a beautiful city known for its canals, cycling culture, and historic architecture.",
	},
	{
		Name:        "Geneva",
		Description: "Geneva is a city in Switzerland that lies at the southern tip of expansive Lac Léman (Lake Geneva). Surrounded by the Alps and Jura mountains, the city has views of dramatic Mont Blanc.",
	},
	{
		Name:        "Chamonix",
		Description: "Chamonix-Mont-Blanc (usually shortened to Chamonix) is a resort area near the junction of France, Switzerland and Italy. At the base of Mont Blanc, the highest summit in the Alps, it is renowned for its skiing.",
	},
}

var fixtureOfferTitles = []string{
	"Order Uber", "Business class", "Extra luggage", "Comfort seat",
	"First class", "Meal included", "Cabin upgrade", "All inclusive",
	"Rent a car", "Extra insurance", "Add luggage", "Switch to comfort",
	"Add meal", "Choose seats", "Travel by train", "Add breakfast",
	"Late checkout", "Book tickets", "Lunch in city", "Wine tasting",
	"Dessert menu",
}

var fixturePointTypes = []string{
	"taxi", "bus", "train", "ship", "drive", "flight",
	"check-in", "sightseeing", "restaurant",
}

// FixtureService is an in-memory Service backed by generated demo data.
// It powers --demo mode and lets tests run without a backend. Ids are
// assigned the way the real server would, just locally.
type FixtureService struct {
	points       []PointRecord
	destinations []DestinationRecord
	offers       []OfferGroupRecord
}

var _ Service = (*FixtureService)(nil)

// NewFixtureService seeds a service with n random points across the
// canonical demo destinations.
func NewFixtureService(n int) *FixtureService {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	s := &FixtureService{}

	for i, d := range fixtureDestinations {
		d.ID = strconv.Itoa(i + 1)
		pictures := rng.Intn(4) + 2
		for p := 0; p < pictures; p++ {
			d.Pictures = append(d.Pictures, PictureRecord{
				Src:         "img/photos/" + strconv.Itoa(p+1) + ".jpg",
				Description: d.Name + " photo " + strconv.Itoa(p+1),
			})
		}
		s.destinations = append(s.destinations, d)
	}

	for i, t := range fixturePointTypes {
		group := OfferGroupRecord{Type: t}
		count := rng.Intn(4) + 2
		for n := 0; n < count; n++ {
			group.Offers = append(group.Offers, OfferRecord{
				ID:    t + "-" + strconv.Itoa(n+1),
				Title: fixtureOfferTitles[(i*3+n)%len(fixtureOfferTitles)],
				Price: rng.Intn(196) + 5,
			})
		}
		s.offers = append(s.offers, group)
	}

	now := time.Now().UTC().Truncate(time.Minute)
	for i := 0; i < n; i++ {
		group := s.offers[rng.Intn(len(s.offers))]
		from := now.AddDate(0, 0, rng.Intn(15)-7)
		selected := make([]string, 0, 3)
		for _, offer := range group.Offers {
			if len(selected) == 3 {
				break
			}
			if rng.Intn(2) == 0 {
				selected = append(selected, offer.ID)
			}
		}
		s.points = append(s.points, PointRecord{
			ID:          uuid.NewString(),
			Type:        group.Type,
			Destination: s.destinations[rng.Intn(len(s.destinations))].ID,
			DateFrom:    from.Format(time.RFC3339),
			DateTo:      from.Add(time.Duration(rng.Intn(12)+1) * time.Hour).Format(time.RFC3339),
			BasePrice:   rng.Intn(481) + 20,
			IsFavorite:  rng.Intn(10) > 6,
			Offers:      selected,
		})
	}

	return s
}

// Points returns the seeded point records.
func (s *FixtureService) Points(_ context.Context) ([]PointRecord, error) {
	return append([]PointRecord(nil), s.points...), nil
}

// Destinations returns the seeded destination records.
func (s *FixtureService) Destinations(_ context.Context) ([]DestinationRecord, error) {
	return append([]DestinationRecord(nil), s.destinations...), nil
}

// Offers returns the seeded offer groups.
func (s *FixtureService) Offers(_ context.Context) ([]OfferGroupRecord, error) {
	return append([]OfferGroupRecord(nil), s.offers...), nil
}

// UpdatePoint replaces a seeded point in place.
func (s *FixtureService) UpdatePoint(_ context.Context, record PointRecord) (PointRecord, error) {
	for i, p := range s.points {
		if p.ID == record.ID {
			s.points[i] = record
			return record, nil
		}
	}
	return PointRecord{}, &StatusError{Code: http.StatusNotFound, Status: "404 Not Found"}
}

// AddPoint assigns an id and stores the point.
func (s *FixtureService) AddPoint(_ context.Context, record PointRecord) (PointRecord, error) {
	record.ID = uuid.NewString()
	s.points = append(s.points, record)
	return record, nil
}

// DeletePoint removes a seeded point.
func (s *FixtureService) DeletePoint(_ context.Context, id string) error {
	for i, p := range s.points {
		if p.ID == id {
			s.points = append(s.points[:i], s.points[i+1:]...)
			return nil
		}
	}
	return &StatusError{Code: http.StatusNotFound, Status: "404 Not Found"}
}
