package store

import (
	"fmt"
	"time"

	"bigtrip/internal/api"
	"bigtrip/internal/model"
)

// wireTime is how the backend formats timestamps.
const wireTime = "2006-01-02T15:04:05.000Z07:00"

// adaptPointToClient converts a server point record into the client shape.
// The rename is total: date_from/date_to/base_price/is_favorite become
// DateFrom/DateTo/BasePrice/IsFavorite and nothing else survives under the
// server names.
func adaptPointToClient(rec api.PointRecord) (model.Point, error) {
	dateFrom, err := time.Parse(time.RFC3339, rec.DateFrom)
	if err != nil {
		return model.Point{}, fmt.Errorf("point %s: bad date_from %q: %w", rec.ID, rec.DateFrom, err)
	}
	dateTo, err := time.Parse(time.RFC3339, rec.DateTo)
	if err != nil {
		return model.Point{}, fmt.Errorf("point %s: bad date_to %q: %w", rec.ID, rec.DateTo, err)
	}

	offers := rec.Offers
	if offers == nil {
		offers = []string{}
	}

	return model.Point{
		ID:          rec.ID,
		Type:        model.PointType(rec.Type),
		Destination: rec.Destination,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		BasePrice:   rec.BasePrice,
		IsFavorite:  rec.IsFavorite,
		Offers:      offers,
	}, nil
}

// adaptPointToServer converts a client point into the server wire shape.
func adaptPointToServer(p model.Point) api.PointRecord {
	offers := p.Offers
	if offers == nil {
		offers = []string{}
	}
	return api.PointRecord{
		ID:          p.ID,
		Type:        string(p.Type),
		Destination: p.Destination,
		DateFrom:    p.DateFrom.UTC().Format(wireTime),
		DateTo:      p.DateTo.UTC().Format(wireTime),
		BasePrice:   p.BasePrice,
		IsFavorite:  p.IsFavorite,
		Offers:      offers,
	}
}

func adaptDestination(rec api.DestinationRecord) model.Destination {
	pictures := make([]model.Picture, 0, len(rec.Pictures))
	for _, pic := range rec.Pictures {
		pictures = append(pictures, model.Picture{Src: pic.Src, Description: pic.Description})
	}
	return model.Destination{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Pictures:    pictures,
	}
}

func adaptOfferGroup(rec api.OfferGroupRecord) model.OfferGroup {
	offers := make([]model.Offer, 0, len(rec.Offers))
	for _, o := range rec.Offers {
		offers = append(offers, model.Offer{ID: o.ID, Title: o.Title, Price: o.Price})
	}
	return model.OfferGroup{Type: model.PointType(rec.Type), Offers: offers}
}
