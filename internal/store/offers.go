package store

import (
	"context"
	"fmt"

	"bigtrip/internal/api"
	"bigtrip/internal/model"
)

// OffersModel holds the immutable offer reference data.
type OffersModel struct {
	svc    api.Service
	offers []model.OfferGroup
}

// NewOffersModel creates an offers model backed by the given service.
func NewOffersModel(svc api.Service) *OffersModel {
	return &OffersModel{svc: svc}
}

// Offers returns every offer group.
func (m *OffersModel) Offers() []model.OfferGroup {
	return m.offers
}

func (m *OffersModel) load(ctx context.Context) ([]model.OfferGroup, error) {
	records, err := m.svc.Offers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch offers: %w", err)
	}
	groups := make([]model.OfferGroup, 0, len(records))
	for _, rec := range records {
		groups = append(groups, adaptOfferGroup(rec))
	}
	return groups, nil
}

func (m *OffersModel) set(groups []model.OfferGroup) {
	m.offers = groups
}

// OffersByType returns the offer group for the type, or an empty group
// when the type has none. The UI handles absence; this never errors.
func (m *OffersModel) OffersByType(t model.PointType) model.OfferGroup {
	for _, group := range m.offers {
		if group.Type == t {
			return group
		}
	}
	return model.OfferGroup{Type: t, Offers: []model.Offer{}}
}

// OffersByID resolves the selected offer ids within the type's group,
// keeping the group's order. Unknown ids are skipped.
func (m *OffersModel) OffersByID(t model.PointType, ids []string) []model.Offer {
	group := m.OffersByType(t)
	selected := make([]model.Offer, 0, len(ids))
	for _, offer := range group.Offers {
		for _, id := range ids {
			if offer.ID == id {
				selected = append(selected, offer)
				break
			}
		}
	}
	return selected
}
