package model

import "time"

// PointType classifies a trip point.
type PointType string

const (
	TypeTaxi        PointType = "taxi"
	TypeBus         PointType = "bus"
	TypeTrain       PointType = "train"
	TypeShip        PointType = "ship"
	TypeDrive       PointType = "drive"
	TypeFlight      PointType = "flight"
	TypeCheckIn     PointType = "check-in"
	TypeSightseeing PointType = "sightseeing"
	TypeRestaurant  PointType = "restaurant"
)

// PointTypes lists every point type in menu order.
var PointTypes = []PointType{
	TypeTaxi,
	TypeBus,
	TypeTrain,
	TypeShip,
	TypeDrive,
	TypeFlight,
	TypeCheckIn,
	TypeSightseeing,
	TypeRestaurant,
}

// Valid reports whether t is one of the known point types.
func (t PointType) Valid() bool {
	for _, known := range PointTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Point represents a single scheduled trip event. ID is empty until the
// server assigns one.
type Point struct {
	ID          string
	Type        PointType
	Destination string // destination id
	DateFrom    time.Time
	DateTo      time.Time
	BasePrice   int
	IsFavorite  bool
	Offers      []string // selected offer ids, ordered
}

// Duration returns the length of the point's time span.
func (p Point) Duration() time.Duration {
	return p.DateTo.Sub(p.DateFrom)
}

// Picture is a destination photo reference.
type Picture struct {
	Src         string
	Description string
}

// Destination is read-only reference data fetched once at init.
type Destination struct {
	ID          string
	Name        string
	Description string
	Pictures    []Picture
}

// Offer is an optional priced add-on for a point type.
type Offer struct {
	ID    string
	Title string
	Price int
}

// OfferGroup holds the offers available for one point type.
type OfferGroup struct {
	Type   PointType
	Offers []Offer
}

// FilterType selects which points are visible.
type FilterType string

const (
	FilterEverything FilterType = "everything"
	FilterFuture     FilterType = "future"
	FilterPresent    FilterType = "present"
	FilterPast       FilterType = "past"
)

// FilterTypes lists the filters in tab order.
var FilterTypes = []FilterType{FilterEverything, FilterFuture, FilterPresent, FilterPast}

// SortType orders the visible points.
type SortType string

const (
	SortDay   SortType = "day"
	SortEvent SortType = "event"
	SortTime  SortType = "time"
	SortPrice SortType = "price"
	SortOffer SortType = "offer"
)

// SortTypeOrder lists the sort keys in bar order. Event and offer are
// defined but permanently disabled.
var SortTypeOrder = []SortType{SortDay, SortEvent, SortTime, SortPrice, SortOffer}

// SortTypeLabels maps sort keys to their bar labels.
var SortTypeLabels = map[SortType]string{
	SortDay:   "Day",
	SortEvent: "Event",
	SortTime:  "Time",
	SortPrice: "Price",
	SortOffer: "Offers",
}

// EnabledSortTypes marks which sort keys are selectable.
var EnabledSortTypes = map[SortType]bool{
	SortDay:   true,
	SortEvent: false,
	SortTime:  true,
	SortPrice: true,
	SortOffer: false,
}

// UserAction names a mutation dispatched from a presenter.
type UserAction int

const (
	ActionUpdatePoint UserAction = iota
	ActionAddPoint
	ActionDeletePoint
)

func (a UserAction) String() string {
	switch a {
	case ActionUpdatePoint:
		return "update-point"
	case ActionAddPoint:
		return "add-point"
	case ActionDeletePoint:
		return "delete-point"
	default:
		return "unknown"
	}
}

// UpdateType is the granularity of a model notification: how much of the
// UI must be rebuilt in response.
type UpdateType int

const (
	// UpdateInit signals the initial load settled.
	UpdateInit UpdateType = iota
	// UpdatePatch means a single-field change; only the affected row
	// needs a refresh.
	UpdatePatch
	// UpdateMinor means list membership or ordering changed; the full
	// list re-renders.
	UpdateMinor
	// UpdateMajor is reserved for bulk structural change.
	UpdateMajor
	// UpdateError signals initialization failed.
	UpdateError
)

func (u UpdateType) String() string {
	switch u {
	case UpdateInit:
		return "INIT"
	case UpdatePatch:
		return "PATCH"
	case UpdateMinor:
		return "MINOR"
	case UpdateMajor:
		return "MAJOR"
	case UpdateError:
		return "ERROR"
	default:
		return "unknown"
	}
}
