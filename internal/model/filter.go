package model

import "time"

// FilterPoints returns the points matching the filter, evaluated against
// the given instant. Membership is recomputed at every render on purpose:
// a point can drift from future to present to past between renders with no
// underlying data change.
//
// A point whose DateFrom equals now is present, not future.
func FilterPoints(points []Point, filter FilterType, now time.Time) []Point {
	if filter == FilterEverything {
		return append([]Point(nil), points...)
	}

	out := make([]Point, 0, len(points))
	for _, p := range points {
		if MatchesFilter(p, filter, now) {
			out = append(out, p)
		}
	}
	return out
}

// MatchesFilter reports whether the point belongs to the filter at the
// given instant.
func MatchesFilter(p Point, filter FilterType, now time.Time) bool {
	switch filter {
	case FilterFuture:
		return p.DateFrom.After(now)
	case FilterPresent:
		return !p.DateFrom.After(now) && !p.DateTo.Before(now)
	case FilterPast:
		return p.DateTo.Before(now)
	default:
		return true
	}
}

// CountByFilter returns per-filter point counts for the filter tabs.
func CountByFilter(points []Point, now time.Time) map[FilterType]int {
	counts := make(map[FilterType]int, len(FilterTypes))
	for _, f := range FilterTypes {
		counts[f] = len(FilterPoints(points, f, now))
	}
	return counts
}
