package model

import "sort"

// SortPoints returns a sorted copy of points. Day sorts ascending by start
// date, time sorts descending by duration, price sorts descending by base
// price. All sorts are stable: ties keep their original relative order.
// Unknown or disabled sort keys leave the original order.
func SortPoints(points []Point, key SortType) []Point {
	sorted := append([]Point(nil), points...)

	switch key {
	case SortDay:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].DateFrom.Before(sorted[j].DateFrom)
		})
	case SortTime:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Duration() > sorted[j].Duration()
		})
	case SortPrice:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].BasePrice > sorted[j].BasePrice
		})
	}

	return sorted
}
