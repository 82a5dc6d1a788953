package ui

import (
	"fmt"
	"strings"

	"bigtrip/internal/model"
	"bigtrip/internal/store"
	"bigtrip/internal/util"
)

// PointRow presents one point either as a compact two-line entry or,
// when Editing, as the inline form. At most one row on the board is in
// edit mode at a time; the board enforces that by calling Reset on every
// other row before opening a form.
type PointRow struct {
	trip  *store.TripModel
	point model.Point
	form  *PointForm

	isSaving bool
	shake    bool
}

// NewPointRow wraps a point for display.
func NewPointRow(trip *store.TripModel, point model.Point) *PointRow {
	return &PointRow{trip: trip, point: point}
}

// Point returns the underlying point data.
func (r *PointRow) Point() model.Point {
	return r.point
}

// ID returns the point id.
func (r *PointRow) ID() string {
	return r.point.ID
}

// SetPoint replaces the row's data after a model update. An open form is
// left untouched; its draft belongs to the user.
func (r *PointRow) SetPoint(point model.Point) {
	r.point = point
}

// Editing reports whether the inline form is open on this row.
func (r *PointRow) Editing() bool {
	return r.form != nil
}

// Form returns the open form, or nil.
func (r *PointRow) Form() *PointForm {
	return r.form
}

// Busy reports whether a request for this row is in flight, either from
// the compact view (favorite toggle) or the open form.
func (r *PointRow) Busy() bool {
	if r.isSaving {
		return true
	}
	return r.form != nil && r.form.Busy()
}

// OpenEditor switches the row to edit mode with a fresh form.
func (r *PointRow) OpenEditor() {
	r.form = NewPointForm(r.trip, r.point, false)
}

// Reset closes the form and returns to the compact view. It is a no-op
// while a request is in flight so the row cannot forget which request
// it is waiting on.
func (r *PointRow) Reset() {
	if r.Busy() {
		return
	}
	r.form = nil
	r.shake = false
}

// SetSaving marks an in-flight save from the compact view.
func (r *PointRow) SetSaving() {
	if r.form != nil {
		r.form.SetSaving()
		return
	}
	r.isSaving = true
}

// SetDeleting marks an in-flight delete.
func (r *PointRow) SetDeleting() {
	if r.form != nil {
		r.form.SetDeleting()
	}
}

// SetAborting clears the in-flight flags after a rejected request and
// shakes whichever view is showing.
func (r *PointRow) SetAborting(err error) {
	r.isSaving = false
	if r.form != nil {
		r.form.SetAborting(err)
		return
	}
	r.shake = true
}

// CompleteRequest clears the in-flight flags and closes any open form
// once the request it was waiting on has resolved successfully.
func (r *PointRow) CompleteRequest() {
	r.isSaving = false
	if r.form != nil {
		r.form.isSaving = false
		r.form.isDeleting = false
		r.form = nil
	}
}

// ClearShake drops the error affordance, typically on the next key press.
func (r *PointRow) ClearShake() {
	r.shake = false
}

// View renders the row.
func (r *PointRow) View(width int, selected bool) string {
	if r.form != nil {
		return r.form.View(width)
	}
	return r.compactView(width, selected)
}

func (r *PointRow) compactView(width int, selected bool) string {
	p := r.point

	title := string(p.Type)
	if dest, ok := r.trip.DestinationByID(p.Destination); ok {
		title = fmt.Sprintf("%s %s", p.Type, dest.Name)
	}

	favorite := " "
	if p.IsFavorite {
		favorite = FavoriteStyle.Render("★")
	}

	date := MutedStyle.Render(util.FormatMonthDay(p.DateFrom))
	times := fmt.Sprintf("%s – %s", util.FormatTime(p.DateFrom), util.FormatTime(p.DateTo))
	duration := MutedStyle.Render(util.FormatDuration(p.Duration()))
	price := util.FormatPrice(p.BasePrice)
	if r.isSaving {
		price = MutedStyle.Render("saving…")
	}

	first := fmt.Sprintf("%-7s %-28s %s  %s  %8s %s",
		date, util.TruncateString(title, 28), times, duration, price, favorite)

	lines := []string{first}
	if extras := r.offersLine(); extras != "" {
		lines = append(lines, "        "+MutedStyle.Render(util.TruncateString(extras, max(10, width-10))))
	}

	body := strings.Join(lines, "\n")
	switch {
	case r.shake:
		return ShakeBorderStyle.Width(max(20, width-2)).Render(body)
	case selected:
		return SelectedRowStyle.Render(body)
	default:
		return NormalRowStyle.Render(body)
	}
}

// offersLine lists the selected offers with their prices.
func (r *PointRow) offersLine() string {
	offers := r.trip.OffersByID(r.point.Type, r.point.Offers)
	if len(offers) == 0 {
		return ""
	}
	parts := make([]string, 0, len(offers))
	for _, offer := range offers {
		parts = append(parts, fmt.Sprintf("%s +%s", offer.Title, util.FormatPrice(offer.Price)))
	}
	return strings.Join(parts, "  ")
}
