package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"

	"bigtrip/internal/model"
	"bigtrip/internal/store"
	"bigtrip/internal/util"
)

// Form field indices; offer checkboxes follow the fixed fields.
const (
	fieldType = iota
	fieldDestination
	fieldDateFrom
	fieldDateTo
	fieldPrice
	fixedFieldCount
)

// Messages emitted by the form toward the board presenter.

type formSubmitMsg struct {
	point model.Point
	isNew bool
}

type formCloseMsg struct {
	pointID string // empty for the new-point draft
}

type formDeleteMsg struct {
	point model.Point
}

// formPayload is what gets validated before a submit is dispatched.
type formPayload struct {
	Type        string    `validate:"required"`
	Destination string    `validate:"required"`
	DateFrom    time.Time `validate:"required"`
	DateTo      time.Time `validate:"required,gtefield=DateFrom"`
	BasePrice   int       `validate:"gte=0"`
}

var formValidator = validator.New()

// PointForm is the inline editor for one point, or for the unsaved
// new-point draft when isNew is set.
type PointForm struct {
	trip  *store.TripModel
	keys  FormKeyMap
	point model.Point
	isNew bool

	typeIndex  int
	destInput  textinput.Model
	fromInput  textinput.Model
	toInput    textinput.Model
	priceInput textinput.Model
	group      model.OfferGroup
	checked    map[string]bool

	focus int

	isSaving   bool
	isDeleting bool
	shake      bool
	errMsg     string
}

// NewPointForm builds a form bound to the point's current data.
func NewPointForm(trip *store.TripModel, point model.Point, isNew bool) *PointForm {
	f := &PointForm{
		trip:    trip,
		keys:    DefaultFormKeyMap(),
		point:   point,
		isNew:   isNew,
		group:   trip.OffersByType(point.Type),
		checked: make(map[string]bool, len(point.Offers)),
		focus:   fieldDestination,
	}

	for i, t := range model.PointTypes {
		if t == point.Type {
			f.typeIndex = i
			break
		}
	}
	for _, id := range point.Offers {
		f.checked[id] = true
	}

	f.destInput = textinput.New()
	f.destInput.Placeholder = "Destination"
	f.destInput.CharLimit = 60
	if dest, ok := trip.DestinationByID(point.Destination); ok {
		f.destInput.SetValue(dest.Name)
	}
	f.destInput.Focus()

	f.fromInput = textinput.New()
	f.fromInput.Placeholder = "DD/MM/YY HH:MM"
	f.fromInput.CharLimit = 14
	f.fromInput.SetValue(util.FormatDateTime(point.DateFrom))

	f.toInput = textinput.New()
	f.toInput.Placeholder = "DD/MM/YY HH:MM"
	f.toInput.CharLimit = 14
	f.toInput.SetValue(util.FormatDateTime(point.DateTo))

	f.priceInput = textinput.New()
	f.priceInput.Placeholder = "0"
	f.priceInput.CharLimit = 6
	f.priceInput.SetValue(strconv.Itoa(point.BasePrice))

	return f
}

// Busy reports whether a save or delete is in flight for this form.
func (f *PointForm) Busy() bool {
	return f.isSaving || f.isDeleting
}

// SetSaving flags the in-flight save; all input is suppressed until the
// result resolves.
func (f *PointForm) SetSaving() {
	f.isSaving = true
}

// SetDeleting flags the in-flight delete.
func (f *PointForm) SetDeleting() {
	f.isDeleting = true
}

// SetAborting reverts the in-flight flags after a rejected request and
// triggers the shake affordance. The user's edits stay in place for
// retry.
func (f *PointForm) SetAborting(err error) {
	f.isSaving = false
	f.isDeleting = false
	f.shake = true
	if err != nil {
		f.errMsg = err.Error()
	}
}

// Update handles one key press. While a request is in flight every key,
// escape included, is dropped: the exit paths reopen only once the result
// resolves.
func (f *PointForm) Update(msg tea.KeyMsg) tea.Cmd {
	if f.Busy() {
		return nil
	}

	f.shake = false

	switch {
	case key.Matches(msg, f.keys.Close):
		f.errMsg = ""
		id := f.point.ID
		isNew := f.isNew
		return func() tea.Msg {
			if isNew {
				return formCloseMsg{}
			}
			return formCloseMsg{pointID: id}
		}

	case key.Matches(msg, f.keys.Save):
		point, err := f.payload()
		if err != nil {
			f.errMsg = err.Error()
			f.shake = true
			return nil
		}
		f.errMsg = ""
		isNew := f.isNew
		return func() tea.Msg {
			return formSubmitMsg{point: point, isNew: isNew}
		}

	case key.Matches(msg, f.keys.Delete):
		if f.isNew {
			// Deleting a draft is just a cancel; no model call.
			return func() tea.Msg { return formCloseMsg{} }
		}
		point := f.point
		return func() tea.Msg { return formDeleteMsg{point: point} }

	case key.Matches(msg, f.keys.NextField):
		f.setFocus(f.focus + 1)
		return nil

	case key.Matches(msg, f.keys.PrevField):
		f.setFocus(f.focus - 1)
		return nil
	}

	switch {
	case f.focus == fieldType:
		if key.Matches(msg, f.keys.CycleValue) {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			f.cycleType(delta)
		}
		return nil

	case f.focus >= fixedFieldCount:
		if key.Matches(msg, f.keys.Toggle) {
			offer := f.group.Offers[f.focus-fixedFieldCount]
			f.checked[offer.ID] = !f.checked[offer.ID]
		}
		return nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldDestination:
		f.destInput, cmd = f.destInput.Update(msg)
	case fieldDateFrom:
		f.fromInput, cmd = f.fromInput.Update(msg)
	case fieldDateTo:
		f.toInput, cmd = f.toInput.Update(msg)
	case fieldPrice:
		f.priceInput, cmd = f.priceInput.Update(msg)
	}
	return cmd
}

func (f *PointForm) fieldCount() int {
	return fixedFieldCount + len(f.group.Offers)
}

func (f *PointForm) setFocus(target int) {
	count := f.fieldCount()
	f.focus = ((target % count) + count) % count

	f.destInput.Blur()
	f.fromInput.Blur()
	f.toInput.Blur()
	f.priceInput.Blur()
	switch f.focus {
	case fieldDestination:
		f.destInput.Focus()
	case fieldDateFrom:
		f.fromInput.Focus()
	case fieldDateTo:
		f.toInput.Focus()
	case fieldPrice:
		f.priceInput.Focus()
	}
}

// cycleType switches the point type; the offer list follows the type and
// previously checked offers are dropped since they belong to the old
// group.
func (f *PointForm) cycleType(delta int) {
	n := len(model.PointTypes)
	f.typeIndex = ((f.typeIndex+delta)%n + n) % n
	f.group = f.trip.OffersByType(model.PointTypes[f.typeIndex])
	f.checked = make(map[string]bool)
}

// payload assembles and validates the point to submit.
func (f *PointForm) payload() (model.Point, error) {
	pointType := model.PointTypes[f.typeIndex]

	destName := strings.TrimSpace(f.destInput.Value())
	dest, destFound := f.trip.DestinationByName(destName)

	var dateFrom, dateTo time.Time
	var err error
	if v := strings.TrimSpace(f.fromInput.Value()); v != "" {
		if dateFrom, err = util.ParseDateTime(v); err != nil {
			return model.Point{}, err
		}
	}
	if v := strings.TrimSpace(f.toInput.Value()); v != "" {
		if dateTo, err = util.ParseDateTime(v); err != nil {
			return model.Point{}, err
		}
	}

	price := 0
	if v := strings.TrimSpace(f.priceInput.Value()); v != "" {
		if price, err = strconv.Atoi(v); err != nil {
			return model.Point{}, fmt.Errorf("invalid price %q", v)
		}
	}

	payload := formPayload{
		Type:        string(pointType),
		Destination: destName,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		BasePrice:   price,
	}
	if err := formValidator.Struct(payload); err != nil {
		return model.Point{}, fmt.Errorf("check the form: %w", err)
	}
	if !destFound {
		return model.Point{}, fmt.Errorf("unknown destination %q", destName)
	}

	// Offer ids in group order, matching the checkbox layout.
	offers := make([]string, 0, len(f.group.Offers))
	for _, offer := range f.group.Offers {
		if f.checked[offer.ID] {
			offers = append(offers, offer.ID)
		}
	}

	return model.Point{
		ID:          f.point.ID,
		Type:        pointType,
		Destination: dest.ID,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		BasePrice:   price,
		IsFavorite:  f.point.IsFavorite,
		Offers:      offers,
	}, nil
}

// View renders the form panel.
func (f *PointForm) View(width int) string {
	var lines []string

	typeLabel := LabelStyle.Render("Type")
	typeValue := string(model.PointTypes[f.typeIndex])
	if f.focus == fieldType {
		typeValue = SelectedRowStyle.Render(" ◂ " + typeValue + " ▸ ")
	}
	lines = append(lines, typeLabel+"  "+typeValue)

	lines = append(lines, renderFormField("Destination", f.destInput.View(), f.focus == fieldDestination))
	if dest, ok := f.trip.DestinationByName(strings.TrimSpace(f.destInput.Value())); ok && dest.Description != "" {
		lines = append(lines, MutedStyle.Render(util.TruncateString(dest.Description, max(10, width-8))))
	}
	lines = append(lines, renderFormField("From", f.fromInput.View(), f.focus == fieldDateFrom))
	lines = append(lines, renderFormField("To", f.toInput.View(), f.focus == fieldDateTo))
	lines = append(lines, renderFormField("Price €", f.priceInput.View(), f.focus == fieldPrice))

	if len(f.group.Offers) > 0 {
		lines = append(lines, LabelStyle.Render("Offers"))
		for i, offer := range f.group.Offers {
			box := "☐"
			if f.checked[offer.ID] {
				box = "☑"
			}
			line := fmt.Sprintf("%s %s  +%s", box, offer.Title, util.FormatPrice(offer.Price))
			if f.focus == fixedFieldCount+i {
				line = SelectedRowStyle.Render(line)
			}
			lines = append(lines, line)
		}
	}

	lines = append(lines, "", f.buttonsLine())

	if f.errMsg != "" {
		lines = append(lines, ErrorStyle.Render(f.errMsg))
	}

	style := ActiveBorderStyle
	if f.shake {
		style = ShakeBorderStyle
	}
	return style.Width(max(20, width-2)).Render(strings.Join(lines, "\n"))
}

func (f *PointForm) buttonsLine() string {
	save := "Save"
	if f.isSaving {
		save = "Saving…"
	}

	reset := "Delete"
	if f.isNew {
		reset = "Cancel"
	}
	if f.isDeleting {
		reset = "Deleting…"
	}

	return HelpDescStyle.Render(fmt.Sprintf("ctrl+s %s   ctrl+d %s   esc close", save, reset))
}

func renderFormField(label, input string, focused bool) string {
	style := LabelStyle
	if focused {
		style = style.Underline(true)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, style.Render(label+"  "), input)
}
