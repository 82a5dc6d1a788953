package ui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bigtrip/internal/model"
	"bigtrip/internal/store"
	"bigtrip/internal/util"
)

type boardState int

const (
	stateLoading boardState = iota
	stateLoaded
	stateFailed
)

// emptyMessages is what the board shows when the active filter has no
// points to offer.
var emptyMessages = map[model.FilterType]string{
	model.FilterEverything: "Press n to create your first point",
	model.FilterFuture:     "There are no future events now",
	model.FilterPresent:    "There are no present events now",
	model.FilterPast:       "There are no past events now",
}

type modelEventMsg struct {
	event store.Event
}

type actionResultMsg struct {
	action  model.UserAction
	pointID string
	err     error
}

// App is the root model: it owns the visible rows, the filter and sort
// state, and the single open editor.
type App struct {
	trip   *store.TripModel
	keys   KeyMap
	events chan store.Event

	state    boardState
	spinner  spinner.Model
	filter   model.FilterType
	sortType model.SortType

	rows    []*PointRow
	cursor  int
	newForm *PointForm

	// blocked is set while a mutation is in flight; edits, toggles and
	// new drafts are dropped until the result arrives, not queued.
	blocked bool

	showHelp bool
	errMsg   string

	width  int
	height int

	now func() time.Time
}

// New builds the application model around an initialized-later trip.
func New(trip *store.TripModel) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	a := &App{
		trip:     trip,
		keys:     DefaultKeyMap(),
		events:   make(chan store.Event, 16),
		state:    stateLoading,
		spinner:  s,
		filter:   model.FilterEverything,
		sortType: model.SortDay,
		now:      time.Now,
	}
	trip.AddObserver(func(e store.Event) {
		a.events <- e
	})
	return a
}

func (a *App) Init() tea.Cmd {
	trip := a.trip
	return tea.Batch(
		a.spinner.Tick,
		a.waitForEvent(),
		func() tea.Msg {
			trip.Init(context.Background())
			return nil
		},
	)
}

// waitForEvent relays one model notification into the update loop and is
// re-armed after each delivery.
func (a *App) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return modelEventMsg{event: <-a.events}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		if a.state != stateLoading && !a.blocked {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case modelEventMsg:
		a.handleModelEvent(msg.event)
		return a, a.waitForEvent()

	case actionResultMsg:
		a.handleActionResult(msg)
		return a, nil

	case formSubmitMsg:
		return a, a.handleFormSubmit(msg)

	case formCloseMsg:
		if msg.pointID == "" {
			if a.newForm != nil && !a.newForm.Busy() {
				a.newForm = nil
			}
		} else if row := a.rowByID(msg.pointID); row != nil {
			row.Reset()
		}
		return a, nil

	case formDeleteMsg:
		return a, a.handleFormDelete(msg)

	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	if a.showHelp {
		a.showHelp = false
		return nil
	}

	a.errMsg = ""
	for _, row := range a.rows {
		row.ClearShake()
	}

	// An open editor captures the keyboard, escape included.
	if form := a.activeForm(); form != nil {
		return form.Update(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Top):
		a.cursor = 0

	case key.Matches(msg, a.keys.Bottom):
		a.cursor = max(0, len(a.rows)-1)

	case key.Matches(msg, a.keys.Edit):
		a.openEditor()

	case key.Matches(msg, a.keys.Favorite):
		return a.toggleFavorite()

	case key.Matches(msg, a.keys.NewPoint):
		a.startNewPoint()

	case key.Matches(msg, a.keys.NextFilter):
		a.nextFilter()

	case key.Matches(msg, a.keys.NextSort):
		a.nextSort()
	}
	return nil
}

// activeForm returns the single open editor, if any.
func (a *App) activeForm() *PointForm {
	if a.newForm != nil {
		return a.newForm
	}
	for _, row := range a.rows {
		if row.Editing() {
			return row.Form()
		}
	}
	return nil
}

// closeAllEditors brings every row back to the compact view and discards
// an unsaved draft. Rows waiting on a request keep their form open.
func (a *App) closeAllEditors() {
	if a.newForm != nil && !a.newForm.Busy() {
		a.newForm = nil
	}
	for _, row := range a.rows {
		row.Reset()
	}
}

func (a *App) openEditor() {
	if a.blocked || a.state != stateLoaded || len(a.rows) == 0 {
		return
	}
	a.closeAllEditors()
	a.rows[a.cursor].OpenEditor()
}

// toggleFavorite flips the star on the selected row. The row shows the
// new value right away; a rejected request puts the old one back.
func (a *App) toggleFavorite() tea.Cmd {
	if a.blocked || a.state != stateLoaded || len(a.rows) == 0 {
		return nil
	}
	row := a.rows[a.cursor]
	if row.Editing() {
		return nil
	}

	updated := row.Point()
	updated.IsFavorite = !updated.IsFavorite
	row.SetPoint(updated)
	row.SetSaving()

	a.blocked = true
	return a.dispatch(model.ActionUpdatePoint, model.UpdatePatch, updated)
}

// startNewPoint opens the draft editor above the list. The draft is not
// in the model until it is saved, so the board resets to a view that
// will show it once it lands.
func (a *App) startNewPoint() {
	if a.blocked || a.state != stateLoaded || a.newForm != nil {
		return
	}
	a.closeAllEditors()
	a.filter = model.FilterEverything
	a.sortType = model.SortDay
	a.rebuildRows()

	now := a.now()
	draft := model.Point{
		Type:      model.TypeFlight,
		DateFrom:  now,
		DateTo:    now,
		BasePrice: 0,
		Offers:    []string{},
	}
	a.newForm = NewPointForm(a.trip, draft, true)
	a.cursor = 0
}

// nextFilter advances to the next filter tab that has anything to show.
func (a *App) nextFilter() {
	if a.state != stateLoaded {
		return
	}
	counts := model.CountByFilter(a.trip.Points(), a.now())
	current := 0
	for i, f := range model.FilterTypes {
		if f == a.filter {
			current = i
			break
		}
	}
	for step := 1; step <= len(model.FilterTypes); step++ {
		next := model.FilterTypes[(current+step)%len(model.FilterTypes)]
		if next == model.FilterEverything || counts[next] > 0 {
			a.filter = next
			break
		}
	}
	a.closeAllEditors()
	a.rebuildRows()
	a.cursor = 0
}

// nextSort advances to the next enabled sort key.
func (a *App) nextSort() {
	if a.state != stateLoaded {
		return
	}
	current := 0
	for i, s := range model.SortTypeOrder {
		if s == a.sortType {
			current = i
			break
		}
	}
	for step := 1; step <= len(model.SortTypeOrder); step++ {
		next := model.SortTypeOrder[(current+step)%len(model.SortTypeOrder)]
		if model.EnabledSortTypes[next] {
			a.sortType = next
			break
		}
	}
	a.rebuildRows()
	a.cursor = 0
}

func (a *App) handleFormSubmit(msg formSubmitMsg) tea.Cmd {
	a.blocked = true
	if msg.isNew {
		if a.newForm != nil {
			a.newForm.SetSaving()
		}
		return a.dispatch(model.ActionAddPoint, model.UpdateMinor, msg.point)
	}
	if row := a.rowByID(msg.point.ID); row != nil {
		row.SetSaving()
	}
	return a.dispatch(model.ActionUpdatePoint, model.UpdateMinor, msg.point)
}

func (a *App) handleFormDelete(msg formDeleteMsg) tea.Cmd {
	a.blocked = true
	if row := a.rowByID(msg.point.ID); row != nil {
		row.SetDeleting()
	}
	return a.dispatch(model.ActionDeletePoint, model.UpdateMinor, msg.point)
}

// dispatch runs one mutation against the trip model. The request always
// runs to completion; the board stays blocked until the result lands.
func (a *App) dispatch(action model.UserAction, updateType model.UpdateType, point model.Point) tea.Cmd {
	trip := a.trip
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch action {
		case model.ActionUpdatePoint:
			err = trip.UpdatePoint(ctx, updateType, point)
		case model.ActionAddPoint:
			err = trip.AddPoint(ctx, point)
		case model.ActionDeletePoint:
			err = trip.DeletePoint(ctx, point)
		}
		return actionResultMsg{action: action, pointID: point.ID, err: err}
	}
}

func (a *App) handleActionResult(msg actionResultMsg) {
	a.blocked = false

	if msg.err != nil {
		a.errMsg = fmt.Sprintf("%s failed: %v", msg.action, msg.err)
		if msg.pointID == "" {
			if a.newForm != nil {
				a.newForm.SetAborting(msg.err)
			}
			return
		}
		if row := a.rowByID(msg.pointID); row != nil {
			// Roll the row back to what the model still holds.
			if p, ok := a.pointByID(msg.pointID); ok {
				row.SetPoint(p)
			}
			row.SetAborting(msg.err)
		}
		return
	}

	switch msg.action {
	case model.ActionAddPoint:
		a.newForm = nil
	case model.ActionUpdatePoint, model.ActionDeletePoint:
		if row := a.rowByID(msg.pointID); row != nil {
			row.CompleteRequest()
		}
	}
}

func (a *App) handleModelEvent(e store.Event) {
	switch e.Type {
	case model.UpdateInit:
		a.state = stateLoaded
		a.rebuildRows()

	case model.UpdateError:
		a.state = stateFailed
		if e.Err != nil {
			a.errMsg = e.Err.Error()
		}

	case model.UpdatePatch:
		if e.Point == nil {
			return
		}
		if row := a.rowByID(e.Point.ID); row != nil {
			row.SetPoint(*e.Point)
			row.CompleteRequest()
		}

	case model.UpdateMinor, model.UpdateMajor:
		a.rebuildRows()
	}
}

// rebuildRows recomputes the visible list from the model through the
// active filter and sort. The filter window is taken at the current
// wall clock, never cached. Rows whose id survives keep their presenter
// so an open editor stays open; points referring to a destination the
// model does not know are skipped and reported.
func (a *App) rebuildRows() {
	old := make(map[string]*PointRow, len(a.rows))
	for _, row := range a.rows {
		old[row.ID()] = row
	}

	visible := model.SortPoints(model.FilterPoints(a.trip.Points(), a.filter, a.now()), a.sortType)
	rows := make([]*PointRow, 0, len(visible))
	for _, p := range visible {
		if _, ok := a.trip.DestinationByID(p.Destination); !ok {
			log.Printf("skipping point %s: unknown destination %s", p.ID, p.Destination)
			continue
		}
		if row, ok := old[p.ID]; ok {
			row.SetPoint(p)
			rows = append(rows, row)
			continue
		}
		rows = append(rows, NewPointRow(a.trip, p))
	}
	a.rows = rows
	if a.cursor >= len(rows) {
		a.cursor = max(0, len(rows)-1)
	}
}

func (a *App) rowByID(id string) *PointRow {
	for _, row := range a.rows {
		if row.ID() == id {
			return row
		}
	}
	return nil
}

func (a *App) pointByID(id string) (model.Point, bool) {
	for _, p := range a.trip.Points() {
		if p.ID == id {
			return p, true
		}
	}
	return model.Point{}, false
}

func (a *App) View() string {
	if a.showHelp {
		return a.helpView()
	}

	var b strings.Builder

	b.WriteString(a.headerView())
	b.WriteString("\n")

	switch a.state {
	case stateLoading:
		b.WriteString("\n " + a.spinner.View() + " Loading...\n")

	case stateFailed:
		msg := "Failed to load latest route information"
		if a.errMsg != "" {
			msg = msg + "\n" + a.errMsg
		}
		b.WriteString("\n" + ErrorStyle.Render(msg) + "\n")

	case stateLoaded:
		b.WriteString(a.filterBarView())
		b.WriteString("\n")
		b.WriteString(a.sortBarView())
		b.WriteString("\n\n")
		b.WriteString(a.listView())
	}

	b.WriteString("\n")
	b.WriteString(a.footerView())
	return b.String()
}

// headerView is the trip summary: route, date range and total cost.
func (a *App) headerView() string {
	title := TitleStyle.Render("Big Trip")
	if a.state != stateLoaded {
		return HeaderStyle.Render(title)
	}

	points := model.SortPoints(a.trip.Points(), model.SortDay)
	if len(points) == 0 {
		return HeaderStyle.Render(title)
	}

	route := a.routeTitle(points)
	dates := fmt.Sprintf("%s – %s",
		util.FormatMonthDay(points[0].DateFrom),
		util.FormatMonthDay(points[len(points)-1].DateTo))
	cost := fmt.Sprintf("Total: %s", util.FormatPrice(a.trip.TotalCost()))

	info := fmt.Sprintf("%s\n%s  %s", route, MutedStyle.Render(dates), cost)
	return HeaderStyle.Render(title + "\n" + info)
}

// routeTitle joins up to three destination names; longer trips collapse
// the middle. Consecutive stops in the same destination contribute one
// name.
func (a *App) routeTitle(points []model.Point) string {
	names := make([]string, 0, len(points))
	for _, p := range points {
		dest, ok := a.trip.DestinationByID(p.Destination)
		if !ok {
			continue
		}
		if len(names) > 0 && names[len(names)-1] == dest.Name {
			continue
		}
		names = append(names, dest.Name)
	}
	if len(names) == 0 {
		return ""
	}
	if len(names) <= 3 {
		return strings.Join(names, " — ")
	}
	return fmt.Sprintf("%s — … — %s", names[0], names[len(names)-1])
}

func (a *App) filterBarView() string {
	counts := model.CountByFilter(a.trip.Points(), a.now())
	tabs := make([]string, 0, len(model.FilterTypes))
	for _, f := range model.FilterTypes {
		label := fmt.Sprintf("%s %d", strings.ToUpper(string(f)), counts[f])
		switch {
		case f == a.filter:
			tabs = append(tabs, ActiveTabStyle.Render(label))
		case f != model.FilterEverything && counts[f] == 0:
			tabs = append(tabs, DisabledTabStyle.Render(label))
		default:
			tabs = append(tabs, TabStyle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (a *App) sortBarView() string {
	parts := make([]string, 0, len(model.SortTypeOrder))
	for _, s := range model.SortTypeOrder {
		label := model.SortTypeLabels[s]
		switch {
		case s == a.sortType:
			parts = append(parts, ActiveTabStyle.Render(label))
		case !model.EnabledSortTypes[s]:
			parts = append(parts, DisabledTabStyle.Render(label))
		default:
			parts = append(parts, TabStyle.Render(label))
		}
	}
	return MutedStyle.Render("Sort by ") + strings.Join(parts, " ")
}

func (a *App) listView() string {
	var b strings.Builder

	if a.newForm != nil {
		b.WriteString(a.newForm.View(a.width))
		b.WriteString("\n")
	}

	if len(a.rows) == 0 {
		if a.newForm == nil {
			b.WriteString(EmptyStateStyle.Render(emptyMessages[a.filter]))
			b.WriteString("\n")
		}
		return b.String()
	}

	for i, row := range a.rows {
		selected := i == a.cursor && a.newForm == nil
		b.WriteString(row.View(a.width, selected))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) footerView() string {
	if a.errMsg != "" && a.state == stateLoaded {
		return FooterStyle.Render(ErrorStyle.Render(a.errMsg))
	}

	var hints []string
	if a.activeForm() != nil {
		hints = []string{"tab next field", "ctrl+s save", "esc close"}
	} else {
		hints = []string{"↑/↓ move", "enter edit", "f favorite", "n new", "tab filter", "s sort", "? help", "q quit"}
	}
	if a.blocked {
		hints = append([]string{a.spinner.View() + " working"}, hints...)
	}
	return FooterStyle.Render(HelpDescStyle.Render(strings.Join(hints, "  ·  ")))
}

