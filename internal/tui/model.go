package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/roadline-app/roadline/internal/gesture"
	"github.com/roadline-app/roadline/internal/layout"
	"github.com/roadline-app/roadline/internal/roadmap"
	"github.com/roadline-app/roadline/internal/timeline"
)

// SaveStatus is polled every tick to feed the status bar save segment.
type SaveStatus func() (state string, err error)

// ReloadFunc re-reads the document from storage after an external change.
type ReloadFunc func() (*roadmap.Data, error)

// AppModel is the root BubbleTea model: a scrollable timeline canvas over
// the document store, with keyboard navigation and mouse-driven drag,
// resize, and dependency linking.
type AppModel struct {
	Store      *roadmap.Store
	Controller *gesture.Controller
	Linker     gesture.Linker
	Keys       KeyMap

	DocName         string
	Zoom            timeline.Zoom
	ShowMonthColors bool

	Width  int
	Height int

	// ScrollPx is the horizontal scroll offset of the canvas, in document
	// pixels. It participates in gesture commits: scrolling mid-drag moves
	// the bar by the scrolled amount too.
	ScrollPx float64
	vscroll  int

	// OnMutate fires after every document mutation (autosave scheduling).
	OnMutate func()

	// SaveStatus, when set, feeds the save segment of the status bar.
	SaveStatus SaveStatus

	// Reload, when set, enables the external-change reload prompt.
	Reload ReloadFunc

	rows     []row
	cols     []timeline.Column
	origin   time.Time
	selected int

	editing    bool
	editTarget row
	editor     textinput.Model

	saveState      string
	saveErr        error
	statusMsg      string
	externalChange bool
	rangeErr       error
}

// NewAppModel creates a model over an open document.
func NewAppModel(store *roadmap.Store, docName string, zoom timeline.Zoom) AppModel {
	m := AppModel{
		Store:      store,
		Controller: gesture.NewController(store),
		Keys:       DefaultKeyMap(),
		DocName:    docName,
		Zoom:       zoom,
		editor:     textinput.New(),
	}
	m.refresh()
	return m
}

// refresh recomputes the derived render state from the document. Call after
// every mutation and zoom change.
func (m *AppModel) refresh() {
	data := m.Store.Data()
	m.rows = buildRows(data)
	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}

	start, end, origin, err := timeline.VisibleRange(data.Settings.TimelineStartDate, data.Settings.TimelineEndDate)
	if err != nil {
		m.rangeErr = err
		m.cols = nil
		return
	}
	m.rangeErr = nil
	m.origin = origin
	m.cols = timeline.Columns(start, end, origin, m.Zoom)
}

// touch records a mutation: re-derives render state and pokes the autosaver.
func (m *AppModel) touch() {
	m.refresh()
	if m.OnMutate != nil {
		m.OnMutate()
	}
}

// Init starts the tick loop driving save-status refreshes.
func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return MsgTick{Time: t}
	})
}

// Update handles all messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case MsgTick:
		if m.SaveStatus != nil {
			m.saveState, m.saveErr = m.SaveStatus()
		}
		return m, tickCmd()

	case MsgSaveState:
		m.saveState = msg.State
		m.saveErr = msg.Err

	case MsgExternalChange:
		m.externalChange = true
		m.statusMsg = "document changed on disk — press r to reload"

	case MsgReloaded:
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("reload failed: %v", msg.Err)
		} else {
			m.externalChange = false
			m.statusMsg = "reloaded"
			m.refresh()
		}

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleEditorKey(msg)
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Back):
		if m.Linker.Active() {
			m.Linker.Cancel()
			m.statusMsg = ""
		} else {
			m.Controller.Abort()
		}

	case key.Matches(msg, m.Keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		m.scrollSelectionIntoView()

	case key.Matches(msg, m.Keys.Down):
		if m.selected < len(m.rows)-1 {
			m.selected++
		}
		m.scrollSelectionIntoView()

	case key.Matches(msg, m.Keys.ScrollLeft):
		m.ScrollPx -= m.columnWidth()

	case key.Matches(msg, m.Keys.ScrollRight):
		m.ScrollPx += m.columnWidth()

	case key.Matches(msg, m.Keys.ZoomWeek):
		m.setZoom(timeline.ZoomWeek)

	case key.Matches(msg, m.Keys.ZoomMonth):
		m.setZoom(timeline.ZoomMonth)

	case key.Matches(msg, m.Keys.MonthColors):
		m.ShowMonthColors = !m.ShowMonthColors

	case key.Matches(msg, m.Keys.Toggle):
		m.toggleSelected()

	case key.Matches(msg, m.Keys.Edit):
		m.openEditor()

	case key.Matches(msg, m.Keys.Delete):
		m.deleteSelected()

	case key.Matches(msg, m.Keys.LinkMode):
		m.armLinker()

	case key.Matches(msg, m.Keys.Reload):
		if m.externalChange && m.Reload != nil {
			data, err := m.Reload()
			if err == nil {
				m.Store.Replace(data)
				m.Store.ClearDirty()
				// Re-arm the saver on the reloaded document so a
				// pending save cannot write back pre-reload state.
				if m.OnMutate != nil {
					m.OnMutate()
				}
			}
			return m.Update(MsgReloaded{Err: err})
		}
	}

	return m, nil
}

// setZoom switches column granularity, preserving the leftmost visible date
// rather than the raw pixel offset.
func (m *AppModel) setZoom(z timeline.Zoom) {
	if m.Zoom == z {
		return
	}
	anchor := timeline.XToDate(m.ScrollPx, m.origin, m.Zoom)
	m.Zoom = z
	m.ScrollPx = timeline.DateToX(anchor, m.origin, m.Zoom)
	m.refresh()
}

// columnWidth is the scroll step: one column at the current zoom.
func (m AppModel) columnWidth() float64 {
	if m.Zoom == timeline.ZoomMonth {
		return timeline.ColumnWidthMonth
	}
	return timeline.ColumnWidthWeek
}

// toggleSelected collapses/expands the selected row, or, in link mode,
// commits the dependency edge to the selected row's entity.
func (m *AppModel) toggleSelected() {
	r, ok := m.selectedRow()
	if !ok {
		return
	}

	if m.Linker.Active() {
		targetID := r.subItemID
		if targetID == "" {
			targetID = r.itemID
		}
		if from, to, ok := m.Linker.Click(targetID); ok {
			m.Store.AddDependency(from, to)
			m.statusMsg = "dependency added"
			m.touch()
		}
		return
	}

	switch r.kind {
	case rowStream:
		m.Store.ToggleStreamCollapse(r.streamID)
	case rowItem:
		m.Store.ToggleItemExpanded(r.streamID, r.itemID)
	case rowSubItem, rowPhases:
		m.Store.TogglePhasesExpanded(r.streamID, r.itemID, r.subItemID)
	}
	m.touch()
}

// deleteSelected removes the selected entity. Phase rows are a view of their
// sub-item, so deletion there is a no-op.
func (m *AppModel) deleteSelected() {
	r, ok := m.selectedRow()
	if !ok {
		return
	}
	switch r.kind {
	case rowStream:
		m.Store.RemoveStream(r.streamID)
	case rowItem:
		m.Store.RemoveItem(r.streamID, r.itemID)
	case rowSubItem:
		m.Store.RemoveSubItem(r.streamID, r.itemID, r.subItemID)
	default:
		return
	}
	m.touch()
}

// armLinker enters dependency-link mode from the selected item or sub-item.
func (m *AppModel) armLinker() {
	r, ok := m.selectedRow()
	if !ok {
		return
	}
	sourceID := r.subItemID
	if sourceID == "" {
		sourceID = r.itemID
	}
	if sourceID == "" {
		return
	}
	m.Linker.Arm(sourceID)
	m.statusMsg = "link mode: select the target and press enter (esc cancels)"
}

func (m AppModel) selectedRow() (row, bool) {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.selected], true
}

// scrollSelectionIntoView keeps the selected row inside the body viewport.
func (m *AppModel) scrollSelectionIntoView() {
	h := m.bodyHeight()
	if h <= 0 {
		return
	}
	if m.selected < m.vscroll {
		m.vscroll = m.selected
	}
	if m.selected >= m.vscroll+h {
		m.vscroll = m.selected - h + 1
	}
}

// chromeLines counts the non-body lines: status bar, header, footer.
func (m AppModel) chromeLines() int {
	header := 1
	if m.Zoom == timeline.ZoomMonth {
		header = 2
	}
	return 1 + header + 1
}

func (m AppModel) bodyHeight() int {
	h := m.Height - m.chromeLines()
	if h < 0 {
		return 0
	}
	return h
}

// bodyTop is the screen line of the first body row.
func (m AppModel) bodyTop() int {
	header := 1
	if m.Zoom == timeline.ZoomMonth {
		header = 2
	}
	return 1 + header
}

// View renders the full TUI.
func (m AppModel) View() string {
	if m.Width == 0 {
		return "initializing..."
	}
	if m.rangeErr != nil {
		return fmt.Sprintf("invalid timeline range: %v", m.rangeErr)
	}

	sections := []string{m.renderStatusBar()}
	// Header lines get the same one-cell gutter as body rows so columns line
	// up with the bars below.
	for _, h := range headerLines(m.cols, m.ScrollPx, m.Width-1, m.Zoom, m.ShowMonthColors) {
		sections = append(sections, " "+h)
	}

	bodyH := m.bodyHeight()
	for i := m.vscroll; i < len(m.rows) && i-m.vscroll < bodyH; i++ {
		sections = append(sections, m.renderRow(i))
	}
	for i := len(m.rows) - m.vscroll; i < bodyH; i++ {
		sections = append(sections, "")
	}

	if m.editing {
		sections = append(sections, m.renderEditor())
	}
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatusBar renders the top bar: document name, zoom, save state, and
// any transient message.
func (m AppModel) renderStatusBar() string {
	parts := []string{
		styleStatusLabel.Render("roadline"),
		styleStatusBar.Render(m.DocName),
		styleStatusBar.Render(m.Zoom.String()),
	}

	switch {
	case m.saveErr != nil:
		parts = append(parts, styleStatusError.Render("save failed"))
	case m.saveState != "":
		style := styleStatusSaved
		if m.saveState != "saved" {
			style = styleStatusPending
		}
		parts = append(parts, style.Render(m.saveState))
	}

	if m.Linker.Active() {
		parts = append(parts, styleLinkSource.Render("link mode"))
	}
	if m.statusMsg != "" {
		parts = append(parts, styleStatusBar.Render(m.statusMsg))
	}

	line := strings.Join(parts, styleStatusBar.Render(" · "))
	return styleStatusBar.Width(m.Width).Render(line)
}

// renderFooter renders the keybinding hints.
func (m AppModel) renderFooter() string {
	bindings := FooterBindings(m.Keys)
	if m.Linker.Active() {
		bindings = LinkFooterBindings(m.Keys)
	}

	var parts []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		help := b.Help()
		parts = append(parts, styleFooterKey.Render(help.Key)+styleFooterSep.Render(":")+styleFooterDesc.Render(help.Desc))
	}
	return styleFooter.Width(m.Width).Render(strings.Join(parts, styleFooterSep.Render("  ")))
}

// renderRow renders one body row.
func (m AppModel) renderRow(i int) string {
	r := m.rows[i]
	data := m.Store.Data()
	selected := i == m.selected

	indicator := " "
	if selected {
		indicator = styleSelectionIndicator.Render(selectionIndicator)
	}

	stream := data.Stream(r.streamID)
	if stream == nil {
		return ""
	}

	var segs []barSegment
	switch r.kind {
	case rowStream:
		segs = m.streamSegments(data, stream, selected)
	case rowItem:
		if item := stream.Item(r.itemID); item != nil {
			segs = append(segs, m.itemSegment(stream, item, selected))
		}
	case rowSubItem:
		if item := stream.Item(r.itemID); item != nil {
			if sub := item.SubItem(r.subItemID); sub != nil {
				segs = append(segs, m.subItemSegment(stream, sub, selected))
			}
		}
	case rowPhases:
		if item := stream.Item(r.itemID); item != nil {
			if sub := item.SubItem(r.subItemID); sub != nil {
				segs = append(segs, m.phaseSegments(sub)...)
			}
		}
	}

	return indicator + renderBarRow(m.cols, m.ScrollPx, m.Width-1, segs)
}

// streamSegments renders the stream header: the name block at the left edge
// plus a positioned diamond for each of the stream's milestones.
func (m AppModel) streamSegments(data *roadmap.Data, stream *roadmap.Stream, selected bool) []barSegment {
	style := styleStreamHeader.Foreground(lipgloss.Color(stream.Color))
	if selected {
		style = style.Reverse(true)
	}
	name := stream.Name
	if stream.Collapsed {
		name += " ▸"
	}
	segs := []barSegment{{
		fromCell: 0,
		toCell:   len([]rune(name)) + 2,
		label:    name,
		style:    style,
		fill:     ' ',
	}}

	for _, span := range m.milestoneSpans(data, stream.ID) {
		segs = append(segs, barSegment{
			fromCell: span.fromCell,
			toCell:   span.toCell,
			label:    milestoneMark + " " + span.name,
			style:    styleMilestone,
			fill:     ' ',
		})
	}
	return segs
}

// milestoneSpan is a milestone's cell extent on its stream header row, used
// by both rendering and mouse hit testing.
type milestoneSpan struct {
	id       string
	name     string
	date     string
	fromCell int
	toCell   int
}

func (m AppModel) milestoneSpans(data *roadmap.Data, streamID string) []milestoneSpan {
	var spans []milestoneSpan
	for _, ms := range data.Milestones {
		if ms.StreamID != streamID {
			continue
		}
		date, err := timeline.ParseDate(ms.Date)
		if err != nil {
			continue
		}
		drag := m.dragOffset(ms.ID)
		c := cellOf(timeline.DateToX(date, m.origin, m.Zoom)+drag, m.ScrollPx)
		spans = append(spans, milestoneSpan{
			id:       ms.ID,
			name:     ms.Name,
			date:     ms.Date,
			fromCell: c,
			toCell:   c + len([]rune(ms.Name)) + 3,
		})
	}
	return spans
}

func (m AppModel) itemSegment(stream *roadmap.Stream, item *roadmap.Item, selected bool) barSegment {
	from, to := m.rowSpan(item.StartDate, item.EndDate, item.ID)
	color := item.Color
	if color == "" {
		color = stream.Color
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	if selected {
		style = style.Reverse(true)
	}
	if m.Linker.Active() && m.Linker.SourceID() == item.ID {
		style = styleLinkSource
	}
	return barSegment{fromCell: from, toCell: to, label: barLabel(item), style: style, fill: []rune(barFill)[0]}
}

func (m AppModel) subItemSegment(stream *roadmap.Stream, sub *roadmap.Item, selected bool) barSegment {
	from, to := m.rowSpan(sub.StartDate, sub.EndDate, sub.ID)
	color := sub.Color
	if color == "" {
		color = stream.Color
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	if selected {
		style = style.Reverse(true)
	}
	if m.Linker.Active() && m.Linker.SourceID() == sub.ID {
		style = styleLinkSource
	}
	return barSegment{fromCell: from, toCell: to, label: sub.Name, style: style, fill: []rune(subBarFill)[0]}
}

func (m AppModel) phaseSegments(sub *roadmap.Item) []barSegment {
	var segs []barSegment
	for i := range sub.PhaseBars {
		pb := &sub.PhaseBars[i]
		from, to := m.rowSpan(pb.StartDate, pb.EndDate, pb.ID)
		color := pb.Color
		if color == "" {
			color = roadmap.DefaultPhaseBarColor
		}
		segs = append(segs, barSegment{
			fromCell: from,
			toCell:   to,
			label:    pb.Name,
			style:    lipgloss.NewStyle().Foreground(lipgloss.Color(color)),
			fill:     []rune(phaseBarFill)[0],
		})
	}
	return segs
}

// rowSpan computes a bar's cell span, shifted by the in-flight drag offset
// when this entity is the one being dragged.
func (m AppModel) rowSpan(startDate, endDate, id string) (int, int) {
	rect, ok := layout.BarRectFor(startDate, endDate, m.origin, m.Zoom)
	if !ok {
		return 0, 0
	}
	return barCells(rect, m.dragOffset(id), m.ScrollPx)
}

// dragOffset returns the active gesture's visual delta when id is the entity
// being dragged, zero otherwise. Resizes shift only the grabbed edge, which
// rowSpan approximates by shifting the whole bar; the committed geometry
// comes from the store after release.
func (m AppModel) dragOffset(id string) float64 {
	g := m.Controller.Active()
	if g == nil || g.Context().Target.ID != id {
		return 0
	}
	return g.VisualDelta()
}
