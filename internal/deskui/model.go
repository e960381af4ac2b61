// Package deskui provides the Bubble Tea creator dashboard.
package deskui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/verte-zerg/creatordesk/internal/collection"
	"github.com/verte-zerg/creatordesk/internal/listing"
	"github.com/verte-zerg/creatordesk/internal/pager"
	"github.com/verte-zerg/creatordesk/internal/store"
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	emptyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8")).Italic(true)
	menuTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Bold(true)
	menuCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

const markerWidth = 3

// Options tunes the dashboard.
type Options struct {
	// LoadDelay is the simulated latency of load-more and refresh.
	LoadDelay time.Duration
	// Fetcher overrides the delay-based fetcher.
	Fetcher pager.Fetcher
}

type loadMoreMsg struct {
	tab    int
	ticket pager.LoadTicket
	err    error
}

type refreshMsg struct {
	tab int
	gen uint64
	err error
}

type pendingLoad struct {
	ticket pager.LoadTicket
	ctx    context.Context
	cancel context.CancelFunc
}

type pendingRefresh struct {
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
}

type filterOption struct {
	key   string
	label string
	value string
}

// Model implements the Bubble Tea dashboard over a set of collections.
type Model struct {
	store   *store.Store
	handles []collection.Handle
	logger  *zap.Logger
	fetcher pager.Fetcher

	ctx    context.Context
	cancel context.CancelFunc

	active  int
	table   table.Model
	search  textinput.Model
	spinner spinner.Model
	rowIDs  []string

	searchMode   bool
	filterMode   bool
	filterCursor int

	sortIdx    []int
	loads      map[int]pendingLoad
	refreshes  map[int]pendingRefresh
	refreshGen uint64

	errMsg string
	width  int
	height int
}

// NewModel constructs a dashboard over handles. st backs refresh.
func NewModel(st *store.Store, handles []collection.Handle, logger *zap.Logger, opts Options) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = pager.DelayFetcher{Delay: opts.LoadDelay}
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		store:     st,
		handles:   handles,
		logger:    logger,
		fetcher:   fetcher,
		ctx:       ctx,
		cancel:    cancel,
		sortIdx:   make([]int, len(handles)),
		loads:     map[int]pendingLoad{},
		refreshes: map[int]pendingRefresh{},
	}
	m.search = newSearchInput()
	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.table = table.New(table.WithHeight(1))
	m.table.SetStyles(tableStyles())
	m.table.Focus()
	m.syncTable()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case loadMoreMsg:
		m.finishLoadMore(msg)
		return m, nil
	case refreshMsg:
		m.finishRefresh(msg)
		return m, nil
	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		if len(m.handles) == 0 {
			if msg.String() == "q" {
				return m.quit()
			}
			return m, nil
		}
		if m.searchMode {
			return m.updateSearch(msg)
		}
		if m.filterMode {
			return m.updateFilterMenu(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h := m.current()
	switch msg.String() {
	case "q":
		return m.quit()
	case "tab", "right", "l":
		m.moveTab(1)
		return m, nil
	case "shift+tab", "left", "h":
		m.moveTab(-1)
		return m, nil
	case "/":
		m.searchMode = true
		m.search.SetValue(h.Snapshot().Search)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case "f":
		if len(m.filterOptions()) == 0 {
			return m, nil
		}
		m.filterMode = true
		m.filterCursor = 0
		return m, nil
	case "n", "pgdown":
		m.page(h.NextPage())
		return m, nil
	case "p", "pgup":
		m.page(h.PrevPage())
		return m, nil
	case "g", "home":
		m.page(h.FirstPage())
		return m, nil
	case "G", "end":
		m.page(h.LastPage())
		return m, nil
	case " ":
		if id := m.cursorID(); id != "" {
			h.ToggleRowSelection(id)
			m.syncTable()
		}
		return m, nil
	case "a":
		h.ToggleSelectAll()
		m.syncTable()
		return m, nil
	case "x":
		h.ClearSelection()
		m.syncTable()
		return m, nil
	case "m":
		return m, m.startLoadMore()
	case "s":
		m.cycleSort()
		return m, nil
	case "S":
		snap := h.Snapshot()
		if snap.SortKey != "" {
			h.SetSort(snap.SortKey, !snap.SortDesc)
			m.afterQueryChange()
		}
		return m, nil
	case "r":
		return m, m.startRefresh()
	case "esc":
		m.errMsg = ""
		return m, nil
	case "up", "down", "k", "j":
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.searchMode = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	h := m.current()
	if m.search.Value() != h.Snapshot().Search {
		h.SetSearchText(m.search.Value())
		m.afterQueryChange()
	}
	return m, cmd
}

func (m *Model) updateFilterMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := m.filterOptions()
	h := m.current()
	switch msg.String() {
	case "esc", "f", "enter":
		m.filterMode = false
		return m, nil
	case "q":
		return m.quit()
	case "up", "k":
		if m.filterCursor > 0 {
			m.filterCursor--
		}
		return m, nil
	case "down", "j":
		if m.filterCursor < len(options)-1 {
			m.filterCursor++
		}
		return m, nil
	case " ":
		if m.filterCursor < len(options) {
			opt := options[m.filterCursor]
			if h.ToggleFilter(opt.key, opt.value) {
				m.logger.Debug("filter toggled",
					zap.String("collection", h.Name()),
					zap.String("key", opt.key),
					zap.String("value", opt.value))
				m.afterQueryChange()
			}
		}
		return m, nil
	case "c":
		h.ClearAllFilters()
		m.afterQueryChange()
		return m, nil
	}
	return m, nil
}

func (m *Model) current() collection.Handle {
	return m.handles[m.active]
}

func (m *Model) moveTab(delta int) {
	count := len(m.handles)
	if count == 0 {
		return
	}
	next := m.active + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.active = next
	m.table.SetCursor(0)
	m.syncTable()
}

func (m *Model) page(moved bool) {
	if !moved {
		return
	}
	m.table.SetCursor(0)
	m.syncTable()
}

func (m *Model) cycleSort() {
	h := m.current()
	keys := h.SortKeys()
	if len(keys) == 0 {
		return
	}
	idx := (m.sortIdx[m.active] + 1) % (len(keys) + 1)
	m.sortIdx[m.active] = idx
	key := ""
	if idx > 0 {
		key = keys[idx-1]
	}
	h.SetSort(key, h.Snapshot().SortDesc)
	m.afterQueryChange()
}

// afterQueryChange runs after search, filters or sort changed on the active tab.
// The pager already invalidated its pending ticket; the fetch itself is cancelled here.
func (m *Model) afterQueryChange() {
	m.cancelLoad(m.active)
	m.table.SetCursor(0)
	m.syncTable()
}

func (m *Model) startLoadMore() tea.Cmd {
	h := m.current()
	if h.Mode() != pager.ModeIncremental {
		return nil
	}
	ticket, ok := h.BeginLoadMore()
	if !ok {
		return nil
	}
	ctx, cancel := context.WithCancel(m.ctx)
	tab := m.active
	m.loads[tab] = pendingLoad{ticket: ticket, ctx: ctx, cancel: cancel}
	m.logger.Debug("load more started", zap.String("collection", h.Name()), zap.Int("page", ticket.Page()))
	m.syncTable()
	return tea.Batch(fetchMoreCmd(ctx, m.fetcher, tab, ticket), m.spinner.Tick)
}

func (m *Model) finishLoadMore(msg loadMoreMsg) {
	if msg.tab < 0 || msg.tab >= len(m.handles) {
		return
	}
	h := m.handles[msg.tab]
	pending, ok := m.loads[msg.tab]
	current := ok && pending.ticket == msg.ticket
	if current {
		pending.cancel()
		delete(m.loads, msg.tab)
	}
	if msg.err != nil {
		if current {
			h.CancelLoad()
			if !errors.Is(msg.err, context.Canceled) {
				m.errMsg = fmt.Sprintf("failed to load more %s: %v", h.Name(), msg.err)
				m.logger.Warn("load more failed", zap.String("collection", h.Name()), zap.Error(msg.err))
			}
		}
		m.syncIfActive(msg.tab)
		return
	}
	if !h.CompleteLoadMore(msg.ticket) {
		m.logger.Debug("stale load discarded", zap.String("collection", h.Name()), zap.Int("page", msg.ticket.Page()))
		return
	}
	m.logger.Debug("load more completed", zap.String("collection", h.Name()), zap.Int("page", msg.ticket.Page()))
	m.syncIfActive(msg.tab)
}

func (m *Model) startRefresh() tea.Cmd {
	if m.store == nil {
		return nil
	}
	tab := m.active
	m.cancelRefresh(tab)
	m.refreshGen++
	ctx, cancel := context.WithCancel(m.ctx)
	m.refreshes[tab] = pendingRefresh{gen: m.refreshGen, ctx: ctx, cancel: cancel}
	m.logger.Debug("refresh started", zap.String("collection", m.current().Name()))
	return tea.Batch(refreshCmd(ctx, m.fetcher, tab, m.refreshGen), m.spinner.Tick)
}

func (m *Model) finishRefresh(msg refreshMsg) {
	pending, ok := m.refreshes[msg.tab]
	if !ok || pending.gen != msg.gen {
		return
	}
	pending.cancel()
	delete(m.refreshes, msg.tab)
	h := m.handles[msg.tab]
	if msg.err != nil {
		if !errors.Is(msg.err, context.Canceled) {
			m.errMsg = fmt.Sprintf("failed to refresh %s: %v", h.Name(), msg.err)
			m.logger.Warn("refresh failed", zap.String("collection", h.Name()), zap.Error(msg.err))
		}
		return
	}
	m.cancelLoad(msg.tab)
	if err := h.Reload(m.ctx, m.store); err != nil {
		m.errMsg = fmt.Sprintf("failed to refresh %s: %v", h.Name(), err)
		m.logger.Warn("refresh failed", zap.String("collection", h.Name()), zap.Error(err))
		return
	}
	m.errMsg = ""
	m.logger.Info("collection refreshed", zap.String("collection", h.Name()), zap.Int("rows", h.Snapshot().Total))
	m.syncIfActive(msg.tab)
}

func fetchMoreCmd(ctx context.Context, f pager.Fetcher, tab int, ticket pager.LoadTicket) tea.Cmd {
	return func() tea.Msg {
		return loadMoreMsg{tab: tab, ticket: ticket, err: f.Fetch(ctx, ticket.Page())}
	}
}

func refreshCmd(ctx context.Context, f pager.Fetcher, tab int, gen uint64) tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{tab: tab, gen: gen, err: f.Fetch(ctx, 1)}
	}
}

func (m *Model) cancelLoad(tab int) {
	if pending, ok := m.loads[tab]; ok {
		pending.cancel()
		delete(m.loads, tab)
	}
}

func (m *Model) cancelRefresh(tab int) {
	if pending, ok := m.refreshes[tab]; ok {
		pending.cancel()
		delete(m.refreshes, tab)
	}
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	for tab := range m.loads {
		m.cancelLoad(tab)
	}
	for tab := range m.refreshes {
		m.cancelRefresh(tab)
	}
	m.cancel()
	return m, tea.Quit
}

func (m *Model) busy() bool {
	return len(m.loads) > 0 || len(m.refreshes) > 0
}

func (m *Model) syncIfActive(tab int) {
	if tab == m.active {
		m.syncTable()
	}
}

// syncTable copies the active snapshot into the table widget.
func (m *Model) syncTable() {
	if len(m.handles) == 0 {
		return
	}
	h := m.current()
	snap := h.Snapshot()
	cols := h.Columns()
	columns := make([]table.Column, 0, len(cols)+1)
	columns = append(columns, table.Column{Title: "", Width: markerWidth})
	for _, col := range cols {
		columns = append(columns, table.Column{Title: col.Title, Width: col.Width})
	}
	rows := make([]table.Row, 0, len(snap.Rows))
	ids := make([]string, 0, len(snap.Rows))
	for _, row := range snap.Rows {
		cells := make([]string, 0, len(cols)+1)
		switch {
		case row.Placeholder:
			cells = append(cells, "")
		case row.Selected:
			cells = append(cells, "[x]")
		default:
			cells = append(cells, "[ ]")
		}
		for i, cell := range row.Cells {
			if i < len(cols) && cols[i].Right {
				cell = alignRight(cell, cols[i].Width)
			}
			cells = append(cells, cell)
		}
		for len(cells) < len(columns) {
			cells = append(cells, "")
		}
		rows = append(rows, table.Row(cells))
		ids = append(ids, row.ID)
	}
	// Columns must be replaced before rows when the column count shrinks.
	// Clearing the rows moves the cursor to -1, so it is restored afterwards.
	cursor := m.table.Cursor()
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(rows)
	m.table.SetCursor(clampCursor(cursor, len(rows)))
	m.rowIDs = ids
}

func (m *Model) cursorID() string {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rowIDs) {
		return ""
	}
	return m.rowIDs[idx]
}

func (m *Model) filterOptions() []filterOption {
	var out []filterOption
	for _, cat := range m.current().Categories() {
		for _, value := range cat.Values {
			out = append(out, filterOption{key: cat.Key, label: cat.Label, value: value})
		}
	}
	return out
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 2
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.table.SetWidth(m.width)
	m.table.SetHeight(maxInt(1, bodyHeight-1))
	promptWidth := lipgloss.Width(m.search.Prompt)
	m.search.Width = maxInt(10, m.width-promptWidth-2)
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.handles))
	for i, h := range m.handles {
		label := fmt.Sprintf("%s %s", h.Title(), humanize.Comma(int64(h.Total())))
		if i == m.active {
			parts = append(parts, activeNavStyle.Render(label))
		} else {
			parts = append(parts, inactiveNavStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	if len(m.handles) == 0 {
		return headerStyle.Render("No collections.")
	}
	tabs := padLines(m.renderTabs(), m.width)
	if m.searchMode {
		return tabs + "\n" + m.search.View()
	}
	return tabs + "\n" + headerStyle.Render(truncateLine(m.querySummary(), m.width))
}

func (m *Model) querySummary() string {
	snap := m.current().Snapshot()
	search := snap.Search
	if search == "" {
		search = "-"
	}
	filters := "none"
	if snap.Filters.Count() > 0 {
		keys := make([]string, 0, len(snap.Filters))
		for k := range snap.Filters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+strings.Join(snap.Filters[k], "|"))
		}
		filters = strings.Join(parts, " ")
	}
	sortLabel := "source"
	if snap.SortKey != "" {
		sortLabel = snap.SortKey
		if snap.SortDesc {
			sortLabel += " desc"
		}
	}
	return fmt.Sprintf("Search: %s  Filters: %s  Sort: %s", search, filters, sortLabel)
}

func (m *Model) renderBody() string {
	if len(m.handles) == 0 {
		return emptyStyle.Render("Nothing to show. Run: creatordesk seed")
	}
	if m.filterMode {
		return m.renderFilterMenu()
	}
	snap := m.current().Snapshot()
	if snap.Empty {
		return emptyStyle.Render(listing.EmptyMessage(snap))
	}
	return tableMutedStyle.Render(m.table.View())
}

func (m *Model) renderFilterMenu() string {
	snap := m.current().Snapshot()
	title := menuTitleStyle.Render("Filters (space: toggle  c: clear all  esc: close)")
	var lines []string
	cursorLine := 0
	lastLabel := ""
	for i, opt := range m.filterOptions() {
		if opt.label != lastLabel {
			lines = append(lines, menuTitleStyle.Render(opt.label))
			lastLabel = opt.label
		}
		mark := "[ ]"
		if snap.Filters.Has(opt.key, opt.value) {
			mark = "[x]"
		}
		line := fmt.Sprintf("  %s %s", mark, opt.value)
		if i == m.filterCursor {
			line = menuCursorStyle.Render("> " + line[2:])
			cursorLine = len(lines)
		}
		lines = append(lines, line)
	}
	_, bodyHeight, _ := m.layoutHeights()
	start, end := menuWindow(cursorLine, len(lines), bodyHeight-1)
	return strings.Join(append([]string{title}, lines[start:end]...), "\n")
}

// menuWindow returns the [start, end) slice of count lines that fits height and
// keeps the cursor line visible.
func menuWindow(cursor, count, height int) (start, end int) {
	if height < 1 {
		height = 1
	}
	if count <= height {
		return 0, count
	}
	start = max(0, cursor-height+1)
	end = min(count, start+height)
	return start, end
}

func (m *Model) renderFooter() string {
	var status string
	if len(m.handles) > 0 {
		snap := m.current().Snapshot()
		status = listing.Footer(snap)
		if _, ok := m.refreshes[m.active]; ok {
			status += "  " + m.spinner.View() + " Refreshing..."
		} else if snap.Loading {
			status += "  " + m.spinner.View() + " Loading more..."
		}
	}
	lines := []string{truncateLine(status, m.width), headerStyle.Render(truncateLine(m.helpLine(), m.width))}
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(truncateLine(m.errMsg, m.width)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) helpLine() string {
	switch {
	case m.searchMode:
		return "type to search  enter/esc: done"
	case m.filterMode:
		return "up/down: move  space: toggle  c: clear all  esc: close  q: quit"
	}
	paging := "n/p: page  g/G: first/last"
	if len(m.handles) > 0 && m.current().Mode() == pager.ModeIncremental {
		paging = "m: load more"
	}
	return "tab: next  /: search  f: filters  " + paging + "  space: select  a: all  x: clear  s/S: sort  r: refresh  q: quit"
}

func newSearchInput() textinput.Model {
	input := textinput.New()
	input.Prompt = "Search: "
	input.Placeholder = "name, email or title"
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
