package main

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kylesnowschwartz/qrlog/scan"
	"github.com/kylesnowschwartz/qrlog/store"
)

// View states
type viewState int

const (
	viewList   viewState = iota // grouped history (main view)
	viewDetail                  // full-screen single record
)

type model struct {
	ctx     context.Context
	history *store.History
	now     func() time.Time

	records []scan.Record // full history, newest first
	rows    []visibleRow  // filtered + grouped, what the list shows
	filter  listFilter

	cursor int // index into rows; rests on a record row whenever one exists
	scroll int // first visible list line
	width  int
	height int

	// Detail view state
	view            viewState
	detailID        string
	detailScroll    int
	detailMaxScroll int

	// Search
	search    textinput.Model
	searching bool

	// Rendering
	md     *mdRenderer
	jsonHL *jsonHL

	// Live refresh state
	watching bool
	watcher  *storeWatcher
	sub      chan []scan.Record
	errc     chan error

	// status is a one-shot notice shown in the header until the next key.
	status    string
	statusErr bool
}

// recordsMsg delivers the history after a load or mutation.
type recordsMsg struct {
	records []scan.Record
	status  string
}

func initialModel(ctx context.Context, h *store.History, records []scan.Record, hasDarkBg bool) model {
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search title, subtitle or payload"
	search.CharLimit = 200

	m := model{
		ctx:     ctx,
		history: h,
		now:     time.Now,
		search:  search,
		md:      newMDRenderer(hasDarkBg),
		jsonHL:  newJSONHL(hasDarkBg),
	}
	m.setRecords(records)
	return m
}

func (m model) Init() tea.Cmd {
	if m.watching {
		return tea.Batch(
			waitForStoreUpdate(m.sub),
			waitForWatcherErr(m.errc),
		)
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(m.clampWidth()-4, 10)
		m.ensureCursorVisible()
		if m.view == viewDetail {
			m.computeDetailMaxScroll()
		}
		return m, nil

	case recordsMsg:
		m.setRecords(msg.records)
		m.status = msg.status
		m.statusErr = false
		m.syncDetail()
		return m, nil

	case storeUpdateMsg:
		m.setRecords(msg.records)
		m.syncDetail()
		return m, waitForStoreUpdate(m.sub)

	case watcherErrMsg:
		// Transient watcher errors: note it, re-subscribe and keep going.
		if msg.err != nil {
			m.status = "watch: " + msg.err.Error()
			m.statusErr = true
		}
		return m, waitForWatcherErr(m.errc)

	case tea.KeyMsg:
		m.status = ""
		m.statusErr = false
		if m.view == viewDetail {
			return m.updateDetail(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)

	case tea.MouseMsg:
		if m.view == viewDetail {
			return m.updateDetailMouse(msg)
		}
		return m.updateListMouse(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// setRecords replaces the history and rebuilds the list, keeping the cursor
// on the same record when it survives.
func (m *model) setRecords(records []scan.Record) {
	m.records = records
	m.rebuildRows()
}

// rebuildRows reapplies the filter and regroups. Called after any change
// to records or filter state.
func (m *model) rebuildRows() {
	selected := ""
	if r := m.selectedRecord(); r != nil {
		selected = r.ID
	}
	prev := m.cursor

	m.rows = buildVisibleRows(m.filter.apply(m.records), m.now())

	m.cursor = 0
	if selected != "" {
		for i, row := range m.rows {
			if row.kind == rowRecord && row.record.ID == selected {
				m.cursor = i
				m.ensureCursorVisible()
				return
			}
		}
		m.cursor = min(prev, max(len(m.rows)-1, 0))
	}
	m.snapCursor()
	m.ensureCursorVisible()
}

// snapCursor moves the cursor off a header onto the nearest record row,
// preferring the one below.
func (m *model) snapCursor() {
	if m.cursor < len(m.rows) && m.rows[m.cursor].kind == rowRecord {
		return
	}
	if !m.cursorDown() {
		m.cursorUp()
	}
}

// selectedRecord returns the record under the cursor, or nil.
func (m model) selectedRecord() *scan.Record {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	row := m.rows[m.cursor]
	if row.kind != rowRecord {
		return nil
	}
	return row.record
}

// detailRecord returns the record open in the detail view, or nil once it
// has been deleted.
func (m model) detailRecord() *scan.Record {
	for i := range m.records {
		if m.records[i].ID == m.detailID {
			return &m.records[i]
		}
	}
	return nil
}

// syncDetail leaves the detail view when its record disappears.
func (m *model) syncDetail() {
	if m.view != viewDetail {
		return
	}
	if m.detailRecord() == nil {
		m.view = viewList
		m.detailID = ""
		return
	}
	m.computeDetailMaxScroll()
}

// stopWatcher shuts the live refresh down, if running.
func (m *model) stopWatcher() {
	if m.watcher != nil {
		m.watcher.stop()
		m.watcher = nil
	}
	m.watching = false
}

// -- Store commands ------------------------------------------------------------

// toggleSavedCmd flips the saved flag of id off the UI goroutine.
func toggleSavedCmd(ctx context.Context, h *store.History, id string) tea.Cmd {
	return func() tea.Msg {
		records, ok := h.ToggleSaved(ctx, id)
		if !ok {
			return recordsMsg{records: records, status: "record no longer exists"}
		}
		status := "unsaved"
		for _, r := range records {
			if r.ID == id && r.IsSaved {
				status = "saved"
			}
		}
		return recordsMsg{records: records, status: status}
	}
}

// deleteRecordCmd removes id from the history.
func deleteRecordCmd(ctx context.Context, h *store.History, id string) tea.Cmd {
	return func() tea.Msg {
		return recordsMsg{records: h.Delete(ctx, id), status: "deleted"}
	}
}
