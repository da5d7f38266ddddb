package main

import (
	tea "github.com/charmbracelet/bubbletea"
)

// updateList handles key events in the history list view.
func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.stopWatcher()
		return m, tea.Quit
	case "j", "down":
		m.cursorDown()
		m.ensureCursorVisible()
	case "k", "up":
		m.cursorUp()
		m.ensureCursorVisible()
	case "G", "end":
		m.cursorLast()
		m.ensureCursorVisible()
	case "g", "home":
		m.cursorFirst()
	case "ctrl+d":
		for i := 0; i < m.listViewHeight()/4; i++ {
			m.cursorDown()
		}
		m.ensureCursorVisible()
	case "ctrl+u":
		for i := 0; i < m.listViewHeight()/4; i++ {
			m.cursorUp()
		}
		m.ensureCursorVisible()
	case "enter":
		if r := m.selectedRecord(); r != nil {
			m.view = viewDetail
			m.detailID = r.ID
			m.detailScroll = 0
			m.computeDetailMaxScroll()
		}
	case "s":
		if r := m.selectedRecord(); r != nil && m.history != nil {
			return m, toggleSavedCmd(m.ctx, m.history, r.ID)
		}
	case "d":
		if r := m.selectedRecord(); r != nil && m.history != nil {
			return m, deleteRecordCmd(m.ctx, m.history, r.ID)
		}
	case "f":
		m.filter.typ = nextTypeFilter(m.filter.typ)
		m.rebuildRows()
	case "tab":
		m.filter.savedOnly = !m.filter.savedOnly
		m.rebuildRows()
	case "/":
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case "esc", "escape":
		if m.filter.active() {
			m.filter = listFilter{}
			m.search.SetValue("")
			m.rebuildRows()
		}
	}
	return m, nil
}

// updateSearch routes keys to the search input while it has focus. The
// list refilters on every keystroke.
func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.stopWatcher()
		return m, tea.Quit
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc", "escape":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.filter.query = ""
		m.rebuildRows()
		return m, nil
	case "down", "up":
		// Let arrow keys move through results without leaving search.
		if msg.String() == "down" {
			m.cursorDown()
		} else {
			m.cursorUp()
		}
		m.ensureCursorVisible()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != m.filter.query {
		m.filter.query = q
		m.rebuildRows()
	}
	return m, cmd
}

// updateDetail handles key events in the single-record view.
func (m model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.stopWatcher()
		return m, tea.Quit
	case "q", "esc", "escape", "backspace", "h", "left":
		m.view = viewList
		m.detailID = ""
		m.ensureCursorVisible()
	case "j", "down":
		if m.detailScroll < m.detailMaxScroll {
			m.detailScroll++
		}
	case "k", "up":
		if m.detailScroll > 0 {
			m.detailScroll--
		}
	case "ctrl+d":
		m.detailScroll = min(m.detailScroll+m.detailViewHeight()/2, m.detailMaxScroll)
	case "ctrl+u":
		m.detailScroll = max(m.detailScroll-m.detailViewHeight()/2, 0)
	case "G":
		m.detailScroll = m.detailMaxScroll
	case "g":
		m.detailScroll = 0
	case "s":
		if m.history != nil {
			return m, toggleSavedCmd(m.ctx, m.history, m.detailID)
		}
	case "d":
		if m.history != nil {
			id := m.detailID
			m.view = viewList
			m.detailID = ""
			return m, deleteRecordCmd(m.ctx, m.history, id)
		}
	}
	return m, nil
}

// updateListMouse scrolls the list by moving the cursor.
func (m model) updateListMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		m.cursorDown()
		m.ensureCursorVisible()
	case tea.MouseButtonWheelUp:
		m.cursorUp()
		m.ensureCursorVisible()
	}
	return m, nil
}

// updateDetailMouse scrolls the detail view three lines per wheel tick.
func (m model) updateDetailMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		m.detailScroll = min(m.detailScroll+3, m.detailMaxScroll)
	case tea.MouseButtonWheelUp:
		m.detailScroll = max(m.detailScroll-3, 0)
	}
	return m, nil
}

// -- Cursor movement (headers are skipped) -------------------------------------

// cursorDown moves to the next record row. Reports whether it moved.
func (m *model) cursorDown() bool {
	for i := m.cursor + 1; i < len(m.rows); i++ {
		if m.rows[i].kind == rowRecord {
			m.cursor = i
			return true
		}
	}
	return false
}

// cursorUp moves to the previous record row. Reports whether it moved.
func (m *model) cursorUp() bool {
	for i := m.cursor - 1; i >= 0; i-- {
		if m.rows[i].kind == rowRecord {
			m.cursor = i
			return true
		}
	}
	return false
}

// cursorLast moves to the last record row.
func (m *model) cursorLast() {
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].kind == rowRecord {
			m.cursor = i
			return
		}
	}
}

// cursorFirst moves to the first record row and resets scroll so the
// first group header is visible too.
func (m *model) cursorFirst() {
	m.scroll = 0
	for i := 0; i < len(m.rows); i++ {
		if m.rows[i].kind == rowRecord {
			m.cursor = i
			return
		}
	}
}
