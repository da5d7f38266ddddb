package main

import "strings"

// listHeaderHeight is the title line plus the search/filter line above the list.
const listHeaderHeight = 2

// clampWidth returns m.width capped at maxContentWidth.
func (m model) clampWidth() int {
	if m.width > maxContentWidth {
		return maxContentWidth
	}
	return m.width
}

// listViewHeight is the number of list lines between the header and the
// status bar.
func (m model) listViewHeight() int {
	return max(m.height-listHeaderHeight-statusBarHeight, 1)
}

// detailViewHeight is the number of detail lines above the status bar.
func (m model) detailViewHeight() int {
	return max(m.height-statusBarHeight, 1)
}

// rowHeight returns how many lines row i renders to. Must mirror
// renderRow: records take a title and subtitle line, headers take one line
// plus a blank separator unless they open the list.
func (m model) rowHeight(i int) int {
	if m.rows[i].kind == rowRecord {
		return 2
	}
	if i == 0 {
		return 1
	}
	return 2
}

// rowOffset returns the first line of row i in the rendered list.
func (m model) rowOffset(i int) int {
	line := 0
	for j := 0; j < i && j < len(m.rows); j++ {
		line += m.rowHeight(j)
	}
	return line
}

// totalListLines is the rendered height of the whole list.
func (m model) totalListLines() int {
	return m.rowOffset(len(m.rows))
}

// ensureCursorVisible adjusts scroll so the cursor's record is within the
// visible viewport. A header directly above the cursor is kept in view too.
func (m *model) ensureCursorVisible() {
	if len(m.rows) == 0 || m.height == 0 {
		m.scroll = 0
		return
	}
	viewHeight := m.listViewHeight()

	start := m.cursor
	if start > 0 && m.rows[start-1].kind == rowHeader {
		start--
	}
	cursorStart := m.rowOffset(start)
	cursorEnd := m.rowOffset(m.cursor) + m.rowHeight(m.cursor) - 1

	if cursorStart < m.scroll {
		m.scroll = cursorStart
	}
	if cursorEnd >= m.scroll+viewHeight {
		m.scroll = cursorEnd - viewHeight + 1
	}
	m.clampListScroll()
}

// clampListScroll caps the list scroll offset so it can't exceed the content.
func (m *model) clampListScroll() {
	maxScroll := max(m.totalListLines()-m.listViewHeight(), 0)
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// computeDetailMaxScroll caches the maximum scroll offset for the detail view.
// Called when entering detail view, on resize, and when the record changes.
func (m *model) computeDetailMaxScroll() {
	r := m.detailRecord()
	if m.width == 0 || m.height == 0 || r == nil {
		m.detailMaxScroll = 0
		m.detailScroll = 0
		return
	}

	content := strings.TrimRight(m.renderDetailContent(*r, m.clampWidth()), "\n")
	totalLines := strings.Count(content, "\n") + 1

	m.detailMaxScroll = max(totalLines-m.detailViewHeight(), 0)
	if m.detailScroll > m.detailMaxScroll {
		m.detailScroll = m.detailMaxScroll
	}
}
