package main

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kylesnowschwartz/qrlog/scan"
)

const (
	idURL  = "aaaa1111-0000-4000-8000-000000000001"
	idWiFi = "bbbb2222-0000-4000-8000-000000000002"
	idText = "cccc3333-0000-4000-8000-000000000003"
	idGeo  = "dddd4444-0000-4000-8000-000000000004"
)

// selectedID returns the id under the cursor, or "".
func selectedID(m model) string {
	if r := m.selectedRecord(); r != nil {
		return r.ID
	}
	return ""
}

// --- TestUpdateList --------------------------------------------------------

func TestUpdateList(t *testing.T) {
	t.Run("starts on first record", func(t *testing.T) {
		m := testModel(t)
		if m.cursor != 1 || selectedID(m) != idURL {
			t.Errorf("cursor = %d (%q), want 1 (%q)", m.cursor, selectedID(m), idURL)
		}
	})

	t.Run("j moves to next record", func(t *testing.T) {
		m := testModel(t)
		result, cmd := m.updateList(key("j"))
		got := asModel(result)
		if got.cursor != 2 {
			t.Errorf("cursor = %d, want 2", got.cursor)
		}
		if cmd != nil {
			t.Errorf("j should not emit a command, got %T", cmd)
		}
	})

	t.Run("j skips group headers", func(t *testing.T) {
		m := testModel(t)
		m.cursor = 2
		result, _ := m.updateList(key("j"))
		got := asModel(result)
		if got.cursor != 4 || selectedID(got) != idText {
			t.Errorf("cursor = %d (%q), want 4 (%q)", got.cursor, selectedID(got), idText)
		}
	})

	t.Run("j does not pass last record", func(t *testing.T) {
		m := testModel(t)
		m.cursor = 6
		result, _ := m.updateList(key("j"))
		if got := asModel(result); got.cursor != 6 {
			t.Errorf("cursor = %d, want 6", got.cursor)
		}
	})

	t.Run("k skips group headers", func(t *testing.T) {
		m := testModel(t)
		m.cursor = 4
		result, _ := m.updateList(key("k"))
		if got := asModel(result); got.cursor != 2 {
			t.Errorf("cursor = %d, want 2", got.cursor)
		}
	})

	t.Run("k does not land on first header", func(t *testing.T) {
		m := testModel(t)
		result, _ := m.updateList(key("k"))
		if got := asModel(result); got.cursor != 1 {
			t.Errorf("cursor = %d, want 1", got.cursor)
		}
	})

	t.Run("G jumps to last record, g back to first", func(t *testing.T) {
		m := testModel(t)
		result, _ := m.updateList(key("G"))
		got := asModel(result)
		if got.cursor != 6 {
			t.Errorf("after G cursor = %d, want 6", got.cursor)
		}
		got.scroll = 5
		result, _ = got.updateList(key("g"))
		got = asModel(result)
		if got.cursor != 1 || got.scroll != 0 {
			t.Errorf("after g cursor = %d scroll = %d, want 1, 0", got.cursor, got.scroll)
		}
	})

	t.Run("enter opens detail", func(t *testing.T) {
		m := testModel(t)
		m.detailScroll = 4
		result, _ := m.updateList(key("enter"))
		got := asModel(result)
		if got.view != viewDetail {
			t.Fatalf("view = %d, want viewDetail", got.view)
		}
		if got.detailID != idURL {
			t.Errorf("detailID = %q, want %q", got.detailID, idURL)
		}
		if got.detailScroll != 0 {
			t.Errorf("detailScroll = %d, want 0", got.detailScroll)
		}
	})

	t.Run("enter on empty list stays", func(t *testing.T) {
		m := testModel(t)
		m.setRecords(nil)
		result, _ := m.updateList(key("enter"))
		if got := asModel(result); got.view != viewList {
			t.Errorf("view = %d, want viewList", got.view)
		}
	})

	t.Run("q quits", func(t *testing.T) {
		m := testModel(t)
		_, cmd := m.updateList(key("q"))
		if !isQuit(cmd) {
			t.Error("q should quit")
		}
	})

	t.Run("ctrl+c quits", func(t *testing.T) {
		m := testModel(t)
		_, cmd := m.updateList(key("ctrl+c"))
		if !isQuit(cmd) {
			t.Error("ctrl+c should quit")
		}
	})

	t.Run("f cycles type filter", func(t *testing.T) {
		m := testModel(t)
		result, _ := m.updateList(key("f"))
		got := asModel(result)
		if got.filter.typ != scan.TypeURL {
			t.Fatalf("filter.typ = %q, want url", got.filter.typ)
		}
		if len(got.rows) != 2 || selectedID(got) != idURL {
			t.Errorf("rows = %d, selected %q; want 2 rows on %q", len(got.rows), selectedID(got), idURL)
		}

		result, _ = got.updateList(key("f"))
		got = asModel(result)
		if got.filter.typ != scan.TypeWiFi || selectedID(got) != idWiFi {
			t.Errorf("second f: typ = %q selected %q, want wifi on %q", got.filter.typ, selectedID(got), idWiFi)
		}
	})

	t.Run("f filter with no matches leaves empty list", func(t *testing.T) {
		m := testModel(t)
		m.filter.typ = scan.TypeEmail
		m.rebuildRows()
		if len(m.rows) != 0 || m.selectedRecord() != nil {
			t.Errorf("rows = %d, want empty list and no selection", len(m.rows))
		}
	})

	t.Run("tab toggles saved-only", func(t *testing.T) {
		m := testModel(t)
		result, _ := m.updateList(key("tab"))
		got := asModel(result)
		if !got.filter.savedOnly {
			t.Fatal("savedOnly should be on")
		}
		if selectedID(got) != idText {
			t.Errorf("selected = %q, want %q", selectedID(got), idText)
		}
		if got.rows[0].label != scan.LabelYesterday {
			t.Errorf("first header = %q, want %q", got.rows[0].label, scan.LabelYesterday)
		}

		result, _ = got.updateList(key("tab"))
		got = asModel(result)
		if got.filter.savedOnly || len(got.rows) != 7 {
			t.Errorf("second tab: savedOnly = %v rows = %d, want off, 7", got.filter.savedOnly, len(got.rows))
		}
	})

	t.Run("esc clears filters", func(t *testing.T) {
		m := testModel(t)
		m.filter = listFilter{typ: scan.TypeGeo, query: "37", savedOnly: false}
		m.search.SetValue("37")
		m.rebuildRows()
		result, _ := m.updateList(key("esc"))
		got := asModel(result)
		if got.filter.active() {
			t.Errorf("filter still active: %+v", got.filter)
		}
		if got.search.Value() != "" {
			t.Errorf("search value = %q, want empty", got.search.Value())
		}
		if selectedID(got) != idGeo {
			t.Errorf("selected = %q, want cursor kept on %q", selectedID(got), idGeo)
		}
	})

	t.Run("slash starts search", func(t *testing.T) {
		m := testModel(t)
		result, _ := m.updateList(key("/"))
		got := asModel(result)
		if !got.searching {
			t.Fatal("searching should be true")
		}
		if !got.search.Focused() {
			t.Error("search input should be focused")
		}
	})
}

// --- TestUpdateSearch ------------------------------------------------------

func typeQuery(m model, q string) model {
	for _, r := range q {
		result, _ := m.Update(key(string(r)))
		m = asModel(result)
	}
	return m
}

func TestUpdateSearch(t *testing.T) {
	t.Run("typing filters the list", func(t *testing.T) {
		m := testModel(t)
		result, _ := m.Update(key("/"))
		m = typeQuery(asModel(result), "home")
		if m.filter.query != "home" {
			t.Fatalf("filter.query = %q, want home", m.filter.query)
		}
		if selectedID(m) != idWiFi {
			t.Errorf("selected = %q, want %q", selectedID(m), idWiFi)
		}
		if n := len(m.filter.apply(m.records)); n != 1 {
			t.Errorf("matching records = %d, want 1", n)
		}
	})

	t.Run("typed keys do not trigger list bindings", func(t *testing.T) {
		m := testModel(t)
		result, _ := m.Update(key("/"))
		m = typeQuery(asModel(result), "q")
		if !m.searching {
			t.Error("q inside search should not leave search")
		}
	})

	t.Run("enter keeps query and leaves search", func(t *testing.T) {
		m := testModel(t)
		result, _ := m.Update(key("/"))
		m = typeQuery(asModel(result), "milk")
		result, _ = m.Update(key("enter"))
		got := asModel(result)
		if got.searching {
			t.Error("searching should be false after enter")
		}
		if got.filter.query != "milk" || selectedID(got) != idText {
			t.Errorf("query = %q selected = %q, want milk on %q", got.filter.query, selectedID(got), idText)
		}
	})

	t.Run("esc clears query", func(t *testing.T) {
		m := testModel(t)
		result, _ := m.Update(key("/"))
		m = typeQuery(asModel(result), "milk")
		result, _ = m.Update(key("esc"))
		got := asModel(result)
		if got.searching || got.filter.query != "" || len(got.rows) != 7 {
			t.Errorf("searching = %v query = %q rows = %d, want false, empty, 7",
				got.searching, got.filter.query, len(got.rows))
		}
	})

	t.Run("down moves through results", func(t *testing.T) {
		m := testModel(t)
		result, _ := m.Update(key("/"))
		result, _ = asModel(result).Update(key("down"))
		got := asModel(result)
		if got.cursor != 2 || !got.searching {
			t.Errorf("cursor = %d searching = %v, want 2, true", got.cursor, got.searching)
		}
	})
}

// --- Store commands --------------------------------------------------------

func TestStoreCommands(t *testing.T) {
	t.Run("s toggles saved and persists", func(t *testing.T) {
		m := testModel(t)
		_, cmd := m.updateList(key("s"))
		got := runCmd(t, m, cmd)

		if r := got.selectedRecord(); r == nil || !r.IsSaved {
			t.Fatalf("selected record should be saved, got %+v", r)
		}
		if got.status != "saved" {
			t.Errorf("status = %q, want saved", got.status)
		}
		stored, ok := got.history.Get(context.Background(), idURL)
		if !ok || !stored.IsSaved {
			t.Error("saved flag was not persisted")
		}

		_, cmd = got.updateList(key("s"))
		got = runCmd(t, got, cmd)
		if got.status != "unsaved" {
			t.Errorf("status = %q, want unsaved", got.status)
		}
	})

	t.Run("d deletes and moves to neighbour", func(t *testing.T) {
		m := testModel(t)
		_, cmd := m.updateList(key("d"))
		got := runCmd(t, m, cmd)

		if len(got.records) != 3 {
			t.Fatalf("records = %d, want 3", len(got.records))
		}
		if selectedID(got) != idWiFi {
			t.Errorf("selected = %q, want %q", selectedID(got), idWiFi)
		}
		if _, ok := got.history.Get(context.Background(), idURL); ok {
			t.Error("record still stored after delete")
		}
	})

	t.Run("deleting the last row selects the one above", func(t *testing.T) {
		m := testModel(t)
		m.cursor = 6
		_, cmd := m.updateList(key("d"))
		got := runCmd(t, m, cmd)
		if selectedID(got) != idText {
			t.Errorf("selected = %q, want %q", selectedID(got), idText)
		}
	})

	t.Run("key press clears status", func(t *testing.T) {
		m := testModel(t)
		m.status = "saved"
		result, _ := m.Update(key("j"))
		if got := asModel(result); got.status != "" {
			t.Errorf("status = %q, want cleared", got.status)
		}
	})
}

// --- TestUpdateDetail ------------------------------------------------------

func detailModel(t *testing.T) model {
	t.Helper()
	m := testModel(t)
	result, _ := m.updateList(key("enter"))
	return asModel(result)
}

func TestUpdateDetail(t *testing.T) {
	t.Run("q returns to list", func(t *testing.T) {
		m := detailModel(t)
		result, cmd := m.Update(key("q"))
		got := asModel(result)
		if got.view != viewList {
			t.Errorf("view = %d, want viewList", got.view)
		}
		if isQuit(cmd) {
			t.Error("q in detail should not quit")
		}
	})

	t.Run("esc returns to list", func(t *testing.T) {
		m := detailModel(t)
		result, _ := m.Update(key("esc"))
		if got := asModel(result); got.view != viewList {
			t.Errorf("view = %d, want viewList", got.view)
		}
	})

	t.Run("ctrl+c quits from detail", func(t *testing.T) {
		m := detailModel(t)
		_, cmd := m.Update(key("ctrl+c"))
		if !isQuit(cmd) {
			t.Error("ctrl+c should quit")
		}
	})

	t.Run("j/k scroll within bounds", func(t *testing.T) {
		m := detailModel(t)
		m.detailMaxScroll = 2

		for range 5 {
			result, _ := m.Update(key("j"))
			m = asModel(result)
		}
		if m.detailScroll != 2 {
			t.Errorf("detailScroll = %d, want clamped to 2", m.detailScroll)
		}

		for range 5 {
			result, _ := m.Update(key("k"))
			m = asModel(result)
		}
		if m.detailScroll != 0 {
			t.Errorf("detailScroll = %d, want 0", m.detailScroll)
		}
	})

	t.Run("G and g jump", func(t *testing.T) {
		m := detailModel(t)
		m.detailMaxScroll = 9
		result, _ := m.Update(key("G"))
		m = asModel(result)
		if m.detailScroll != 9 {
			t.Errorf("after G detailScroll = %d, want 9", m.detailScroll)
		}
		result, _ = m.Update(key("g"))
		if got := asModel(result); got.detailScroll != 0 {
			t.Errorf("after g detailScroll = %d, want 0", got.detailScroll)
		}
	})

	t.Run("s toggles saved of open record", func(t *testing.T) {
		m := detailModel(t)
		_, cmd := m.Update(key("s"))
		got := runCmd(t, m, cmd)
		if got.view != viewDetail {
			t.Error("should stay in detail view")
		}
		if r := got.detailRecord(); r == nil || !r.IsSaved {
			t.Errorf("detail record should be saved, got %+v", r)
		}
	})

	t.Run("d deletes and returns to list", func(t *testing.T) {
		m := detailModel(t)
		result, cmd := m.Update(key("d"))
		got := runCmd(t, asModel(result), cmd)
		if got.view != viewList {
			t.Errorf("view = %d, want viewList", got.view)
		}
		if len(got.records) != 3 {
			t.Errorf("records = %d, want 3", len(got.records))
		}
	})

	t.Run("record deleted elsewhere closes detail", func(t *testing.T) {
		m := detailModel(t)
		var others []scan.Record
		for _, r := range m.records {
			if r.ID != idURL {
				others = append(others, r)
			}
		}
		result, cmd := m.Update(storeUpdateMsg{records: others})
		got := asModel(result)
		if got.view != viewList || got.detailID != "" {
			t.Errorf("view = %d detailID = %q, want list view", got.view, got.detailID)
		}
		if cmd == nil {
			t.Error("storeUpdateMsg should re-subscribe")
		}
	})
}

// --- Mouse -----------------------------------------------------------------

func TestMouse(t *testing.T) {
	t.Run("wheel moves list cursor", func(t *testing.T) {
		m := testModel(t)
		result, _ := m.Update(mouseScroll(tea.MouseButtonWheelDown))
		got := asModel(result)
		if got.cursor != 2 {
			t.Errorf("cursor = %d, want 2", got.cursor)
		}
		result, _ = got.Update(mouseScroll(tea.MouseButtonWheelUp))
		if got = asModel(result); got.cursor != 1 {
			t.Errorf("cursor = %d, want 1", got.cursor)
		}
	})

	t.Run("wheel scrolls detail by three", func(t *testing.T) {
		m := detailModel(t)
		m.detailMaxScroll = 10
		result, _ := m.Update(mouseScroll(tea.MouseButtonWheelDown))
		got := asModel(result)
		if got.detailScroll != 3 {
			t.Errorf("detailScroll = %d, want 3", got.detailScroll)
		}
	})
}

// --- Messages --------------------------------------------------------------

func TestUpdateMessages(t *testing.T) {
	t.Run("window size sets dimensions", func(t *testing.T) {
		m := testModel(t)
		result, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
		got := asModel(result)
		if got.width != 80 || got.height != 24 {
			t.Errorf("size = %dx%d, want 80x24", got.width, got.height)
		}
		if got.search.Width != 76 {
			t.Errorf("search.Width = %d, want 76", got.search.Width)
		}
	})

	t.Run("store update keeps selection", func(t *testing.T) {
		m := testModel(t)
		m.cursor = 4 // text record
		fresh := append([]scan.Record{scan.NewRecord("eeee5555", "tel:+15551234", testNow)}, m.records...)
		result, _ := m.Update(storeUpdateMsg{records: fresh})
		got := asModel(result)
		if selectedID(got) != idText {
			t.Errorf("selected = %q, want %q", selectedID(got), idText)
		}
		if len(got.records) != 5 {
			t.Errorf("records = %d, want 5", len(got.records))
		}
	})

	t.Run("watcher error sets status and re-subscribes", func(t *testing.T) {
		m := testModel(t)
		result, cmd := m.Update(watcherErrMsg{err: context.DeadlineExceeded})
		got := asModel(result)
		if got.status == "" || !got.statusErr {
			t.Error("status should report the watcher error")
		}
		if next, _ := got.Update(key("j")); asModel(next).status != "" || asModel(next).statusErr {
			t.Error("a key press should clear the error status")
		}
		if cmd == nil {
			t.Error("watcherErrMsg should re-subscribe")
		}
	})
}
