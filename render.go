package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kylesnowschwartz/qrlog/scan"
)

// -- Layout constants ---------------------------------------------------------

// maxContentWidth is the maximum width for content rendering.
const maxContentWidth = 120

// statusBarHeight is the number of rendered lines the status bar occupies.
// Rounded border: top + content + bottom = 3 lines.
const statusBarHeight = 3

// -- Helpers ------------------------------------------------------------------

// selectionIndicator returns a left-margin marker for the selected row.
func selectionIndicator(selected bool) string {
	if selected {
		return lipgloss.NewStyle().Foreground(ColorAccent).Render(IconSelected) + " "
	}
	return "  "
}

// spaceBetween lays out left and right strings with gap-fill spacing to span width.
func spaceBetween(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}

// indentBlock adds a prefix to every line of a block of text.
func indentBlock(text string, indent string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}

// truncate cuts s to maxLen runes on a single line and adds an ellipsis.
func truncate(s string, maxLen int) string {
	s = oneLine(s)
	runes := []rune(s)
	if maxLen <= 0 {
		return ""
	}
	if len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}
	return s
}

// wrapText breaks text into lines of at most maxWidth runes, preferring to
// break at a space. Existing newlines are kept.
func wrapText(s string, maxWidth int) []string {
	if maxWidth <= 0 {
		return strings.Split(s, "\n")
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		runes := []rune(para)
		if len(runes) == 0 {
			lines = append(lines, "")
			continue
		}
		for len(runes) > 0 {
			if len(runes) <= maxWidth {
				lines = append(lines, string(runes))
				break
			}
			// Find last space within maxWidth.
			cut := maxWidth
			for i := maxWidth; i > maxWidth-20 && i > 0; i-- {
				if runes[i] == ' ' {
					cut = i
					break
				}
			}
			lines = append(lines, string(runes[:cut]))
			runes = runes[cut:]
			// Skip leading space on next line.
			if len(runes) > 0 && runes[0] == ' ' {
				runes = runes[1:]
			}
		}
	}
	return lines
}

// padLines pads or cuts lines to exactly n entries.
func padLines(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}

// -- View ---------------------------------------------------------------------

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.view {
	case viewDetail:
		return m.viewDetail()
	default:
		return m.viewList()
	}
}

// viewList renders the grouped history (main view).
func (m model) viewList() string {
	width := m.clampWidth()

	var body []string
	if len(m.rows) == 0 {
		body = append(body, "", indentBlock(StyleDim.Render(m.emptyMessage()), "  "))
	} else {
		for i := range m.rows {
			body = append(body, m.renderRow(i, width)...)
		}
	}

	if m.scroll > 0 && m.scroll < len(body) {
		body = body[m.scroll:]
	}
	body = padLines(body, m.listViewHeight())

	var status string
	if m.searching {
		status = m.renderStatusBar(
			"enter", "apply",
			"esc", "clear",
			"↑/↓", "move",
		)
	} else {
		status = m.renderStatusBar(
			"j/k", "nav",
			"enter", "detail",
			"s", "save",
			"d", "delete",
			"f", "type",
			"tab", "saved",
			"/", "search",
			"q", "quit",
		)
	}

	return m.renderListHeader(width) + "\n" + strings.Join(body, "\n") + "\n" + status
}

// emptyMessage explains an empty list.
func (m model) emptyMessage() string {
	if len(m.records) == 0 {
		return "No scans yet. Run `qrlog add <payload>` or `qrlog scan` to record some."
	}
	return "No records match the current filter."
}

// renderListHeader renders the title line and the search/filter line.
func (m model) renderListHeader(width int) string {
	title := StyleAccentBold.Render("qrlog") + "  " +
		StyleSecondary.Render(fmt.Sprintf("History (%d)", len(m.records)))

	var right []string
	if m.status != "" {
		style := StyleDim
		if m.statusErr {
			style = StyleErrorBold
		}
		right = append(right, style.Render(m.status))
	}
	chip := lipgloss.NewStyle().
		Background(ColorChipActiveBg).
		Foreground(ColorChipActiveFg).
		Padding(0, 1)
	if m.filter.typ != "" {
		right = append(right, chip.Render(m.filter.typ.Label()))
	}
	if m.filter.savedOnly {
		right = append(right, chip.Render(IconSaved+" Saved"))
	}
	line1 := spaceBetween(title, strings.Join(right, " "), width)

	var line2 string
	switch {
	case m.searching:
		line2 = m.search.View()
	case m.filter.query != "":
		line2 = StyleDim.Render("/" + m.filter.query)
	}
	if m.filter.active() {
		shown := 0
		for _, row := range m.rows {
			if row.kind == rowRecord {
				shown++
			}
		}
		line2 = spaceBetween(line2, StyleMuted.Render(formatCount(shown)), width)
	}

	return line1 + "\n" + line2
}

// renderRow renders row i of the list. Must mirror rowHeight.
func (m model) renderRow(i, width int) []string {
	row := m.rows[i]
	if row.kind == rowHeader {
		header := "  " + StyleSecondaryBold.Render(row.label)
		if i == 0 {
			return []string{header}
		}
		return []string{"", header}
	}

	r := row.record
	selected := i == m.cursor
	sel := selectionIndicator(selected)

	icon := lipgloss.NewStyle().Foreground(typeColor(r.Type)).Render(typeIcon(r.Type))

	right := StyleDim.Render(scan.FormatTimestamp(r.Timestamp, m.now()))
	if r.IsSaved {
		right += " " + lipgloss.NewStyle().Foreground(ColorSaved).Render(IconSaved)
	} else {
		right += "  "
	}

	// selection (2) + icon (1) + space (1) + gap (2) + right column
	titleWidth := max(width-6-lipgloss.Width(right), 10)
	title := StylePrimaryBold.Render(truncate(r.Title, titleWidth))
	line1 := spaceBetween(sel+icon+" "+title, right, width)
	line2 := sel + "  " + StyleSecondary.Render(truncate(r.Subtitle, max(width-4, 10)))

	if selected {
		bg := lipgloss.NewStyle().Background(ColorSelectedBg).Width(width)
		line1 = bg.Render(line1)
		line2 = bg.Render(line2)
	}
	return []string{line1, line2}
}

// -- Detail view --------------------------------------------------------------

// viewDetail renders a single record full-screen with scrolling.
func (m model) viewDetail() string {
	r := m.detailRecord()
	if r == nil {
		return ""
	}

	content := strings.TrimRight(m.renderDetailContent(*r, m.clampWidth()), "\n")
	lines := strings.Split(content, "\n")
	if m.detailScroll > 0 && m.detailScroll < len(lines) {
		lines = lines[m.detailScroll:]
	}
	lines = padLines(lines, m.detailViewHeight())

	saveHint := "save"
	if r.IsSaved {
		saveHint = "unsave"
	}
	status := m.renderStatusBar(
		"j/k", "scroll",
		"G/g", "jump",
		"s", saveHint,
		"d", "delete",
		"q/esc", "back",
	)
	return strings.Join(lines, "\n") + "\n" + status
}

// renderDetailContent renders the detail body for r: header, fields,
// actions and the raw payload.
func (m model) renderDetailContent(r scan.Record, width int) string {
	inner := max(width-4, 20)
	var sections []string

	// Header
	typeStyle := lipgloss.NewStyle().Bold(true).Foreground(typeColor(r.Type))
	star := StyleMuted.Render(IconUnsaved)
	if r.IsSaved {
		star = lipgloss.NewStyle().Foreground(ColorSaved).Render(IconSaved)
	}
	left := typeStyle.Render(typeIcon(r.Type)+" "+r.Type.Label()) + " " + star
	header := []string{spaceBetween(left, StyleDim.Render(formatTime(r.Timestamp)), inner)}
	for _, l := range wrapText(r.Title, inner) {
		header = append(header, StylePrimaryBold.Render(l))
	}
	if r.Subtitle != "" && r.Subtitle != r.Title {
		for _, l := range wrapText(r.Subtitle, inner) {
			header = append(header, StyleSecondary.Render(l))
		}
	}
	sections = append(sections, strings.Join(header, "\n"))

	// Fields
	if rows := scan.DetailRows(r); len(rows) > 0 {
		labelWidth := 0
		for _, row := range rows {
			labelWidth = max(labelWidth, lipgloss.Width(row.Label))
		}
		valueWidth := max(inner-labelWidth-2, 10)
		pad := strings.Repeat(" ", labelWidth+2)

		lines := []string{StyleSecondaryBold.Render("DETAILS")}
		for _, row := range rows {
			wrapped := wrapText(row.Value, valueWidth)
			label := StyleDim.Render(fmt.Sprintf("%-*s", labelWidth, row.Label))
			lines = append(lines, label+"  "+wrapped[0])
			for _, l := range wrapped[1:] {
				lines = append(lines, pad+l)
			}
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	// Actions
	lines := []string{StyleSecondaryBold.Render("ACTIONS")}
	for _, a := range scan.Actions(r) {
		marker := " "
		label := StyleSecondary.Render(a.Label)
		if a.Primary {
			marker = StyleAccentBold.Render(IconPrimary)
			label = StylePrimaryBold.Render(a.Label)
		}
		line := marker + " " + label
		if a.Kind == scan.ActionOpen && a.Value != "" {
			line += "  " + StyleDim.Render(truncate(a.Value, max(inner-lipgloss.Width(line)-2, 10)))
		}
		lines = append(lines, line)
	}
	sections = append(sections, strings.Join(lines, "\n"))

	// Raw payload
	sections = append(sections, StyleSecondaryBold.Render("RAW")+"\n"+m.renderRaw(r, inner))

	return indentBlock(strings.Join(sections, "\n\n"), "  ")
}

// renderRaw renders the raw payload: highlighted when it is JSON, through
// glamour when a text payload looks like markdown, otherwise wrapped.
func (m model) renderRaw(r scan.Record, width int) string {
	if m.jsonHL != nil {
		if out, ok := m.jsonHL.highlight(r.RawData); ok {
			return out
		}
	}
	if r.Type == scan.TypeText && m.md != nil && looksLikeMarkdown(r.RawData) {
		return m.md.render(r.RawData, width)
	}
	return strings.Join(wrapText(r.RawData, width), "\n")
}

// -- Status bar ---------------------------------------------------------------

// renderStatusBar renders key hints in a rounded-border box.
// When m.watching is true, a "live" badge is prepended.
func (m model) renderStatusBar(pairs ...string) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(ColorTextKeyHint).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(ColorTextDim)

	sep := " " + StyleMuted.Render(IconDot) + " "

	var hints []string

	if m.watching {
		live := lipgloss.NewStyle().
			Background(ColorLiveBg).
			Foreground(ColorLiveFg).
			Bold(true).
			Padding(0, 1).
			Render("live")
		hints = append(hints, live)
	}

	for i := 0; i+1 < len(pairs); i += 2 {
		hints = append(hints, keyStyle.Render(pairs[i])+" "+descStyle.Render(pairs[i+1]))
	}

	barStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(max(m.width-2, 1)). // border chars take 2 columns
		Padding(0, 1)

	return barStyle.Render(strings.Join(hints, sep))
}
