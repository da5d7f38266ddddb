package main

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kylesnowschwartz/qrlog/scan"
)

// shortIDLen is how much of a record id the list and CLI output show.
const shortIDLen = 8

// shortID turns "3f1c2a9e-..." into "3f1c2a9e".
func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// typeColor returns the accent color for a payload type.
func typeColor(t scan.Type) lipgloss.AdaptiveColor {
	switch t {
	case scan.TypeURL:
		return ColorTypeURL
	case scan.TypeWiFi:
		return ColorTypeWiFi
	case scan.TypeContact:
		return ColorTypeContact
	case scan.TypePayment:
		return ColorTypePayment
	case scan.TypeEmail:
		return ColorTypeEmail
	case scan.TypePhone:
		return ColorTypePhone
	case scan.TypeSMS:
		return ColorTypeSMS
	case scan.TypeGeo:
		return ColorTypeGeo
	default:
		return ColorTypeText
	}
}

// formatTime renders a full timestamp for the detail header.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 2, 2006 3:04 PM")
}

// formatCount renders "1 record" / "3 records".
func formatCount(n int) string {
	if n == 1 {
		return "1 record"
	}
	return fmt.Sprintf("%d records", n)
}

// sortedFieldKeys returns the field names of a payload in a stable order.
func sortedFieldKeys(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// formatPayload renders a classification as aligned plain text.
func formatPayload(p scan.Payload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Type:     %s\n", p.Type.Label())
	fmt.Fprintf(&b, "Title:    %s\n", p.Title)
	fmt.Fprintf(&b, "Subtitle: %s\n", p.Subtitle)

	keys := sortedFieldKeys(p.Fields)
	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}
	for _, k := range keys {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, k, p.Fields[k])
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatRecordLine renders one record for line-oriented output:
// "3f1c2a9e  URL       example.com  https://example.com/".
func formatRecordLine(r scan.Record) string {
	saved := " "
	if r.IsSaved {
		saved = IconSaved
	}
	return fmt.Sprintf("%s %s  %-9s %s  %s",
		saved, shortID(r.ID), r.Type.Label(), oneLine(r.Title), oneLine(r.Subtitle))
}

// oneLine collapses newlines so multi-line payloads stay on a single row.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
