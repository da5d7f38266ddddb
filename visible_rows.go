package main

import (
	"time"

	"github.com/kylesnowschwartz/qrlog/scan"
)

// rowKind discriminates between record rows and date group headers.
type rowKind int

const (
	rowRecord rowKind = iota
	rowHeader
)

// visibleRow is one entry in the flattened history list.
type visibleRow struct {
	kind   rowKind
	label  string       // set for headers
	record *scan.Record // nil for headers
}

// listFilter narrows the history before grouping.
type listFilter struct {
	typ       scan.Type // "" = all types
	query     string
	savedOnly bool
}

func (f listFilter) active() bool {
	return f.typ != "" || f.query != "" || f.savedOnly
}

// apply returns the records passing f, preserving order.
func (f listFilter) apply(records []scan.Record) []scan.Record {
	out := scan.Filter(records, f.typ, f.query)
	if f.savedOnly {
		out = scan.Saved(out)
	}
	return out
}

// buildVisibleRows flattens records into date headers followed by their
// rows. Group order and labels come from scan.GroupByDate.
func buildVisibleRows(records []scan.Record, now time.Time) []visibleRow {
	groups := scan.GroupByDate(records, now)

	var rows []visibleRow
	for _, g := range groups {
		rows = append(rows, visibleRow{kind: rowHeader, label: g.Label})
		for i := range g.Records {
			rows = append(rows, visibleRow{kind: rowRecord, record: &g.Records[i]})
		}
	}
	return rows
}

// nextTypeFilter cycles All -> URL -> Wi-Fi -> ... -> Location -> All.
func nextTypeFilter(cur scan.Type) scan.Type {
	types := scan.AllTypes()
	if cur == "" {
		return types[0]
	}
	for i, t := range types {
		if t == cur && i+1 < len(types) {
			return types[i+1]
		}
	}
	return ""
}
