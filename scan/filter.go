package scan

import "strings"

// Filter returns the records matching typ and query, preserving order.
// An empty typ matches every type. The query is a case-insensitive
// substring match against title, subtitle and raw data; blank matches all.
func Filter(records []Record, typ Type, query string) []Record {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Record
	for _, r := range records {
		if typ != "" && r.Type != typ {
			continue
		}
		if q != "" && !matchesQuery(r, q) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesQuery(r Record, q string) bool {
	return strings.Contains(strings.ToLower(r.Title), q) ||
		strings.Contains(strings.ToLower(r.Subtitle), q) ||
		strings.Contains(strings.ToLower(r.RawData), q)
}

// Saved returns only the saved records, preserving order.
func Saved(records []Record) []Record {
	var out []Record
	for _, r := range records {
		if r.IsSaved {
			out = append(out, r)
		}
	}
	return out
}

// Recent returns at most the first n records.
func Recent(records []Record, n int) []Record {
	if n < 0 {
		n = 0
	}
	if len(records) <= n {
		return records
	}
	return records[:n]
}
