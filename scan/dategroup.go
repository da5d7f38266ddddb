package scan

import (
	"strings"
	"time"
)

// Fixed group labels.
const (
	LabelToday     = "TODAY"
	LabelYesterday = "YESTERDAY"
)

// DateGroup is a display bucket of records sharing a date label.
type DateGroup struct {
	Label   string
	Records []Record
}

// GroupByDate buckets records into Today, Yesterday and one group per older
// calendar date. Returns only non-empty groups: Today, then Yesterday, then
// older dates in the order their labels first appear in the input (not
// sorted by date). Records keep their input order within each group; the
// caller pre-sorts newest first.
func GroupByDate(records []Record, now time.Time) []DateGroup {
	loc := now.Location()
	today := civilMidnight(now, loc)

	var todays, yesterdays []Record
	var older []DateGroup
	index := make(map[string]int)

	for _, r := range records {
		switch dayDiff(today, civilMidnight(r.Timestamp, loc)) {
		case 0:
			todays = append(todays, r)
		case 1:
			yesterdays = append(yesterdays, r)
		default:
			label := strings.ToUpper(r.Timestamp.In(loc).Format("January 2, 2006"))
			i, ok := index[label]
			if !ok {
				i = len(older)
				index[label] = i
				older = append(older, DateGroup{Label: label})
			}
			older[i].Records = append(older[i].Records, r)
		}
	}

	var groups []DateGroup
	if len(todays) > 0 {
		groups = append(groups, DateGroup{Label: LabelToday, Records: todays})
	}
	if len(yesterdays) > 0 {
		groups = append(groups, DateGroup{Label: LabelYesterday, Records: yesterdays})
	}
	return append(groups, older...)
}

// civilMidnight returns midnight UTC of t's calendar date in loc. Working in
// UTC keeps every day exactly 24h long, so DST transitions in loc cannot
// shift the day difference.
func civilMidnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const msPerDay = int64(24 * time.Hour / time.Millisecond)

// dayDiff is the number of whole days from b to a (positive when b is earlier).
func dayDiff(a, b time.Time) int64 {
	ms := a.Sub(b).Milliseconds()
	days := ms / msPerDay
	if ms%msPerDay != 0 && ms < 0 {
		days--
	}
	return days
}
