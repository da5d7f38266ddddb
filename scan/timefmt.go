package scan

import "time"

// FormatTimestamp renders t relative to now: the time of day when both fall
// on the same calendar day, "Yesterday" for the previous calendar day, and
// a short month/day otherwise. Calendar days are taken in now's location.
func FormatTimestamp(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.In(now.Location())
	if sameDay(t, now) {
		return t.Format("3:04 PM")
	}
	if sameDay(t, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}
	return t.Format("Jan 2")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
