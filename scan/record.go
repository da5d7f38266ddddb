package scan

import "time"

// Record is a persisted scan: a classified payload plus identity, the raw
// decoded text, when it was scanned, and whether the user saved it.
// JSON names match the history files written by earlier app versions.
type Record struct {
	ID        string            `json:"id"`
	Type      Type              `json:"type"`
	RawData   string            `json:"rawData"`
	Fields    map[string]string `json:"parsedData"`
	Timestamp time.Time         `json:"timestamp"`
	IsSaved   bool              `json:"isSaved"`
	Title     string            `json:"title"`
	Subtitle  string            `json:"subtitle"`
}

// NewRecord classifies raw and stamps it with the caller's id and time.
// New records are never saved.
func NewRecord(id, raw string, at time.Time) Record {
	p := Classify(raw)
	return Record{
		ID:        id,
		Type:      p.Type,
		RawData:   raw,
		Fields:    p.Fields,
		Timestamp: at,
		Title:     p.Title,
		Subtitle:  p.Subtitle,
	}
}

// Payload projects the record back onto its classification.
func (r Record) Payload() Payload {
	return Payload{Type: r.Type, Fields: r.Fields, Title: r.Title, Subtitle: r.Subtitle}
}

// Details returns the typed view of the record's fields.
func (r Record) Details() Details {
	return detailsFor(r.Type, r.Fields)
}
