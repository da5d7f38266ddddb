package scan

import (
	"maps"
	"strings"
)

// Type is the semantic kind of a scanned payload.
type Type string

const (
	TypeURL     Type = "URL"
	TypeWiFi    Type = "WiFi"
	TypeContact Type = "Contact"
	TypePayment Type = "Payment"
	TypeText    Type = "Text"
	TypeEmail   Type = "Email"
	TypePhone   Type = "Phone"
	TypeSMS     Type = "SMS"
	TypeGeo     Type = "Geo"
)

// allTypes is the filter-chip order used by list views.
var allTypes = []Type{
	TypeURL, TypeWiFi, TypeContact, TypePayment, TypeText,
	TypeEmail, TypePhone, TypeSMS, TypeGeo,
}

// AllTypes returns every Type in display order. The slice is a copy.
func AllTypes() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// Label returns the human-facing name of the type.
func (t Type) Label() string {
	switch t {
	case TypeWiFi:
		return "Wi-Fi"
	case TypeGeo:
		return "Location"
	default:
		return string(t)
	}
}

// Valid reports whether t is one of the enumerated types.
func (t Type) Valid() bool {
	for _, v := range allTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ParseType matches s against the enumerated types, ignoring case.
// Display labels ("Wi-Fi", "Location") are accepted too.
func ParseType(s string) (Type, bool) {
	s = strings.TrimSpace(s)
	for _, t := range allTypes {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, t.Label()) {
			return t, true
		}
	}
	return "", false
}

// Payload is the classifier's output: a type tag, a flat field map and the
// derived display strings. Treat it as immutable.
type Payload struct {
	Type     Type
	Fields   map[string]string
	Title    string
	Subtitle string
}

// Field returns the named field, or "" when absent.
func (p Payload) Field(key string) string {
	return p.Fields[key]
}

// Equal reports whether two payloads are structurally identical.
func (p Payload) Equal(o Payload) bool {
	return p.Type == o.Type &&
		p.Title == o.Title &&
		p.Subtitle == o.Subtitle &&
		maps.Equal(p.Fields, o.Fields)
}
