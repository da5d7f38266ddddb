package scan

import (
	"net/url"
	"strings"
)

// DetailRow is one labeled value on a record's detail view.
type DetailRow struct {
	Label string
	Value string
}

// DetailRows lists the fields worth showing for a record, in display order.
// Empty values are skipped.
func DetailRows(r Record) []DetailRow {
	var rows []DetailRow
	add := func(label, value string) {
		if value != "" {
			rows = append(rows, DetailRow{Label: label, Value: value})
		}
	}

	switch d := r.Details().(type) {
	case URLDetails:
		add("Host", d.Host)
		add("URL", firstNonEmpty(d.URL, r.RawData))
	case WiFiDetails:
		add("Network", d.SSID)
		add("Security", d.Security)
		add("Password", d.Password)
	case ContactDetails:
		add("Name", d.DisplayName())
		add("Phone", d.Phone)
		add("Email", d.Email)
		add("Company", d.Org)
		add("Title", d.Title)
		add("Address", d.Address)
	case PaymentDetails:
		add("UPI ID", d.PayeeAddress)
		add("Name", d.PayeeName)
		if d.Amount != "" {
			add("Amount", "₹"+d.Amount)
		}
		add("Note", d.Note)
	case EmailDetails:
		add("To", d.Address)
		add("Subject", d.Subject)
		add("Body", d.Body)
	case PhoneDetails:
		add("Number", d.Number)
	case SMSDetails:
		add("To", d.Number)
		add("Message", d.Message)
	case GeoDetails:
		add("Latitude", d.Lat)
		add("Longitude", d.Lon)
	case TextDetails:
		add("Content", firstNonEmpty(d.Text, r.RawData))
	}
	return rows
}

// ActionKind says what a platform handler does with an Action's value.
type ActionKind string

const (
	ActionOpen        ActionKind = "open"
	ActionCopy        ActionKind = "copy"
	ActionShare       ActionKind = "share"
	ActionJoinWiFi    ActionKind = "wifi"
	ActionSaveContact ActionKind = "contact"
)

// Action is an affordance offered for a record. Value is what the handler
// consumes: a URI to open, text to copy or share.
type Action struct {
	Label   string
	Kind    ActionKind
	Value   string
	Primary bool
}

// Actions returns the affordances for a record; the first is primary.
func Actions(r Record) []Action {
	open := OpenTarget(r)
	copyRaw := Action{Label: "Copy", Kind: ActionCopy, Value: r.RawData}
	share := Action{Label: "Share", Kind: ActionShare, Value: r.RawData}

	var actions []Action
	switch d := r.Details().(type) {
	case URLDetails:
		actions = []Action{
			{Label: "Open in Browser", Kind: ActionOpen, Value: open},
			{Label: "Copy URL", Kind: ActionCopy, Value: r.RawData},
			share,
		}
	case WiFiDetails:
		actions = []Action{
			{Label: "Connect to Wi-Fi", Kind: ActionJoinWiFi, Value: r.RawData},
			{Label: "Copy Password", Kind: ActionCopy, Value: d.Password},
		}
	case ContactDetails:
		actions = []Action{
			{Label: "Save to Contacts", Kind: ActionSaveContact, Value: r.RawData},
			copyRaw,
		}
	case PaymentDetails:
		actions = []Action{
			{Label: "Copy UPI ID", Kind: ActionCopy, Value: d.PayeeAddress},
			share,
		}
	case EmailDetails:
		actions = []Action{{Label: "Send Email", Kind: ActionOpen, Value: open}, copyRaw}
	case PhoneDetails:
		actions = []Action{{Label: "Call", Kind: ActionOpen, Value: open}, copyRaw}
	case SMSDetails:
		actions = []Action{{Label: "Send SMS", Kind: ActionOpen, Value: open}, copyRaw}
	case GeoDetails:
		actions = []Action{
			{Label: "Open in Maps", Kind: ActionOpen, Value: open},
			{Label: "Copy Coordinates", Kind: ActionCopy, Value: r.RawData},
		}
	default:
		actions = []Action{copyRaw, share}
	}
	actions[0].Primary = true
	return actions
}

// OpenTarget returns the URI a platform opener should receive for the
// record, or "" when the type has nothing to open.
func OpenTarget(r Record) string {
	switch d := r.Details().(type) {
	case URLDetails:
		return firstNonEmpty(d.URL, r.RawData)
	case EmailDetails:
		return r.RawData
	case PhoneDetails:
		return "tel:" + d.Number
	case SMSDetails:
		target := "sms:" + d.Number
		if d.Message != "" {
			target += "?body=" + escapeComponent(d.Message)
		}
		return target
	case GeoDetails:
		return "https://maps.google.com/?q=" + d.Lat + "," + d.Lon
	}
	return ""
}

// escapeComponent percent-encodes s for use inside a query value, encoding
// spaces as %20 rather than '+'.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
