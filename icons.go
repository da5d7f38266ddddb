package main

import "github.com/kylesnowschwartz/qrlog/scan"

// Icons used throughout the TUI.
// Using standard Unicode symbols for maximum terminal compatibility.
const (
	IconURL      = "↗" // Web link
	IconWiFi     = "≋" // Network credentials
	IconContact  = "☺" // vCard
	IconPayment  = "₹" // UPI payment
	IconEmail    = "✉" // mailto:
	IconPhone    = "☏" // tel:
	IconSMS      = "✎" // sms:/smsto:
	IconGeo      = "⌖" // geo:
	IconText     = "¶" // Plain text
	IconSaved    = "★" // Saved record
	IconUnsaved  = "☆" // Unsaved record (detail header)
	IconDot      = "·" // Separator dot
	IconSelected = "│" // Selected row sidebar
	IconPrimary  = "▸" // Primary action marker
)

// typeIcon returns the list icon for a payload type.
func typeIcon(t scan.Type) string {
	switch t {
	case scan.TypeURL:
		return IconURL
	case scan.TypeWiFi:
		return IconWiFi
	case scan.TypeContact:
		return IconContact
	case scan.TypePayment:
		return IconPayment
	case scan.TypeEmail:
		return IconEmail
	case scan.TypePhone:
		return IconPhone
	case scan.TypeSMS:
		return IconSMS
	case scan.TypeGeo:
		return IconGeo
	default:
		return IconText
	}
}
