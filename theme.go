package main

import "github.com/charmbracelet/lipgloss"

// -- Colors ---------------------------------------------------------------
// All colors use AdaptiveColor for dark/light terminal support.
// Light values: ANSI 0-15 for accents (palette-adaptive), 256-color for grays
// (predictable). ANSI 7/15 (white) are invisible on light backgrounds, so
// never use them for Light values.
// Dark values: ANSI 256-color codes tuned for dark backgrounds.
//
// | Name                | Light | Dark  | Light desc    | Dark desc      |
// |---------------------|-------|-------|---------------|----------------|
// | TextPrimary         |   "0" | "252" | black         | light gray     |
// | TextSecondary       |   "8" | "245" | ANSI dk gray  | gray           |
// | TextDim             | "242" | "243" | medium gray   | gray           |
// | TextMuted           | "245" | "240" | med-lt gray   | dark gray      |
// | Accent              |   "4" |  "75" | blue          | blue           |
// | Error               |   "1" | "196" | red           | red            |
// | Saved               |   "3" | "220" | gold          | yellow         |
// | SelectedBg          | "254" | "237" | subtle elev.  | subtle elev.   |
// | TypeURL             |   "4" |  "75" | blue          | blue           |
// | TypeWiFi            |   "6" |  "80" | cyan          | cyan           |
// | TypeContact         |   "5" | "177" | magenta       | purple         |
// | TypePayment         |   "2" | "114" | green         | green          |
// | TypeEmail           |   "3" | "208" | gold          | orange         |
// | TypePhone           |   "2" |  "76" | green         | bright green   |
// | TypeSMS             |   "5" | "211" | magenta       | pink           |
// | TypeGeo             |   "1" | "204" | red           | coral          |
// | TypeText            |   "8" | "245" | ANSI dk gray  | gray           |

var (
	// Text hierarchy
	ColorTextPrimary   = ac("0", "252")
	ColorTextSecondary = ac("8", "245")
	ColorTextDim       = ac("242", "243")
	ColorTextMuted     = ac("245", "240")

	// Accents
	ColorAccent = ac("4", "75")
	ColorError  = ac("1", "196")
	ColorSaved  = ac("3", "220")

	// Surfaces
	ColorBorder     = ac("250", "60")
	ColorSelectedBg = ac("254", "237")

	// Status bar
	ColorTextKeyHint = ac("4", "111")
	ColorLiveBg      = ac("2", "28")
	ColorLiveFg      = ac("15", "231")

	// Filter chips
	ColorChipActiveBg = ac("4", "25")
	ColorChipActiveFg = ac("15", "231")

	// Payload types
	ColorTypeURL     = ac("4", "75")
	ColorTypeWiFi    = ac("6", "80")
	ColorTypeContact = ac("5", "177")
	ColorTypePayment = ac("2", "114")
	ColorTypeEmail   = ac("3", "208")
	ColorTypePhone   = ac("2", "76")
	ColorTypeSMS     = ac("5", "211")
	ColorTypeGeo     = ac("1", "204")
	ColorTypeText    = ac("8", "245")
)

// -- Semantic text styles -----------------------------------------------------
// Reusable styles for the text hierarchy levels + common bold/accent combos.
// Safe to chain (.Width(), .Padding(), etc.) since lipgloss styles are
// immutable value types: each method returns a copy.

var (
	StylePrimaryBold   = lipgloss.NewStyle().Bold(true).Foreground(ColorTextPrimary)
	StyleSecondary     = lipgloss.NewStyle().Foreground(ColorTextSecondary)
	StyleSecondaryBold = lipgloss.NewStyle().Bold(true).Foreground(ColorTextSecondary)
	StyleDim           = lipgloss.NewStyle().Foreground(ColorTextDim)
	StyleMuted         = lipgloss.NewStyle().Foreground(ColorTextMuted)
	StyleAccentBold    = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	StyleErrorBold     = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
)

// ac is a shorthand constructor for lipgloss.AdaptiveColor.
func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}
