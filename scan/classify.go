package scan

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"
)

// Display limits for derived strings.
const (
	urlSubtitleLimit  = 60
	textTitleLimit    = 40
	textSubtitleLimit = 80
)

// rule pairs a prefix predicate with the parser that builds the payload.
// Rules are evaluated in order; the first match wins.
type rule struct {
	typ   Type
	match func(s string) bool
	parse func(s string) Payload
}

// rules is read-only after init, so Classify is safe for concurrent use.
var rules = []rule{
	{TypeURL, hasAnyPrefixFold("http://", "https://"), classifyURL},
	{TypeWiFi, hasAnyPrefixFold("WIFI:"), classifyWiFi},
	{TypeContact, hasAnyPrefixFold("BEGIN:VCARD"), classifyContact},
	{TypePayment, hasAnyPrefixFold("upi://pay"), classifyPayment},
	{TypeEmail, hasAnyPrefixFold("mailto:"), classifyEmail},
	{TypePhone, hasAnyPrefixFold("tel:"), classifyPhone},
	{TypeSMS, hasAnyPrefixFold("smsto:", "sms:"), classifySMS},
	{TypeGeo, hasAnyPrefixFold("geo:"), classifyGeo},
}

// Classify determines the semantic type of a decoded payload and extracts
// its fields. It never fails: anything unrecognized is Text.
func Classify(raw string) Payload {
	s := strings.TrimSpace(raw)
	for _, r := range rules {
		if r.match(s) {
			return r.parse(s)
		}
	}
	return classifyText(s)
}

// hasPrefixFold reports whether s begins with prefix, ignoring ASCII case.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func hasAnyPrefixFold(prefixes ...string) func(string) bool {
	return func(s string) bool {
		for _, p := range prefixes {
			if hasPrefixFold(s, p) {
				return true
			}
		}
		return false
	}
}

// trimSchemeFold removes the first matching scheme prefix, ignoring case.
func trimSchemeFold(s string, schemes ...string) string {
	for _, p := range schemes {
		if hasPrefixFold(s, p) {
			return s[len(p):]
		}
	}
	return s
}

// parseWebURL parses an http(s) URL the way a browser would accept it: a
// stray '%' is taken literally and the port must fit in 16 bits.
func parseWebURL(s string) (*url.URL, bool) {
	u, err := url.Parse(escapeStrayPercents(s))
	if err != nil || u.Hostname() == "" {
		return nil, false
	}
	if port := u.Port(); port != "" {
		if n, err := strconv.Atoi(port); err != nil || n > 65535 {
			return nil, false
		}
	}
	return u, true
}

func classifyURL(s string) Payload {
	u, ok := parseWebURL(s)
	if !ok {
		return Payload{
			Type:     TypeURL,
			Fields:   map[string]string{"url": s},
			Title:    prefix(s, textTitleLimit),
			Subtitle: s,
		}
	}
	host := strings.ToLower(u.Hostname())
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return Payload{
		Type:     TypeURL,
		Fields:   map[string]string{"url": s, "host": host, "path": path},
		Title:    strings.TrimPrefix(host, "www."),
		Subtitle: Truncate(s, urlSubtitleLimit),
	}
}

func classifyWiFi(s string) Payload {
	f := parseWiFi(s)
	title := f["ssid"]
	if title == "" {
		title = "Unknown Network"
	}
	subtitle := "Wi-Fi Network"
	if sec := f["security"]; sec != "" {
		if f["password"] != "" {
			subtitle = sec + " · Password protected"
		} else {
			subtitle = sec + " · Open"
		}
	}
	return Payload{Type: TypeWiFi, Fields: f, Title: title, Subtitle: subtitle}
}

func classifyContact(s string) Payload {
	f := parseVCard(s)
	title := firstNonEmpty(f["fullName"], f["name"])
	if title == "" {
		title = "Unknown Contact"
	}
	var parts []string
	for _, k := range []string{"phone", "email", "org"} {
		if v := f[k]; v != "" && len(parts) < 2 {
			parts = append(parts, v)
		}
	}
	subtitle := strings.Join(parts, " · ")
	if subtitle == "" {
		subtitle = "Contact"
	}
	return Payload{Type: TypeContact, Fields: f, Title: title, Subtitle: subtitle}
}

func classifyPayment(s string) Payload {
	f := parseUPI(s)
	title := f["pa"]
	if title == "" {
		title = "UPI Payment"
	}
	subtitle := "UPI Payment"
	if pn := f["pn"]; pn != "" {
		subtitle = pn
		if am := f["am"]; am != "" {
			subtitle += " · ₹" + am
		}
	}
	return Payload{Type: TypePayment, Fields: f, Title: title, Subtitle: subtitle}
}

func classifyEmail(s string) Payload {
	f := parseMailto(s)
	addr := f["email"]
	title := addr
	if title == "" {
		title = "Email"
	}
	subtitle := addr
	if subj := f["subject"]; subj != "" {
		subtitle = "Subject: " + subj
	}
	return Payload{Type: TypeEmail, Fields: f, Title: title, Subtitle: subtitle}
}

func classifyPhone(s string) Payload {
	number := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, trimSchemeFold(s, "tel:"))
	return Payload{
		Type:     TypePhone,
		Fields:   map[string]string{"number": number},
		Title:    number,
		Subtitle: "Phone Number",
	}
}

func classifySMS(s string) Payload {
	rest := trimSchemeFold(s, "smsto:", "sms:")
	number, message, _ := strings.Cut(rest, ":")
	title := number
	if title == "" {
		title = "SMS"
	}
	subtitle := message
	if subtitle == "" {
		subtitle = "SMS Message"
	}
	return Payload{
		Type:     TypeSMS,
		Fields:   map[string]string{"number": number, "message": message},
		Title:    title,
		Subtitle: subtitle,
	}
}

func classifyGeo(s string) Payload {
	coords := strings.Split(trimSchemeFold(s, "geo:"), ",")
	lat := coords[0]
	var lon string
	if len(coords) > 1 {
		lon, _, _ = strings.Cut(coords[1], "?")
	}
	return Payload{
		Type:     TypeGeo,
		Fields:   map[string]string{"lat": lat, "lon": lon, "raw": s},
		Title:    fixed4(parseFloatPrefix(lat)) + ", " + fixed4(parseFloatPrefix(lon)),
		Subtitle: "Geographic Location",
	}
}

func classifyText(s string) Payload {
	return Payload{
		Type:     TypeText,
		Fields:   map[string]string{"text": s},
		Title:    Truncate(s, textTitleLimit),
		Subtitle: Truncate(s, textSubtitleLimit),
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
