package scan

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// wifiKeys maps MECARD-style Wi-Fi keys to field names.
var wifiKeys = map[string]string{
	"S": "ssid",
	"T": "security",
	"P": "password",
	"H": "hidden",
}

// parseWiFi reads WIFI:S:<ssid>;T:<auth>;P:<password>;H:<hidden>;;
// Segments are split on unescaped ';'. The first occurrence of a key wins;
// keys that never appear are left out of the map.
func parseWiFi(s string) map[string]string {
	out := make(map[string]string)
	body := trimSchemeFold(s, "WIFI:")
	for _, seg := range splitEscaped(body, ';') {
		k, v, ok := strings.Cut(seg, ":")
		if !ok {
			continue
		}
		name, known := wifiKeys[k]
		if !known {
			continue
		}
		if _, seen := out[name]; seen {
			continue
		}
		out[name] = unescapeWiFi(v)
	}
	return out
}

// splitEscaped splits s on sep, skipping separators preceded by a backslash.
// Escape sequences are left in place for unescapeWiFi.
func splitEscaped(s string, sep byte) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func unescapeWiFi(v string) string {
	if !strings.Contains(v, `\`) {
		return v
	}
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		if v[i] == '\\' && i+1 < len(v) {
			i++
		}
		b.WriteByte(v[i])
	}
	return b.String()
}

var vcardLineSplit = regexp.MustCompile(`\r?\n`)

// parseVCard extracts the handful of vCard properties a scan result shows.
// Property parameters (TEL;TYPE=CELL) are ignored; the last occurrence of a
// property wins.
func parseVCard(s string) map[string]string {
	out := make(map[string]string)
	for _, line := range vcardLineSplit.Split(s, -1) {
		key, value, _ := strings.Cut(line, ":")
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		base, _, _ := strings.Cut(key, ";")
		switch strings.ToUpper(base) {
		case "FN":
			out["fullName"] = value
		case "N":
			// vCard orders components family;given;additional;prefix;suffix.
			parts := strings.Split(value, ";")
			var given, family string
			family = parts[0]
			if len(parts) > 1 {
				given = parts[1]
			}
			var name []string
			for _, p := range []string{given, family} {
				if p != "" {
					name = append(name, p)
				}
			}
			out["name"] = strings.Join(name, " ")
		case "TEL":
			out["phone"] = value
		case "EMAIL":
			out["email"] = value
		case "ORG":
			out["org"] = value
		case "TITLE":
			out["title"] = value
		case "URL":
			out["url"] = value
		case "ADR":
			addr := strings.ReplaceAll(value, ";", ", ")
			if strings.HasPrefix(addr, ",") {
				addr = strings.TrimLeft(addr[1:], " \t")
			}
			out["address"] = addr
		}
	}
	return out
}

// parseUPI copies every query parameter of a upi://pay URI, form-decoded.
// When the URI does not parse, falls back to splitting the text after the
// first '?'.
func parseUPI(s string) map[string]string {
	out := make(map[string]string)
	u, err := url.Parse(s)
	if err != nil {
		_, query, ok := strings.Cut(s, "?")
		if ok {
			parseQueryPairs(query, out)
		}
		return out
	}
	parseFormQuery(u.RawQuery, out)
	return out
}

// parseFormQuery adds every name=value pair of an
// application/x-www-form-urlencoded query to out, the last value of a
// repeated name winning. Unlike url.ParseQuery it never drops a pair: ';'
// is an ordinary character and malformed escapes stay as literal text.
func parseFormQuery(query string, out map[string]string) {
	for _, part := range strings.Split(query, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		out[decodeFormComponent(k)] = decodeFormComponent(v)
	}
}

// decodeFormComponent turns '+' into a space and decodes each valid %XX
// escape. A '%' not followed by two hex digits is kept as is.
func decodeFormComponent(s string) string {
	if !strings.ContainsAny(s, "+%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// escapeStrayPercents rewrites each '%' that does not start a valid escape
// as "%25", so net/url accepts text a browser would.
func escapeStrayPercents(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && !(i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	}
	return c - '0'
}

// parseMailto splits mailto:<address>?<query> into the address and the
// decoded query pairs (typically subject and body).
func parseMailto(s string) map[string]string {
	rest := trimSchemeFold(s, "mailto:")
	segs := strings.Split(rest, "?")
	out := map[string]string{"email": segs[0]}
	if len(segs) > 1 {
		parseQueryPairs(segs[1], out)
	}
	return out
}

// parseQueryPairs adds each k=v pair with a non-empty key and value to out.
// Values are percent-decoded; undecodable values are kept verbatim.
func parseQueryPairs(query string, out map[string]string) {
	for _, part := range strings.Split(query, "&") {
		k, v, _ := strings.Cut(part, "=")
		if k == "" || v == "" {
			continue
		}
		if dec, err := url.PathUnescape(v); err == nil {
			v = dec
		}
		out[k] = v
	}
}

var floatPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|\d+\.?\d*(?:[eE][+-]?\d+)?|\.\d+(?:[eE][+-]?\d+)?)`)

// parseFloatPrefix reads the longest leading decimal number of s, the way
// coordinate strings like "37.7749;u=35" are read by most QR consumers.
// Returns NaN when s has no numeric prefix.
func parseFloatPrefix(s string) float64 {
	m := floatPrefix.FindString(strings.TrimLeft(s, " \t\n\r"))
	if m == "" {
		return math.NaN()
	}
	switch m {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil && !math.IsInf(f, 0) {
		return math.NaN()
	}
	return f
}

// fixed4 formats f with four decimals, spelling infinities out in full.
// Negative zero prints as zero.
func fixed4(f float64) string {
	switch {
	case f == 0:
		f = 0
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', 4, 64)
}
