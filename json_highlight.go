package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/colorprofile"
)

// jsonHL syntax-highlights payloads that are JSON documents. Some QR
// generators embed JSON (app deep-link configs, ticket data); those show
// up as Text records and read far better pretty-printed.
type jsonHL struct {
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
}

// newJSONHL picks the chroma style for the background and the formatter
// for the terminal's color profile.
func newJSONHL(hasDarkBg bool) *jsonHL {
	styleName := "github"
	if hasDarkBg {
		styleName = "dracula"
	}
	profile := colorprofile.Detect(os.Stdout, os.Environ())

	return &jsonHL{
		lexer:     chroma.Coalesce(lexers.Get("json")),
		formatter: formatters.Get(chromaFormatter(profile)),
		style:     styles.Get(styleName),
	}
}

// isJSONDocument reports whether s is a JSON object or array. Bare scalars
// ("42", "true") are valid JSON but not worth highlighting.
func isJSONDocument(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return false
	}
	return json.Valid([]byte(s))
}

// highlight pretty-prints and colors s. Returns ("", false) when s is not
// a JSON document so the caller can fall back to plain rendering.
func (h *jsonHL) highlight(s string) (string, bool) {
	if !isJSONDocument(s) {
		return "", false
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(s)), "", "  "); err != nil {
		return "", false
	}

	iterator, err := h.lexer.Tokenise(nil, buf.String())
	if err != nil {
		return "", false
	}

	var out bytes.Buffer
	if err := h.formatter.Format(&out, h.style, iterator); err != nil {
		return "", false
	}
	return strings.TrimRight(out.String(), "\n"), true
}

// chromaFormatter maps colorprofile profiles to chroma terminal formatter names.
func chromaFormatter(profile colorprofile.Profile) string {
	switch profile {
	case colorprofile.TrueColor:
		return "terminal16m"
	case colorprofile.ANSI256:
		return "terminal256"
	case colorprofile.ANSI:
		return "terminal16"
	case colorprofile.Ascii, colorprofile.NoTTY:
		return "noop"
	default:
		return "terminal"
	}
}
