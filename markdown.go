package main

import (
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// mdRenderer renders Text payloads that carry markdown. It caches one
// glamour renderer and rebuilds it when the wrap width changes.
type mdRenderer struct {
	hasDarkBg bool
	renderer  *glamour.TermRenderer
	width     int
}

func newMDRenderer(hasDarkBg bool) *mdRenderer {
	return &mdRenderer{hasDarkBg: hasDarkBg}
}

// detectDarkBackground asks the terminal once at startup.
func detectDarkBackground() bool {
	return termenv.HasDarkBackground()
}

// styleConfig picks the glamour style with Document.Margin zeroed so the
// detail view controls its own indentation.
func (r *mdRenderer) styleConfig() ansi.StyleConfig {
	var style ansi.StyleConfig
	switch {
	case !term.IsTerminal(int(os.Stdout.Fd())):
		style = styles.NoTTYStyleConfig
	case r.hasDarkBg:
		style = styles.DarkStyleConfig
	default:
		style = styles.LightStyleConfig
	}
	style.Document.Margin = uintPtr(0)
	return style
}

func uintPtr(v uint) *uint { return &v }

// markdownHint matches the constructs that make rendering worthwhile:
// headings, list items, emphasis, links and fenced code.
var markdownHint = regexp.MustCompile("(?m)^#{1,6} |^[-*+] |^\\d+\\. |\\*\\*[^*]+\\*\\*|\\[[^\\]]+\\]\\([^)]+\\)|^```")

// looksLikeMarkdown reports whether s is worth passing through glamour.
func looksLikeMarkdown(s string) bool {
	return markdownHint.MatchString(s)
}

// render returns s rendered for the terminal at width, or s unchanged when
// rendering fails.
func (r *mdRenderer) render(s string, width int) string {
	if width <= 0 {
		return s
	}
	if r.renderer == nil || r.width != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStyles(r.styleConfig()),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return s
		}
		r.renderer = renderer
		r.width = width
	}
	out, err := r.renderer.Render(s)
	if err != nil {
		return s
	}
	return strings.Trim(out, "\n")
}
