package docgen

import (
	"strings"
	"unicode"
)

// Color is an RGB triple, 0-255 per channel.
type Color struct{ R, G, B int }

var (
	colorBlack   = Color{0, 0, 0}
	colorOrange  = Color{255, 165, 0}
	colorBlue    = Color{0, 87, 183}
	colorRed     = Color{255, 0, 0}
	colorNetFill = Color{255, 235, 204}
)

// Align is the horizontal anchor of a text run relative to its x.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Surface is the page canvas the layout engine draws on. Units are
// millimetres from the top-left corner; text y is the baseline.
type Surface interface {
	SetFontSize(pt float64)
	FontSize() float64
	SetTextColor(c Color)
	SetDrawColor(c Color)
	SetFillColor(c Color)
	SetLineWidth(w float64)

	Text(x, y float64, s string, align Align)
	TextWidth(s string) float64
	Rect(x, y, w, h float64)
	FillRect(x, y, w, h float64)
	Line(x1, y1, x2, y2 float64)
	Image(data []byte, x, y, w, h float64) error

	AddPage()
	PageSize() (w, h float64)
}

const ptToMM = 0.3528

// lineHeight is the baseline-to-baseline distance for a font size.
func lineHeight(pt float64) float64 {
	return pt * ptToMM * 1.15
}

// wrapText breaks s into lines no wider than width at the surface's current
// font size. Explicit newlines are kept. Words are split on spaces; a word
// wider than the line (common in Thai, which has no spaces) is broken at rune
// boundaries without separating combining marks from their base.
func wrapText(s Surface, text string, width float64) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(s, para, width)...)
	}
	return lines
}

func wrapParagraph(s Surface, para string, width float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := ""
	for _, word := range words {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if s.TextWidth(candidate) <= width {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
			line = ""
		}
		if s.TextWidth(word) <= width {
			line = word
			continue
		}
		pieces := breakWord(s, word, width)
		lines = append(lines, pieces[:len(pieces)-1]...)
		line = pieces[len(pieces)-1]
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

func breakWord(s Surface, word string, width float64) []string {
	var pieces []string
	var cur []rune
	for _, cluster := range clusters(word) {
		next := string(cur) + cluster
		if len(cur) > 0 && s.TextWidth(next) > width {
			pieces = append(pieces, string(cur))
			cur = cur[:0]
		}
		cur = append(cur, []rune(cluster)...)
	}
	return append(pieces, string(cur))
}

// clusters groups each base rune with the combining marks that follow it.
// Thai vowel and tone marks are category Mn.
func clusters(s string) []string {
	var out []string
	for _, r := range s {
		if len(out) > 0 && unicode.Is(unicode.Mn, r) {
			out[len(out)-1] += string(r)
			continue
		}
		out = append(out, string(r))
	}
	return out
}
