package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/splitflap/internal/flap"
	"github.com/san-kum/splitflap/internal/viz"
)

// BoardToSVG draws a row of flaps. Flipping cells show the new symbol on the
// upper half and the previous one on the lower half, like the terminal board.
func BoardToSVG(cells []flap.Cell, theme viz.Theme, scale float64) string {
	if len(cells) == 0 {
		return ""
	}
	if scale <= 0 {
		scale = 1
	}

	cellW := 40 * scale
	cellH := 60 * scale
	gap := 6 * scale
	width := float64(len(cells))*(cellW+gap) + gap
	height := cellH + 2*gap

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g font-family="monospace" font-weight="bold" text-anchor="middle">
`, width, height, width, height))

	fontSize := cellH * 0.38
	for i, c := range cells {
		x := gap + float64(i)*(cellW+gap)
		y := gap
		mid := y + cellH/2

		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s"/>
`, x, y, cellW, cellH, 4*scale, theme.Flap, theme.Border))
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>
`, x, mid, x+cellW, mid, theme.Border))

		top, bottom := theme.Text, theme.Text
		prev := c.Curr
		if c.Flipping() {
			top, bottom = theme.Accent, theme.Muted
			prev = c.Prev
		}
		cx := x + cellW/2
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%.1f" fill="%s">%s</text>
`, cx, mid-cellH*0.08, fontSize, top, glyph(c.Curr)))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%.1f" fill="%s">%s</text>
`, cx, mid+cellH*0.38, fontSize, bottom, glyph(prev)))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func glyph(r rune) string {
	if r == ' ' {
		return "&#160;"
	}
	return html.EscapeString(string(r))
}

// SeriesToSVG draws one value per tick as a polyline.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
