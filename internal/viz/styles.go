package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/splitflap/internal/flap"
)

// BlankGlyph stands in for a space so empty cells keep their width.
const BlankGlyph = "\u2007"

// Glyph returns the printable form of a cell symbol.
func Glyph(r rune) string {
	if r == ' ' {
		return BlankGlyph
	}
	return string(r)
}

func cellStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Background(t.Flap).
		Padding(0, 1)
}

// RenderCell draws one flap. While a cell is flipping the upper half, above the
// divider, already shows the new symbol and the lower half still shows the
// previous one, dimmed.
func RenderCell(c flap.Cell, t Theme) string {
	text := lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	top, bottom := text.Render(Glyph(c.Curr)), text.Render(Glyph(c.Curr))
	if c.Flipping() {
		top = lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render(Glyph(c.Curr))
		bottom = lipgloss.NewStyle().Foreground(t.Muted).Render(Glyph(c.Prev))
	}
	divider := lipgloss.NewStyle().Foreground(t.Border).Render("─")
	return cellStyle(t).Render(lipgloss.JoinVertical(lipgloss.Center, top, divider, bottom))
}

// RenderBoard lays the cells out left to right.
func RenderBoard(cells []flap.Cell, t Theme) string {
	if len(cells) == 0 {
		return ""
	}
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = RenderCell(c, t)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// PlainBoard renders the current symbols on one line, for logs and
// non-interactive output.
func PlainBoard(cells []flap.Cell) string {
	var b strings.Builder
	b.WriteString("[")
	for _, c := range cells {
		b.WriteString(Glyph(c.Curr))
	}
	b.WriteString("]")
	return b.String()
}

// ProgressBar renders the share of settled cells
func ProgressBar(percent float64, width int, t Theme) string {
	filled := int(percent * float64(width))
	filled = max(0, min(filled, width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if percent >= 1 {
		return lipgloss.NewStyle().Foreground(t.Text).Render(bar)
	}
	return lipgloss.NewStyle().Foreground(t.Accent).Render(bar)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	inputStyle = lipgloss.NewStyle().MarginTop(1)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)
