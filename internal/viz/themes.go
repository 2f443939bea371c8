package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the board
type Theme struct {
	Name   string
	Flap   lipgloss.Color
	Border lipgloss.Color
	Text   lipgloss.Color
	Accent lipgloss.Color
	Muted  lipgloss.Color
}

// Available themes
var (
	ThemeClassic = Theme{
		Name:   "classic",
		Flap:   lipgloss.Color("#111111"),
		Border: lipgloss.Color("#dddddd"), // Solari grey
		Text:   lipgloss.Color("#dddddd"),
		Accent: lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#555555"),
	}

	ThemeAmber = Theme{
		Name:   "amber",
		Flap:   lipgloss.Color("#1a1000"),
		Border: lipgloss.Color("#7a4f00"),
		Text:   lipgloss.Color("#ffb000"), // Amber phosphor
		Accent: lipgloss.Color("#ffd866"),
		Muted:  lipgloss.Color("#6b4a00"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Flap:   lipgloss.Color("#001100"),
		Border: lipgloss.Color("#005500"),
		Text:   lipgloss.Color("#00ff00"), // Green phosphor
		Accent: lipgloss.Color("#88ff88"),
		Muted:  lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Flap:   lipgloss.Color("#000000"),
		Border: lipgloss.Color("#888888"),
		Text:   lipgloss.Color("#ffffff"),
		Accent: lipgloss.Color("#0088ff"),
		Muted:  lipgloss.Color("#888888"),
	}

	// Default theme
	CurrentTheme = ThemeClassic

	// All available themes
	Themes = []Theme{
		ThemeClassic,
		ThemeAmber,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme returns the theme after current in registration order.
func NextTheme(current string) string {
	names := ThemeNames()
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
