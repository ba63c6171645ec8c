package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Canvas  lipgloss.Color
	Header  lipgloss.Color
	Active  lipgloss.Color
	Label   lipgloss.Color
	Value   lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
	Graph   lipgloss.Color
}

var (
	ThemeDeepSpace = Theme{
		Name:    "deep-space",
		Canvas:  lipgloss.Color("#e8e8ff"),
		Header:  lipgloss.Color("#ffcc33"), // sun gold
		Active:  lipgloss.Color("#ff66cc"),
		Label:   lipgloss.Color("#8888aa"),
		Value:   lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#555577"),
		Warning: lipgloss.Color("#ff8800"),
		Graph:   lipgloss.Color("#33ccff"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Canvas:  lipgloss.Color("#00ff00"), // Green phosphor
		Header:  lipgloss.Color("#88ff88"),
		Active:  lipgloss.Color("#ffff00"),
		Label:   lipgloss.Color("#00aa00"),
		Value:   lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Warning: lipgloss.Color("#ffff00"),
		Graph:   lipgloss.Color("#00cc00"),
	}

	ThemeMars = Theme{
		Name:    "mars",
		Canvas:  lipgloss.Color("#ffb380"),
		Header:  lipgloss.Color("#ff6b3d"),
		Active:  lipgloss.Color("#ffd700"),
		Label:   lipgloss.Color("#aa7766"),
		Value:   lipgloss.Color("#fff0e8"),
		Muted:   lipgloss.Color("#664433"),
		Warning: lipgloss.Color("#ff4757"),
		Graph:   lipgloss.Color("#feca57"),
	}

	Themes = []Theme{ThemeDeepSpace, ThemeRetroGreen, ThemeMars}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDeepSpace
}

// NextTheme returns the theme after current, wrapping around.
func NextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
