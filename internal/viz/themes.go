package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme of the terminal view
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// Themes are named after the phosphor they imitate.
var (
	ThemePhosphor = Theme{
		Name:       "phosphor",
		Primary:    lipgloss.Color("#33ff66"), // P1
		Secondary:  lipgloss.Color("#1f9e45"),
		Accent:     lipgloss.Color("#b6ffc8"),
		Background: lipgloss.Color("#050a05"),
		Text:       lipgloss.Color("#c8e6c9"),
		Muted:      lipgloss.Color("#3c5a3f"),
		Success:    lipgloss.Color("#33ff66"),
		Warning:    lipgloss.Color("#ffcc33"),
		Error:      lipgloss.Color("#ff5555"),
	}

	ThemeAmber = Theme{
		Name:       "amber",
		Primary:    lipgloss.Color("#ffb000"), // P3
		Secondary:  lipgloss.Color("#cc7a00"),
		Accent:     lipgloss.Color("#ffd98a"),
		Background: lipgloss.Color("#0d0800"),
		Text:       lipgloss.Color("#ffe4b0"),
		Muted:      lipgloss.Color("#6b4a12"),
		Success:    lipgloss.Color("#ffcc40"),
		Warning:    lipgloss.Color("#ff7a1a"),
		Error:      lipgloss.Color("#ff3b30"),
	}

	ThemeWhite = Theme{
		Name:       "white",
		Primary:    lipgloss.Color("#f2f4ff"), // P4
		Secondary:  lipgloss.Color("#b8bdd6"),
		Accent:     lipgloss.Color("#8fb4ff"),
		Background: lipgloss.Color("#08090d"),
		Text:       lipgloss.Color("#e6e8f0"),
		Muted:      lipgloss.Color("#5a5f73"),
		Success:    lipgloss.Color("#9affb0"),
		Warning:    lipgloss.Color("#ffd166"),
		Error:      lipgloss.Color("#ff5c5c"),
	}

	ThemeRadar = Theme{
		Name:       "radar",
		Primary:    lipgloss.Color("#9fd8ff"), // P7 flash
		Secondary:  lipgloss.Color("#e8e36a"), // P7 afterglow
		Accent:     lipgloss.Color("#ffffff"),
		Background: lipgloss.Color("#03070d"),
		Text:       lipgloss.Color("#cfe6f5"),
		Muted:      lipgloss.Color("#3b5366"),
		Success:    lipgloss.Color("#e8e36a"),
		Warning:    lipgloss.Color("#ffa94d"),
		Error:      lipgloss.Color("#ff4d6d"),
	}

	ThemeScope = Theme{
		Name:       "scope",
		Primary:    lipgloss.Color("#7dffd2"), // P31
		Secondary:  lipgloss.Color("#2bb58a"),
		Accent:     lipgloss.Color("#ffe066"),
		Background: lipgloss.Color("#020806"),
		Text:       lipgloss.Color("#d6fff1"),
		Muted:      lipgloss.Color("#2f5a4c"),
		Success:    lipgloss.Color("#7dffd2"),
		Warning:    lipgloss.Color("#ffe066"),
		Error:      lipgloss.Color("#ff6b6b"),
	}

	Themes = []Theme{
		ThemePhosphor,
		ThemeAmber,
		ThemeWhite,
		ThemeRadar,
		ThemeScope,
	}
)

// GetTheme returns a theme by name, falling back to phosphor
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemePhosphor
}

// NextTheme returns the theme after t in the cycle.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
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
