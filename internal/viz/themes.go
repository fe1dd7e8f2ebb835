package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/termfolio/internal/glyphgrid"
)

// Theme defines the color scheme for the pages and the glyph background.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color

	// Glyph grid palette.
	GridBackground string
	GridAmbient    string
	GridActive     string
}

var (
	ThemeTerminal = Theme{
		Name:           "terminal",
		Primary:        lipgloss.Color("#e6edf3"),
		Secondary:      lipgloss.Color("#8b949e"),
		Accent:         lipgloss.Color("#2f81f7"),
		Background:     lipgloss.Color("#0d1117"),
		Surface:        lipgloss.Color("#161b22"),
		Border:         lipgloss.Color("#30363d"),
		Text:           lipgloss.Color("#e6edf3"),
		Muted:          lipgloss.Color("#6e7681"),
		Success:        lipgloss.Color("#3fb950"),
		Warning:        lipgloss.Color("#d29922"),
		Error:          lipgloss.Color("#f85149"),
		GridBackground: "#0d1117",
		GridAmbient:    "#1c2433",
		GridActive:     "#2f81f7",
	}

	ThemeCyberpunk = Theme{
		Name:           "cyberpunk",
		Primary:        lipgloss.Color("#ff00ff"),
		Secondary:      lipgloss.Color("#00ffff"),
		Accent:         lipgloss.Color("#ffff00"),
		Background:     lipgloss.Color("#0a0a0a"),
		Surface:        lipgloss.Color("#1a001a"),
		Border:         lipgloss.Color("#444466"),
		Text:           lipgloss.Color("#ffffff"),
		Muted:          lipgloss.Color("#666666"),
		Success:        lipgloss.Color("#00ff00"),
		Warning:        lipgloss.Color("#ff8800"),
		Error:          lipgloss.Color("#ff0000"),
		GridBackground: "#0a0a0a",
		GridAmbient:    "#2a0a2a",
		GridActive:     "#ff00ff",
	}

	ThemeRetroGreen = Theme{
		Name:           "retro",
		Primary:        lipgloss.Color("#00ff00"),
		Secondary:      lipgloss.Color("#00cc00"),
		Accent:         lipgloss.Color("#88ff88"),
		Background:     lipgloss.Color("#001100"),
		Surface:        lipgloss.Color("#002200"),
		Border:         lipgloss.Color("#005500"),
		Text:           lipgloss.Color("#00ff00"),
		Muted:          lipgloss.Color("#005500"),
		Success:        lipgloss.Color("#88ff88"),
		Warning:        lipgloss.Color("#ffff00"),
		Error:          lipgloss.Color("#ff0000"),
		GridBackground: "#001100",
		GridAmbient:    "#003300",
		GridActive:     "#00ff00",
	}

	ThemeOcean = Theme{
		Name:           "ocean",
		Primary:        lipgloss.Color("#0077be"),
		Secondary:      lipgloss.Color("#00a8cc"),
		Accent:         lipgloss.Color("#ffd700"),
		Background:     lipgloss.Color("#001a33"),
		Surface:        lipgloss.Color("#002447"),
		Border:         lipgloss.Color("#4488aa"),
		Text:           lipgloss.Color("#e0f0ff"),
		Muted:          lipgloss.Color("#4488aa"),
		Success:        lipgloss.Color("#00ff88"),
		Warning:        lipgloss.Color("#ffcc00"),
		Error:          lipgloss.Color("#ff4444"),
		GridBackground: "#001a33",
		GridAmbient:    "#0a2c4d",
		GridActive:     "#00a8cc",
	}

	ThemeSunset = Theme{
		Name:           "sunset",
		Primary:        lipgloss.Color("#ff6b6b"),
		Secondary:      lipgloss.Color("#feca57"),
		Accent:         lipgloss.Color("#ff9ff3"),
		Background:     lipgloss.Color("#2d1b2e"),
		Surface:        lipgloss.Color("#3a2440"),
		Border:         lipgloss.Color("#8b6b8c"),
		Text:           lipgloss.Color("#fff5f5"),
		Muted:          lipgloss.Color("#8b6b8c"),
		Success:        lipgloss.Color("#5fd068"),
		Warning:        lipgloss.Color("#ffc048"),
		Error:          lipgloss.Color("#ff4757"),
		GridBackground: "#2d1b2e",
		GridAmbient:    "#452a47",
		GridActive:     "#ff6b6b",
	}

	// All available themes, in cycling order.
	Themes = []Theme{
		ThemeTerminal,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the terminal theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeTerminal
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
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

// Palette parses the glyph grid colors.
func (t Theme) Palette() (background, ambient, active colorful.Color) {
	return hexOr(t.GridBackground, "#0d1117"), hexOr(t.GridAmbient, "#1c2433"), hexOr(t.GridActive, "#2f81f7")
}

// Apply copies the theme's glyph palette into p.
func (t Theme) Apply(p glyphgrid.Params) glyphgrid.Params {
	p.Background, p.Ambient, p.Active = t.Palette()
	return p
}

func hexOr(s, fallback string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return glyphgrid.MustHex(fallback)
	}
	return c
}
