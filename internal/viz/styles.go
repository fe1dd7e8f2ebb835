package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	Panel    lipgloss.Style
	Title    lipgloss.Style
	Heading  lipgloss.Style
	Comment  lipgloss.Style
	Text     lipgloss.Style
	Subtle   lipgloss.Style
	Token    lipgloss.Style
	Selected lipgloss.Style
	Accent   lipgloss.Style
	Online   lipgloss.Style
	Error    lipgloss.Style
	KeyHint  lipgloss.Style
	KeyName  lipgloss.Style
	NavItem  lipgloss.Style
	NavOn    lipgloss.Style
	Logo     lipgloss.Style
	Button   lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Theme: t,
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		Heading: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Comment: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Text:    lipgloss.NewStyle().Foreground(t.Secondary),
		Subtle:  lipgloss.NewStyle().Foreground(t.Muted),
		Token: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Surface).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Padding(0, 1),
		Accent:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Online:  lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		KeyHint: lipgloss.NewStyle().Foreground(t.Muted),
		KeyName: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		NavItem: lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1),
		NavOn: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Surface).
			Bold(true).
			Padding(0, 1),
		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(t.Accent).
			Bold(true).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Text).
			Bold(true).
			Padding(0, 2),
	}
}

// GradientText colors each rune of text along a start→end blend.
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	start := hexOr(string(startColor), "#ffffff")
	end := hexOr(string(endColor), "#ffffff")

	var result strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		color := lipgloss.Color(start.BlendRgb(end, t).Clamped().Hex())
		result.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(c)))
	}
	return result.String()
}

// ProgressBar renders a bar filled to percent of width.
func ProgressBar(percent float64, width int, fill, track lipgloss.Color) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(track).Render(strings.Repeat("━", width-filled))
}

// Separator draws a centered divider.
func (s Styles) Separator(width int) string {
	if width < 8 {
		return s.Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-2)
	right := strings.Repeat("─", width-mid-3)
	return s.Subtle.Render(left + " ◆ " + right)
}

// Tokens renders words as inline chips wrapped to width.
func (s Styles) Tokens(words []string, width int) string {
	var lines []string
	var line string
	for _, w := range words {
		chip := s.Token.Render(w)
		switch {
		case line == "":
			line = chip
		case lipgloss.Width(line)+1+lipgloss.Width(chip) > width:
			lines = append(lines, line)
			line = chip
		default:
			line += " " + chip
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Hints renders "key action" pairs for the footer.
func (s Styles) Hints(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, s.KeyName.Render(pairs[i])+s.KeyHint.Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, s.KeyHint.Render("  "))
}

func toColor(c colorful.Color) lipgloss.Color {
	return lipgloss.Color(c.Clamped().Hex())
}
