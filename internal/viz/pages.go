package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/termfolio/internal/content"
)

// page accumulates blocks and remembers the line where each section starts.
type page struct {
	blocks   []string
	lines    int
	sections []Section
}

func (p *page) add(block string) {
	p.blocks = append(p.blocks, block)
	p.lines += lipgloss.Height(block)
}

func (p *page) section(id, label string) {
	p.sections = append(p.sections, Section{ID: id, Label: label, Offset: p.lines})
}

func (p *page) String() string { return strings.Join(p.blocks, "\n") }

var navSections = []struct{ id, label string }{
	{"about", "About"},
	{"projects", "Projects"},
	{"contact", "Contact"},
}

// renderHome lays out the scrollable home page at width columns and returns
// it with its section offsets. selected is the highlighted project.
func renderHome(pf *content.Portfolio, s Styles, width, selected int) (string, []Section) {
	var pg page
	pr := pf.Profile
	inner := max(width-4, 10)

	banner := s.Online.Render("●") + " " + s.Text.Render(pr.Availability)
	if pr.Location != "" {
		loc := s.Subtle.Render("⌖ " + pr.Location)
		gap := max(inner-lipgloss.Width(banner)-lipgloss.Width(loc), 1)
		banner += strings.Repeat(" ", gap) + loc
	}
	pg.add(s.Panel.Width(width - 2).Render(banner))

	if len(pr.Stats) > 0 {
		statW := max((width-2)/len(pr.Stats)-2, 8)
		stats := make([]string, len(pr.Stats))
		for i, st := range pr.Stats {
			stats[i] = s.Panel.Width(statW).Align(lipgloss.Center).Render(
				s.Accent.Render(st.Value) + "\n" + s.Subtle.Render(st.Label))
		}
		pg.add(lipgloss.JoinHorizontal(lipgloss.Top, stats...))
	}

	pg.add("")
	pg.add(s.Subtle.Render("Hi, I'm"))
	pg.add(GradientText(strings.ToUpper(pr.Name), s.Theme.Primary, s.Theme.Accent))
	pg.add(s.Heading.Render(pr.Role))
	pg.add(s.Text.Width(inner).Render(pr.Bio))
	pg.add("")
	pg.add(s.Tokens(pr.Badges, inner))
	pg.add("")
	buttons := s.Button.Render("View Projects") + "  " + s.Button.Render("Contact Me")
	if pr.Status != "" {
		buttons += "  " + s.Online.Render("● "+pr.Status)
	}
	pg.add(buttons)
	pg.add("")
	pg.add(s.Separator(width))

	pg.section("about", "About")
	pg.add(s.Comment.Render("// 01. about"))
	pg.add(s.Title.Render("Who I am"))
	pg.add(s.Text.Width(inner).Render(pf.Profile.About))
	pg.add(s.Tokens(pr.Traits, inner))
	pg.add("")
	for _, g := range pf.Skills {
		pg.add(s.Panel.Width(width - 2).Render(
			s.Title.Render(g.Group) + "\n" + s.Text.Render(strings.Join(g.Items, " · "))))
	}
	pg.add(s.Separator(width))

	pg.section("projects", "Projects")
	pg.add(s.Comment.Render("// 02. projects"))
	pg.add(s.Title.Render("Projects"))
	for i, p := range pf.Projects {
		body := []string{
			s.Title.Render(p.Title),
			s.Text.Width(inner - 2).Render(p.Short),
		}
		if len(p.Highlights) > 0 {
			body = append(body, s.Subtle.Render("Key Work"))
			for _, h := range p.Highlights {
				body = append(body, s.Text.Width(inner-2).Render("• "+h))
			}
		}
		body = append(body, s.Tokens(p.Stack, inner-2))
		box := s.Panel
		if i == selected {
			box = s.Selected
			body = append(body, s.Hints("enter", "open project"))
		}
		pg.add(box.Width(width - 2).Render(strings.Join(body, "\n")))
	}
	pg.add(s.Separator(width))

	pg.section("contact", "Contact")
	ct := pf.Contact
	contact := []string{
		s.Comment.Render("// 03. contact"),
		s.Accent.Render("GET IN TOUCH"),
		s.Title.Render(ct.Headline),
		s.Text.Width(inner).Render(ct.Pitch),
		"",
		s.Button.Render(ct.Email),
	}
	for _, l := range ct.Links {
		contact = append(contact, s.Heading.Render(l.Label)+" "+s.Subtle.Render(l.URL))
	}
	pg.add(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(strings.Join(contact, "\n")))
	pg.add("")
	pg.add(s.Separator(width))
	pg.add(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
		s.Subtle.Render(fmt.Sprintf("%s © %d · Built with Go & Bubble Tea", pr.Name, time.Now().Year()))))

	return pg.String(), pg.sections
}

// renderNav draws the top bar with the active section highlighted.
func renderNav(pf *content.Portfolio, s Styles, width int, active string, scrolled bool) string {
	left := s.Logo.Render(pf.Profile.Initials) + " " + s.Title.Render(pf.Profile.Name)
	items := make([]string, 0, len(navSections)+1)
	for i, n := range navSections {
		label := fmt.Sprintf("%d %s", i+1, n.label)
		if n.id == active {
			items = append(items, s.NavOn.Render(label))
		} else {
			items = append(items, s.NavItem.Render(label))
		}
	}
	right := strings.Join(items, "")
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	st := lipgloss.NewStyle().Width(width)
	if scrolled {
		st = st.Background(s.Theme.Surface)
	}
	return st.Render(bar)
}

// markdownRenderer builds a glamour renderer with a fixed dark style so
// rendering never queries the terminal.
func markdownRenderer(width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width-4, 20)),
	)
}

func renderProject(p *content.Project, s Styles, width int) (string, error) {
	r, err := markdownRenderer(width)
	if err != nil {
		return "", err
	}
	md, err := r.Render(p.Markdown())
	if err != nil {
		return "", err
	}
	head := s.Hints("esc", "back to portfolio") + "\n" +
		s.Comment.Render("// 02. projects / "+p.ID)
	return head + "\n" + strings.TrimRight(md, "\n") + "\n\n" + s.Button.Render("← Back to Portfolio"), nil
}

func renderProjectNotFound(s Styles, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(strings.Join([]string{
		s.Comment.Render("// 404 — not found"),
		"",
		s.Title.Render("Project Not Found"),
		"",
		s.Button.Render("← Back to Portfolio"),
	}, "\n"))
}

func renderNotFound(s Styles, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(strings.Join([]string{
		s.Title.Render("404"),
		"",
		s.Text.Render("The page you're looking for doesn't exist."),
		"",
		s.Button.Render("Back to Portfolio"),
	}, "\n"))
}

// renderLoader is the splash shown before the first page.
func renderLoader(name string, s Styles, progress float64) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render(name),
		"",
		s.Subtle.Render("L O A D I N G   P O R T F O L I O"),
		"",
		ProgressBar(progress, 24, s.Theme.Accent, s.Theme.Border),
	)
}
