package viz

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/termfolio/internal/chat"
	"github.com/san-kum/termfolio/internal/content"
	"github.com/san-kum/termfolio/internal/glyphgrid"
	"github.com/san-kum/termfolio/internal/route"
	"go.uber.org/zap"
)

type TickMsg time.Time

const maxBodyWidth = 96

// Options configures the interactive app.
type Options struct {
	Portfolio   *content.Portfolio
	Sender      chat.Sender
	Params      glyphgrid.Params
	Theme       string
	FPS         int
	Route       string
	LoaderDelay time.Duration
	Logger      *zap.Logger
	// Rand seeds the glyph grid; nil uses a time-based seed.
	Rand *rand.Rand
}

// App is the bubbletea model for the portfolio.
type App struct {
	pf     *content.Portfolio
	log    *zap.Logger
	fps    int
	theme  Theme
	styles Styles

	canvas *Canvas
	queue  *glyphgrid.FrameQueue
	events *glyphgrid.Listeners
	grid   *glyphgrid.Renderer

	router     *route.Router
	body       viewport.Model
	sections   []Section
	selected   int
	homeOffset int

	loading      bool
	loaderDelay  time.Duration
	started      time.Time
	loaderSpring harmonica.Spring
	loaderPos    float64
	loaderVel    float64

	chat ChatWidget

	width, height int
	quitting      bool
}

func NewApp(opts Options) *App {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Route == "" {
		opts.Route = "/"
	}
	if opts.Params.CellSize <= 0 {
		opts.Params = glyphgrid.DefaultParams()
	}
	theme := GetTheme(opts.Theme)
	styles := NewStyles(theme)
	params := theme.Apply(opts.Params)

	canvas := NewCanvas(0, 0, params.CellSize)
	queue := &glyphgrid.FrameQueue{}
	events := &glyphgrid.Listeners{}
	gridOpts := []glyphgrid.Option{glyphgrid.WithLogger(opts.Logger.Named("glyphgrid"))}
	if opts.Rand != nil {
		gridOpts = append(gridOpts, glyphgrid.WithRand(opts.Rand))
	}

	a := &App{
		pf:           opts.Portfolio,
		log:          opts.Logger,
		fps:          opts.FPS,
		theme:        theme,
		styles:       styles,
		canvas:       canvas,
		queue:        queue,
		events:       events,
		grid:         glyphgrid.New(params, canvas, queue, events, gridOpts...),
		router:       route.NewRouter(opts.Route),
		body:         viewport.New(0, 0),
		loading:      opts.LoaderDelay > 0,
		loaderDelay:  opts.LoaderDelay,
		loaderSpring: harmonica.NewSpring(harmonica.FPS(opts.FPS), 4.0, 1.0),
		chat:         NewChatWidget(opts.Sender, styles, opts.FPS, opts.Logger.Named("chat")),
	}
	return a
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(a.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (a *App) Init() tea.Cmd {
	return a.tick()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if a.quitting {
			return a, nil
		}
		a.frame(time.Time(msg))
		return a, a.tick()

	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case chatReplyMsg, spinner.TickMsg:
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.chat, cmd = a.chat.Update(msg)
	return a, cmd
}

// frame runs once per tick: drains the frame queue and advances the
// loader and chat animations.
func (a *App) frame(now time.Time) {
	if a.started.IsZero() {
		a.started = now
	}
	a.queue.Flush(now)
	a.chat.Animate()

	if !a.loading {
		return
	}
	elapsed := now.Sub(a.started)
	target := clamp01(float64(elapsed) / float64(a.loaderDelay))
	a.loaderPos, a.loaderVel = a.loaderSpring.Update(a.loaderPos, a.loaderVel, target)
	if elapsed >= a.loaderDelay {
		a.loading = false
		a.log.Debug("loader finished", zap.Duration("elapsed", elapsed))
		a.refreshBody()
	}
}

func (a *App) resize(w, h int) {
	a.width, a.height = w, h
	a.canvas.Resize(w, h)
	if a.grid.Running() {
		a.events.DispatchResize()
	} else {
		a.grid.Mount()
	}

	a.body.Width = a.bodyWidth()
	a.body.Height = max(h-3, 1)
	a.chat.SetSize(w, h)
	a.refreshBody()
}

func (a *App) bodyWidth() int {
	return max(min(a.width-4, maxBodyWidth), 20)
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	x, y := a.canvas.CellCenter(msg.X, msg.Y)
	a.events.DispatchPointer(glyphgrid.PointerEvent{PageX: x, PageY: y})

	if a.loading || a.chat.Open() {
		return nil
	}
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		var cmd tea.Cmd
		a.body, cmd = a.body.Update(msg)
		return cmd
	}
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return a.quit()
	}

	if a.chat.Open() {
		if key == "esc" {
			a.chat.Close()
			return nil
		}
		if key == "c" && !a.chat.InputFocused() {
			return a.chat.Toggle()
		}
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		return cmd
	}

	if a.loading {
		if key == "q" {
			return a.quit()
		}
		return nil
	}

	switch key {
	case "q":
		return a.quit()
	case "c":
		return a.chat.Toggle()
	case "t":
		a.cycleTheme()
		return nil
	}

	switch a.router.Current().Page {
	case route.PageHome:
		return a.homeKey(msg)
	default:
		return a.detailKey(msg)
	}
}

func (a *App) homeKey(msg tea.KeyMsg) tea.Cmd {
	n := len(a.pf.Projects)
	switch msg.String() {
	case "tab":
		if n > 0 {
			a.selected = (a.selected + 1) % n
			a.showProjects()
		}
	case "shift+tab":
		if n > 0 {
			a.selected = (a.selected - 1 + n) % n
			a.showProjects()
		}
	case "enter":
		if n > 0 {
			a.Navigate(route.ProjectPath(a.pf.Projects[a.selected].ID))
		}
	case "1", "2", "3":
		i := int(msg.String()[0] - '1')
		if i < len(navSections) {
			a.jumpTo(navSections[i].id)
		}
	default:
		var cmd tea.Cmd
		a.body, cmd = a.body.Update(msg)
		return cmd
	}
	return nil
}

func (a *App) detailKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "backspace", "enter":
		a.Back()
		return nil
	}
	var cmd tea.Cmd
	a.body, cmd = a.body.Update(msg)
	return cmd
}

// Navigate pushes path and renders the new page from the top.
func (a *App) Navigate(path string) {
	if a.router.Current().Page == route.PageHome {
		a.homeOffset = a.body.YOffset
	}
	a.router.Push(path)
	a.log.Debug("navigate", zap.String("path", path))
	a.refreshBody()
	a.body.GotoTop()
}

// Back pops the history. Returning home restores the previous scroll.
func (a *App) Back() {
	r := a.router.Back()
	a.refreshBody()
	if r.Page == route.PageHome {
		a.body.SetYOffset(a.homeOffset)
	} else {
		a.body.GotoTop()
	}
}

func (a *App) showProjects() {
	a.refreshBody()
	if ActiveSection(a.sections, a.body.YOffset, a.body.Height, a.body.TotalLineCount()) != "projects" {
		a.jumpTo("projects")
	}
}

func (a *App) jumpTo(id string) {
	if off, ok := sectionOffset(a.sections, id); ok {
		a.body.SetYOffset(off)
	}
}

func (a *App) cycleTheme() {
	a.theme = NextTheme(a.theme.Name)
	a.styles = NewStyles(a.theme)
	a.grid.SetPalette(a.theme.Palette())
	a.chat.SetStyles(a.styles)
	a.refreshBody()
	a.log.Debug("theme changed", zap.String("theme", a.theme.Name))
}

func (a *App) refreshBody() {
	if a.width == 0 {
		return
	}
	w := a.bodyWidth()
	cur := a.router.Current()
	switch cur.Page {
	case route.PageHome:
		var text string
		text, a.sections = renderHome(a.pf, a.styles, w, a.selected)
		a.body.SetContent(text)
	case route.PageProject:
		p, ok := a.pf.Project(cur.ProjectID)
		if !ok {
			a.body.SetContent(renderProjectNotFound(a.styles, w))
			return
		}
		text, err := renderProject(p, a.styles, w)
		if err != nil {
			a.log.Warn("markdown render failed", zap.String("project", p.ID), zap.Error(err))
			text = p.Markdown()
		}
		a.body.SetContent(text)
	default:
		a.body.SetContent(renderNotFound(a.styles, w))
	}
}

func (a *App) quit() tea.Cmd {
	a.quitting = true
	a.chat.Cancel()
	a.grid.Teardown()
	return tea.Quit
}

func (a *App) View() string {
	if a.quitting || a.width == 0 || a.height == 0 {
		return ""
	}
	lines := a.canvas.Lines()

	if a.loading {
		block := renderLoader(a.pf.Profile.Name, a.styles, a.loaderPos)
		x := (a.width - lipgloss.Width(block)) / 2
		y := (a.height - lipgloss.Height(block)) / 2
		return strings.Join(Overlay(lines, block, x, y), "\n")
	}

	cur := a.router.Current()
	var hints string
	if cur.Page == route.PageHome {
		active := ActiveSection(a.sections, a.body.YOffset, a.body.Height, a.body.TotalLineCount())
		lines = Overlay(lines, renderNav(a.pf, a.styles, a.width, active, Scrolled(a.body.YOffset)), 0, 0)
		hints = a.styles.Hints("tab", "select", "enter", "open", "1-3", "jump", "t", "theme", "c", "chat", "q", "quit")
	} else {
		lines = Overlay(lines, a.styles.Logo.Render(a.pf.Profile.Initials)+" "+a.styles.Subtle.Render(cur.Path), 0, 0)
		hints = a.styles.Hints("esc", "back", "↑/↓", "scroll", "t", "theme", "c", "chat", "q", "quit")
	}

	lines = Overlay(lines, a.body.View(), (a.width-a.body.Width)/2, 1)
	lines = Overlay(lines, hints, 1, a.height-1)

	if a.chat.Visible() {
		panel := a.chat.View()
		x := a.width - lipgloss.Width(panel) - 1 + a.chat.Offset()
		y := a.height - lipgloss.Height(panel) - 1
		lines = Overlay(lines, panel, x, max(y, 0))
	} else {
		label := a.chat.StatusLabel()
		lines = Overlay(lines, label, a.width-lipgloss.Width(label)-2, a.height-2)
	}
	return strings.Join(lines, "\n")
}

func (a *App) Page() route.Page { return a.router.Current().Page }

func (a *App) Route() route.Route { return a.router.Current() }

func (a *App) Selected() int { return a.selected }

func (a *App) Loading() bool { return a.loading }

func (a *App) Chat() *ChatWidget { return &a.chat }

func (a *App) Renderer() *glyphgrid.Renderer { return a.grid }

func (a *App) Canvas() *Canvas { return a.canvas }

func (a *App) Theme() Theme { return a.theme }

// ActiveSection is the nav entry currently highlighted.
func (a *App) ActiveSection() string {
	return ActiveSection(a.sections, a.body.YOffset, a.body.Height, a.body.TotalLineCount())
}

// Run starts the full-screen program and blocks until it exits.
func Run(opts Options) error {
	app := NewApp(opts)
	defer app.grid.Teardown()
	defer app.chat.Cancel()
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
