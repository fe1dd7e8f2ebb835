package viz

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/termfolio/internal/chat"
	"go.uber.org/zap"
)

const (
	chatPanelWidth  = 46
	chatPanelHeight = 22
)

// chatReplyMsg carries the outcome of one request back to the event loop.
type chatReplyMsg struct {
	reply string
	err   error
}

// ChatWidget is the floating assistant panel.
type ChatWidget struct {
	open       bool
	transcript *chat.Transcript
	sender     chat.Sender
	log        *zap.Logger

	// ctx bounds every request; Cancel aborts the one in flight.
	ctx    context.Context
	cancel context.CancelFunc

	input textinput.Model
	vp    viewport.Model
	spin  spinner.Model

	// slide animates the panel in from the right edge; 0 hidden, 1 shown.
	spring        harmonica.Spring
	slide, slideV float64
	width, height int
	styles        Styles
}

func NewChatWidget(sender chat.Sender, s Styles, fps int, log *zap.Logger) ChatWidget {
	ti := textinput.New()
	ti.Prompt = "PS> "
	ti.Placeholder = "ask anything..."
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Points

	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := ChatWidget{
		transcript: chat.NewTranscript(chat.Greeting),
		sender:     sender,
		log:        log,
		ctx:        ctx,
		cancel:     cancel,
		input:      ti,
		vp:         viewport.New(chatPanelWidth-4, chatPanelHeight-8),
		spin:       sp,
		spring:     harmonica.NewSpring(harmonica.FPS(fps), 7.0, 0.8),
	}
	w.SetStyles(s)
	return w
}

func (w *ChatWidget) SetStyles(s Styles) {
	w.styles = s
	w.input.PromptStyle = lipgloss.NewStyle().Foreground(s.Theme.Accent)
	w.input.TextStyle = lipgloss.NewStyle().Foreground(s.Theme.Text)
	w.spin.Style = lipgloss.NewStyle().Foreground(s.Theme.Muted)
	w.refresh()
}

func (w *ChatWidget) Open() bool { return w.open }

func (w *ChatWidget) Loading() bool { return w.transcript.Loading() }

func (w *ChatWidget) Transcript() *chat.Transcript { return w.transcript }

func (w *ChatWidget) InputFocused() bool { return w.input.Focused() }

// SetSize bounds the panel to the terminal.
func (w *ChatWidget) SetSize(width, height int) {
	w.width, w.height = width, height
	pw, ph := w.panelSize()
	w.vp.Width = pw - 4
	w.vp.Height = max(ph-8, 3)
	w.input.Width = pw - 10
	w.refresh()
}

func (w *ChatWidget) panelSize() (int, int) {
	pw, ph := chatPanelWidth, chatPanelHeight
	if w.width > 0 {
		pw = min(pw, w.width-2)
	}
	if w.height > 0 {
		ph = min(ph, w.height-2)
	}
	return max(pw, 20), max(ph, 10)
}

// Toggle opens or closes the panel. Opening resets the transcript to the
// greeting and focuses the input, unless a reply is still pending.
func (w *ChatWidget) Toggle() tea.Cmd {
	if w.open {
		w.open = false
		w.input.Blur()
		return nil
	}
	w.open = true
	w.transcript.Reset()
	w.input.Reset()
	w.refresh()
	if w.transcript.Loading() {
		return nil
	}
	return w.input.Focus()
}

// Close hides the panel.
func (w *ChatWidget) Close() {
	w.open = false
	w.input.Blur()
}

// Cancel aborts any request in flight. Later sends fail immediately.
func (w *ChatWidget) Cancel() { w.cancel() }

// Animate advances the slide spring by one frame.
func (w *ChatWidget) Animate() {
	target := 0.0
	if w.open {
		target = 1
	}
	w.slide, w.slideV = w.spring.Update(w.slide, w.slideV, target)
}

// Visible reports whether any part of the panel is on screen.
func (w *ChatWidget) Visible() bool { return w.open || w.slide > 0.01 }

func (w ChatWidget) Update(msg tea.Msg) (ChatWidget, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		m := w.transcript.Complete(msg.reply, msg.err)
		if msg.err != nil {
			w.log.Warn("chat request failed", zap.Error(msg.err))
		} else {
			w.log.Debug("chat reply", zap.Int("len", len(m.Content)))
		}
		w.refresh()
		if w.open {
			return w, w.input.Focus()
		}
		return w, nil

	case spinner.TickMsg:
		if !w.transcript.Loading() {
			return w, nil
		}
		var cmd tea.Cmd
		w.spin, cmd = w.spin.Update(msg)
		w.refresh()
		return w, cmd

	case tea.KeyMsg:
		if !w.open {
			return w, nil
		}
		switch msg.Type {
		case tea.KeyEnter:
			return w.submit()
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			w.vp, cmd = w.vp.Update(msg)
			return w, cmd
		}
		if !w.input.Focused() {
			return w, nil
		}
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}

	if w.open && w.input.Focused() {
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}
	return w, nil
}

// submit starts a request for the current input. The input is blurred
// until the reply or the fallback arrives.
func (w ChatWidget) submit() (ChatWidget, tea.Cmd) {
	text, ok := w.transcript.Begin(w.input.Value())
	if !ok {
		return w, nil
	}
	w.input.Reset()
	w.input.Blur()
	w.refresh()
	return w, tea.Batch(w.send(text), w.spin.Tick)
}

func (w ChatWidget) send(text string) tea.Cmd {
	sender, ctx := w.sender, w.ctx
	return func() tea.Msg {
		if sender == nil {
			return chatReplyMsg{err: chat.ErrUnreachable}
		}
		reply, err := sender.Send(ctx, text)
		return chatReplyMsg{reply: reply, err: err}
	}
}

func (w *ChatWidget) refresh() {
	s := w.styles
	width := max(w.vp.Width, 10)
	var b strings.Builder
	for i, m := range w.transcript.Messages() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch m.Role {
		case chat.RoleUser:
			bubble := lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffffff")).
				Background(s.Theme.Accent).
				Padding(0, 1).
				MaxWidth(width).
				Render(m.Content)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble))
		default:
			b.WriteString(s.Logo.Render("AI") + " " +
				lipgloss.NewStyle().Width(width-5).Render(s.Online.Render("> ")+s.Text.Render(m.Content)))
		}
	}
	if w.transcript.Loading() {
		b.WriteString("\n\n" + s.Logo.Render("AI") + " " + w.spin.View())
	}
	w.vp.SetContent(b.String())
	w.vp.GotoBottom()
}

// StatusLabel is the small indicator shown above the chat button.
func (w ChatWidget) StatusLabel() string {
	return w.styles.Online.Render("●") + " " + w.styles.Subtle.Render("ai_assistant")
}

// Offset returns how many columns the panel is pushed off the right edge.
func (w ChatWidget) Offset() int {
	pw, _ := w.panelSize()
	return int((1 - clamp01(w.slide)) * float64(pw+2))
}

func (w ChatWidget) View() string {
	s := w.styles
	pw, _ := w.panelSize()

	title := s.Logo.Render(">") + " " + s.Text.Render("shreyash_ai") + s.Subtle.Render(" — AI Terminal") +
		" " + s.Online.Render("online")
	controls := s.Subtle.Render("─ □ ✕")
	gap := max(pw-4-lipgloss.Width(title)-lipgloss.Width(controls), 1)
	header := title + strings.Repeat(" ", gap) + controls

	input := w.input.View()
	if w.transcript.Loading() {
		input = lipgloss.NewStyle().Foreground(s.Theme.Muted).Render("PS> waiting for reply...")
	}

	footer := lipgloss.NewStyle().Width(pw - 4).Align(lipgloss.Center).
		Render(s.Subtle.Render("powered by groqcloud"))

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		s.Subtle.Render(strings.Repeat("─", pw-4)),
		w.vp.View(),
		s.Subtle.Render(strings.Repeat("─", pw-4)),
		input,
		footer,
	)
	return s.Panel.
		BorderForeground(s.Theme.Accent).
		Background(s.Theme.Background).
		Width(pw - 2).
		Render(body)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
