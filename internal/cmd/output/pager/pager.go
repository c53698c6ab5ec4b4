// Package pager shows rendered text in a scrollable full screen view when the
// output is a terminal, and writes it as is otherwise.
package pager

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/kong/tabulator/internal/iostreams"
	"github.com/kong/tabulator/internal/theme"
)

const (
	defaultWidth    = 120
	defaultHeight   = 24
	horizontalStep  = 4
	statusBarHeight = 1
)

// writeClipboardText is replaced in tests.
var writeClipboardText = clipboard.WriteAll

type config struct {
	title   string
	palette theme.Palette
}

type Option func(*config)

// WithTitle shows title in the status bar.
func WithTitle(title string) Option {
	return func(c *config) { c.title = title }
}

// WithPalette colors the status bar.
func WithPalette(p theme.Palette) Option {
	return func(c *config) { c.palette = p }
}

// Run pages content on the output stream of streams. When the output is not
// a terminal the content is written unchanged.
func Run(streams *iostreams.IOStreams, content string, opts ...Option) error {
	if streams == nil || streams.Out == nil {
		return errors.New("pager: output stream is not available")
	}
	cfg := config{palette: theme.Current()}
	for _, opt := range opts {
		opt(&cfg)
	}

	width, height, isTTY := resolveTerminal(streams.Out)
	if !isTTY {
		_, err := io.WriteString(streams.Out, content)
		return err
	}

	program := tea.NewProgram(newModel(content, width, height, cfg),
		tea.WithInput(streams.In),
		tea.WithOutput(streams.Out),
		tea.WithAltScreen(),
	)
	_, err := program.Run()
	return err
}

func resolveTerminal(out io.Writer) (width, height int, isTTY bool) {
	width, height = defaultWidth, defaultHeight
	fp, ok := out.(interface{ Fd() uintptr })
	if !ok || !iostreams.IsTerminal(out) {
		return width, height, false
	}
	if w, h, err := term.GetSize(int(fp.Fd())); err == nil {
		width, height = w, h
	}
	return width, height, true
}

type keyMap struct {
	Quit key.Binding
	Copy key.Binding
	Help key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

type model struct {
	viewport      viewport.Model
	content       string
	keys          keyMap
	title         string
	statusStyle   lipgloss.Style
	statusMessage string
	showHelp      bool
}

func newModel(content string, width, height int, cfg config) *model {
	vp := viewport.New(width, max(height-statusBarHeight, 1))
	vp.SetHorizontalStep(horizontalStep)
	vp.KeyMap.Up = key.NewBinding(
		key.WithKeys("up", "k", "ctrl+p"),
		key.WithHelp("↑/k/ctrl+p", "up"),
	)
	vp.KeyMap.Down = key.NewBinding(
		key.WithKeys("down", "j", "ctrl+j"),
		key.WithHelp("↓/j/ctrl+j", "down"),
	)
	vp.SetContent(strings.TrimRight(content, "\n"))

	return &model{
		viewport: vp,
		content:  content,
		keys:     defaultKeyMap(),
		title:    cfg.title,
		statusStyle: lipgloss.NewStyle().
			Foreground(cfg.palette.Adaptive(theme.ColorTextSecondary)).
			Background(cfg.palette.Adaptive(theme.ColorHighlight)),
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { //nolint:ireturn
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Copy):
			m.copyContent()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-statusBarHeight, 1)
		return m, nil
	}

	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return m, cmd
}

func (m *model) copyContent() {
	plain := ansi.Strip(m.content)
	if strings.TrimSpace(plain) == "" {
		m.statusMessage = "Nothing to copy."
		return
	}
	if err := writeClipboardText(plain); err != nil {
		m.statusMessage = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.statusMessage = fmt.Sprintf("Copied %d lines to clipboard.", strings.Count(strings.TrimRight(plain, "\n"), "\n")+1)
}

func (m *model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), m.statusBar())
}

func (m *model) statusBar() string {
	var parts []string
	if m.title != "" {
		parts = append(parts, m.title)
	}
	if m.statusMessage != "" {
		parts = append(parts, m.statusMessage)
	}
	if m.showHelp {
		parts = append(parts, "↑/↓ scroll  ←/→ pan  y copy  q quit")
	} else {
		parts = append(parts, fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100), "? help")
	}
	line := ansi.Truncate(strings.Join(parts, "  "), m.viewport.Width, "…")
	return m.statusStyle.Width(m.viewport.Width).Render(line)
}
