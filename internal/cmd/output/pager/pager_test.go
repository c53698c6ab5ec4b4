package pager

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/kong/tabulator/internal/iostreams"
	"github.com/kong/tabulator/internal/theme"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRunWritesContentWhenNotATerminal(t *testing.T) {
	streams, _, out, _ := iostreams.NewTestIOStreams()
	require.NoError(t, Run(&streams, "a | b\n", WithTitle("t")))
	require.Equal(t, "a | b\n", out.String())
}

func TestRunWithoutOutput(t *testing.T) {
	require.Error(t, Run(nil, "x"))
	require.Error(t, Run(&iostreams.IOStreams{}, "x"))
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := newModel("x", 20, 5, config{palette: theme.Current()})
		_, cmd := m.Update(k)
		require.NotNil(t, cmd, k.String())
		require.IsType(t, tea.QuitMsg{}, cmd(), k.String())
	}
}

func TestHelpToggle(t *testing.T) {
	m := newModel("x", 60, 5, config{palette: theme.Current()})
	require.Contains(t, ansi.Strip(m.View()), "? help")

	m.Update(runes("?"))
	require.Contains(t, ansi.Strip(m.View()), "y copy")

	m.Update(runes("?"))
	require.NotContains(t, ansi.Strip(m.View()), "y copy")
}

func TestCopy(t *testing.T) {
	orig := writeClipboardText
	t.Cleanup(func() { writeClipboardText = orig })

	var copied string
	writeClipboardText = func(s string) error {
		copied = s
		return nil
	}

	m := newModel("\x1b[31ma\x1b[0m\nb\n", 60, 5, config{title: "render"})
	m.Update(runes("y"))
	require.Equal(t, "a\nb\n", copied)
	require.Equal(t, "Copied 2 lines to clipboard.", m.statusMessage)
	require.Contains(t, ansi.Strip(m.View()), "render")

	writeClipboardText = func(string) error { return errors.New("no display") }
	m.Update(runes("y"))
	require.Equal(t, "Copy failed: no display", m.statusMessage)

	m = newModel("  \n", 60, 5, config{})
	m.Update(runes("y"))
	require.Equal(t, "Nothing to copy.", m.statusMessage)
}

func TestWindowResize(t *testing.T) {
	content := strings.Repeat("line\n", 50)
	m := newModel(content, 20, 10, config{})
	require.Equal(t, 9, m.viewport.Height)

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 1})
	require.Equal(t, 40, m.viewport.Width)
	require.Equal(t, 1, m.viewport.Height)

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 6})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.viewport.YOffset)
}
