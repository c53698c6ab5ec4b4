package iostreams

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTerminalWidthFromEnv(t *testing.T) {
	streams, _, _, _ := NewTestIOStreams()

	t.Setenv("COLUMNS", "132")
	require.Equal(t, 132, streams.TerminalWidth())

	t.Setenv("COLUMNS", "wide")
	require.Equal(t, 0, streams.TerminalWidth())

	t.Setenv("COLUMNS", "")
	require.Equal(t, 0, streams.TerminalWidth())
}

func TestIsOutputTTY(t *testing.T) {
	streams, _, _, _ := NewTestIOStreams()
	require.False(t, streams.IsOutputTTY())

	orig := terminalDetector
	t.Cleanup(func() { terminalDetector = orig })
	terminalDetector = func(uintptr) bool { return true }

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	streams.Out = f
	require.True(t, streams.IsOutputTTY())

	// size detection fails on a plain file and falls back to COLUMNS
	t.Setenv("COLUMNS", "90")
	require.Equal(t, 90, streams.TerminalWidth())
}
