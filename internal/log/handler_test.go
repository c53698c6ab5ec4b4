package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDualHandlerMirrorsErrorsToSecondary(t *testing.T) {
	var primaryBuf bytes.Buffer
	var secondaryBuf bytes.Buffer

	primary := slog.NewTextHandler(&primaryBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	secondary := slog.NewTextHandler(&secondaryBuf, &slog.HandlerOptions{Level: slog.LevelError})
	logger := slog.New(NewDualHandler(primary, secondary))

	logger.Error("boom", slog.String("foo", "bar"))
	logger.Info("still going")

	require.Contains(t, primaryBuf.String(), "boom")
	require.Contains(t, primaryBuf.String(), "still going")
	require.Contains(t, secondaryBuf.String(), "boom")
	require.NotContains(t, secondaryBuf.String(), "still going")
}

func TestDualHandlerWithoutPrimary(t *testing.T) {
	var secondaryBuf bytes.Buffer
	logger := slog.New(NewDualHandler(nil, slog.NewTextHandler(&secondaryBuf, nil)))

	require.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	logger.With("file", "rows.csv").WithGroup("input").Error("bad row", "line", 3)

	require.Contains(t, secondaryBuf.String(), "file=rows.csv")
	require.Contains(t, secondaryBuf.String(), "input.line=3")
}

func TestFriendlyErrorHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewFriendlyErrorHandler(&buf, nil))

	logger.Error("failed to decode input",
		"error", errors.New("unexpected EOF"),
		"hint", "check the --format flag",
		"source", "rows.json",
		"details", "line 1\n\n  line 2",
	)

	require.Equal(t, ""+
		"Error: failed to decode input\n"+
		"  cause   : unexpected EOF\n"+
		"  details : line 1\n"+
		"      line 2\n"+
		"  source  : rows.json\n"+
		"  hint    : check the --format flag\n", buf.String())
}

func TestFriendlyErrorHandlerFallsBackToErrorAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewFriendlyErrorHandler(&buf, nil))

	logger.Error("", "error", "no such file")
	logger.Warn("ignored")

	require.Equal(t, "Error: no such file\n", buf.String())
}

func TestFriendlyErrorHandlerQualifiesGroupedContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewFriendlyErrorHandler(&buf, nil)).
		With("source", "rows.csv").
		WithGroup("input")

	logger.Error("bad row", "line", 3, slog.Group("cell", "column", "size"), "empty", "")

	require.Equal(t, ""+
		"Error: bad row\n"+
		"  input.cell.column : size\n"+
		"  input.line        : 3\n"+
		"  source            : rows.csv\n", buf.String())
}

func TestConfigLevelStringToSlogLevel(t *testing.T) {
	require.Equal(t, LevelTrace, ConfigLevelStringToSlogLevel("TRACE"))
	require.Equal(t, slog.LevelWarn, ConfigLevelStringToSlogLevel("warning"))
	require.Equal(t, slog.LevelInfo, ConfigLevelStringToSlogLevel(" info "))
	require.Equal(t, slog.LevelError, ConfigLevelStringToSlogLevel("bogus"))
}

func TestNewWritesLogFile(t *testing.T) {
	var errOut bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "tabulator.log")

	logger, closeLog, err := New(Options{Level: "trace", File: path, ErrOut: &errOut})
	require.NoError(t, err)

	logger.Log(context.Background(), LevelTrace, "tracing")
	logger.Error("broken")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "level=TRACE")
	require.Contains(t, string(data), "broken")
	require.Equal(t, "Error: broken\n", errOut.String())
}

func TestFromContext(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := context.WithValue(context.Background(), LoggerKey, logger)
	require.Same(t, logger, FromContext(ctx))
}
