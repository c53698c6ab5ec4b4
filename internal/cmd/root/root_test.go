package root

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kong/tabulator/internal/build"
	"github.com/kong/tabulator/internal/iostreams"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, input string, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("COLUMNS", "")
	streams, in, out, errOut := iostreams.NewTestIOStreams()
	in.WriteString(input)
	rootCmd.SetArgs(args)
	code := Execute(t.Context(), &streams, &build.Info{Version: "1.2.3", Commit: "abc", Date: "2024-05-01"})
	return code, out.String(), errOut.String()
}

func TestExecuteVersion(t *testing.T) {
	cfg := writeConfig(t, "log-level: error\n")
	code, out, _ := execute(t, "", "version", "--config-file", cfg, "-o", "json")
	require.Equal(t, 0, code)

	var info build.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	require.Equal(t, build.Info{Version: "1.2.3"}, info)
}

func TestExecuteRenderUsesConfigFile(t *testing.T) {
	cfg := writeConfig(t, "table:\n  style: none\n")
	code, out, errOut := execute(t, "a,b\n1,2\n", "render", "--config-file", cfg, "-o", "text")
	require.Equal(t, 0, code, errOut)
	require.Equal(t, "a | b\n1 | 2\n", out)
}

func TestExecuteReportsExecutionErrors(t *testing.T) {
	cfg := writeConfig(t, "log-level: error\n")
	code, out, errOut := execute(t, "", "render", "--config-file", cfg, "-o", "text",
		filepath.Join(t.TempDir(), "missing.csv"))
	require.Equal(t, 1, code)
	require.Empty(t, out)
	require.Contains(t, errOut, "Error:")
	require.Contains(t, errOut, "failed to read input")
}

func TestExecuteMissingConfigFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	code, _, errOut := execute(t, "", "version", "--config-file", missing)
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "does not exist")
	require.Contains(t, errOut, "  hint : check the file given with --config-file\n")
}

func TestExecuteUnknownFlagShowsUsageHint(t *testing.T) {
	cfg := writeConfig(t, "log-level: error\n")
	code, out, errOut := execute(t, "", "version", "--config-file", cfg, "--bogus")
	require.Equal(t, 1, code)
	require.Empty(t, out)
	require.True(t, strings.HasPrefix(errOut, "Error: unknown flag: --bogus\n"), errOut)
	require.Contains(t, errOut, "hint : run 'tabulator version --help' for usage")
	require.NotContains(t, errOut, "Usage:")
}

func TestExecuteReportsErrorContext(t *testing.T) {
	cfg := writeConfig(t, "log-level: error\n")
	code, _, errOut := execute(t, "[1, 2", "render", "--config-file", cfg, "-o", "text", "--format", "json")
	require.Equal(t, 1, code)
	require.True(t, strings.HasPrefix(errOut, "Error: failed to decode input\n"), errOut)
	require.Contains(t, errOut, "  format : json\n")
	require.Contains(t, errOut, "  source : -\n")
}
