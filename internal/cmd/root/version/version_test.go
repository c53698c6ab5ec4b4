package version

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/kong/tabulator/internal/build"
	"github.com/kong/tabulator/internal/cmd/common"
	"github.com/kong/tabulator/internal/config"
	"github.com/kong/tabulator/internal/iostreams"
	"github.com/kong/tabulator/test/cmd"
	testConfig "github.com/kong/tabulator/test/config"
)

func newHelper(all *iostreams.IOStreams, format common.OutputFormat, showCommit bool) *cmd.MockHelper {
	return &cmd.MockHelper{
		GetOutputFormatMock: func() (common.OutputFormat, error) {
			return format, nil
		},
		GetConfigMock: func() (config.Hook, error) {
			return &testConfig.MockConfigHook{
				GetBoolMock: func(_ string) bool {
					return showCommit
				},
			}, nil
		},
		GetStreamsMock: func() *iostreams.IOStreams {
			return all
		},
		GetLoggerMock: func() (*slog.Logger, error) {
			return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
		},
		GetBuildInfoMock: func() (*build.Info, error) {
			return &build.Info{
				Version: "dev",
				Commit:  "abc123",
				Date:    "2024-05-01",
			}, nil
		},
	}
}

func Test_VersionCmd(t *testing.T) {
	all, _, out, _ := iostreams.NewTestIOStreams()
	helper := newHelper(&all, common.TEXT, false)

	if err := validate(helper); err != nil {
		t.Errorf("Error validating context: %v", err)
	}

	if err := run(helper); err != nil {
		t.Errorf("Error running context: %v", err)
	}

	expectedOutput := "dev\n"
	if output := out.String(); output != expectedOutput {
		t.Errorf("Unexpected output: %s", output)
	}
}

func Test_VersionCmdShowCommit(t *testing.T) {
	all, _, out, _ := iostreams.NewTestIOStreams()

	if err := run(newHelper(&all, common.TEXT, true)); err != nil {
		t.Errorf("Error running context: %v", err)
	}

	expectedOutput := "dev (abc123, 2024-05-01)\n"
	if output := out.String(); output != expectedOutput {
		t.Errorf("Unexpected output: %s", output)
	}
}

func Test_VersionCmdJsonOutput(t *testing.T) {
	all, _, out, _ := iostreams.NewTestIOStreams()

	if err := run(newHelper(&all, common.JSON, false)); err != nil {
		t.Errorf("Error running context: %v", err)
	}

	var actual map[string]any
	if err := json.Unmarshal(out.Bytes(), &actual); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, out.String())
	}
	expected := map[string]any{"version": "dev"}
	if len(actual) != 1 || actual["version"] != expected["version"] {
		t.Errorf("Output does not match expected.\nExpected: %v\nReceived: %v\n", expected, actual)
	}
}
