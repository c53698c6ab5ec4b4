package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kong/tabulator/internal/iostreams"
	cmdtest "github.com/kong/tabulator/test/cmd"
	"github.com/stretchr/testify/require"
)

func TestReadSource(t *testing.T) {
	streams, in, _, _ := iostreams.NewTestIOStreams()
	in.WriteString("from stdin")
	helper := &cmdtest.MockHelper{
		GetStreamsMock: func() *iostreams.IOStreams { return &streams },
	}

	require.Equal(t, StdinSource, SourceName(helper))
	data, err := ReadSource(helper)
	require.NoError(t, err)
	require.Equal(t, "from stdin", string(data))

	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0o600))
	helper.GetArgsMock = func() []string { return []string{path} }
	require.Equal(t, path, SourceName(helper))
	data, err = ReadSource(helper)
	require.NoError(t, err)
	require.Equal(t, "a,b\n", string(data))

	helper.GetArgsMock = func() []string { return []string{filepath.Join(t.TempDir(), "missing.csv")} }
	_, err = ReadSource(helper)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadSourceWithoutInput(t *testing.T) {
	helper := &cmdtest.MockHelper{
		GetStreamsMock: func() *iostreams.IOStreams { return &iostreams.IOStreams{} },
		GetArgsMock:    func() []string { return []string{StdinSource} },
	}
	data, err := ReadSource(helper)
	require.NoError(t, err)
	require.Empty(t, data)
}
