package normalizers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLongDesc(t *testing.T) {
	got := LongDesc(`
		Render reads a document and prints it
		as a table.

		Nested values are printed as JSON.
		`)

	require.Equal(t, ""+
		"Render reads a document and prints it\n"+
		"as a table.\n"+
		"\n"+
		"Nested values are printed as JSON.", got)
}

func TestLongDescWrapsLongLines(t *testing.T) {
	words := strings.Repeat("word ", 30)
	got := LongDesc("\n\t" + words + "\n")

	for line := range strings.SplitSeq(got, "\n") {
		require.LessOrEqual(t, len(line), HelpWidth, line)
	}
	require.Equal(t, strings.Fields(words), strings.Fields(got))
}

func TestExamples(t *testing.T) {
	got := Examples(`
		# Render a file
		tabulator render repos.csv
		# Continue a long command
		tabulator render repos.json \
		    --sort size
		`)

	require.Equal(t, ""+
		"  # Render a file\n"+
		"  tabulator render repos.csv\n"+
		"  # Continue a long command\n"+
		"  tabulator render repos.json \\\n"+
		"      --sort size", got)

	require.Empty(t, Examples(""))
	require.Empty(t, Examples("\n\t\t\n"))
}
