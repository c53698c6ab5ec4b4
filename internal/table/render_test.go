package table

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func packages(style LineStyle, margin int) *Table {
	tbl := New(WithStyle(style), WithMargin(margin))
	tbl.SetHeader(NewRow("Name", "Version"))
	tbl.Add(NewRow("zypper", "1.14"), NewRow("libzypp", "17.3"))
	return tbl
}

func requireOutput(t *testing.T, want string, tbl interface{ String() string }) {
	t.Helper()
	if diff := cmp.Diff(want, tbl.String()); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestRenderStyles(t *testing.T) {
	tests := []struct {
		name   string
		style  LineStyle
		margin int
		want   string
	}{
		{
			name:  "none",
			style: None,
			want: "" +
				"Name    | Version\n" +
				"zypper  | 1.14\n" +
				"libzypp | 17.3\n",
		},
		{
			name:  "light",
			style: Light,
			want: "" +
				"┌─────────┬─────────┐\n" +
				"│ Name    │ Version │\n" +
				"├─────────┼─────────┤\n" +
				"│ zypper  │ 1.14    │\n" +
				"│ libzypp │ 17.3    │\n" +
				"└─────────┴─────────┘\n",
		},
		{
			name:   "ascii with margin",
			style:  Ascii,
			margin: 1,
			want: "" +
				"+-----------+-----------+\n" +
				"|  Name     |  Version  |\n" +
				"+-----------+-----------+\n" +
				"|  zypper   |  1.14     |\n" +
				"|  libzypp  |  17.3     |\n" +
				"+-----------+-----------+\n",
		},
		{
			name:  "double",
			style: Double,
			want: "" +
				"╔═════════╦═════════╗\n" +
				"║ Name    ║ Version ║\n" +
				"╠═════════╬═════════╣\n" +
				"║ zypper  ║ 1.14    ║\n" +
				"║ libzypp ║ 17.3    ║\n" +
				"╚═════════╩═════════╝\n",
		},
		{
			name:  "colon",
			style: Colon,
			want: "" +
				"Name    : Version\n" +
				"zypper  : 1.14\n" +
				"libzypp : 17.3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireOutput(t, tt.want, packages(tt.style, tt.margin))
		})
	}
}

func TestRenderEmptyTable(t *testing.T) {
	require.Empty(t, New().String())
}

func TestRenderWithoutHeader(t *testing.T) {
	tbl := New(WithStyle(Heavy))
	tbl.Add(NewRow("a", "bb"))

	requireOutput(t, ""+
		"┏━━━┳━━━━┓\n"+
		"┃ a ┃ bb ┃\n"+
		"┗━━━┻━━━━┛\n", tbl)
}

func TestRenderRaggedRows(t *testing.T) {
	tbl := New(WithStyle(None))
	tbl.SetHeader(NewRow("a", "b", "c"))
	tbl.Add(NewRow("1"), NewRow("22", "x", "y"))

	requireOutput(t, ""+
		"a  | b | c\n"+
		"1  |   |\n"+
		"22 | x | y\n", tbl)

	tbl.SetLineStyle(Ascii)
	requireOutput(t, ""+
		"+----+---+---+\n"+
		"| a  | b | c |\n"+
		"+----+---+---+\n"+
		"| 1  |   |   |\n"+
		"| 22 | x | y |\n"+
		"+----+---+---+\n", tbl)
}

func TestRenderDetails(t *testing.T) {
	tbl := New(WithStyle(Ascii))
	r := NewRow("pkg", "1.0")
	r.AddDetail("first", "second")
	tbl.Add(r, NewRow("other", "2.0"))

	requireOutput(t, ""+
		"+-------+-----+\n"+
		"| pkg   | 1.0 |\n"+
		"      first\n"+
		"      second\n"+
		"| other | 2.0 |\n"+
		"+-------+-----+\n", tbl)
}

func TestRenderColumnWidths(t *testing.T) {
	rows := [][]string{
		{"x", "a longer cell", "日本語"},
		{"wider key", "", "c"},
		{"", "b"},
	}
	for _, margin := range []int{0, 1, 3} {
		tbl := New(WithStyle(None), WithMargin(margin))
		tbl.SetHeader(NewRow("K", "Value", "Wide"))
		for _, r := range rows {
			tbl.Add(NewRow(r...))
		}

		want := []int{9, 13, 6}
		header := strings.Split(tbl.String(), "\n")[0]
		cells := strings.Split(header, " | ")
		require.Len(t, cells, 3)
		for i := range 2 {
			require.Equal(t, want[i]+2*margin, displayWidth(cells[i]), "margin %d column %d", margin, i)
		}
	}
}

func TestRenderNoneRoundTrip(t *testing.T) {
	rows := [][]string{
		{"alpha", "beta", "gamma"},
		{"δ", "", "long value"},
		{"x", "y", "z"},
	}
	tbl := New(WithStyle(None))
	for _, r := range rows {
		tbl.Add(NewRow(r...))
	}

	lines := strings.Split(strings.TrimSuffix(tbl.String(), "\n"), "\n")
	require.Len(t, lines, len(rows))
	for i, line := range lines {
		cells := strings.Split(line, " | ")
		for j := range cells {
			cells[j] = strings.TrimRight(cells[j], " ")
		}
		require.Equal(t, rows[i], cells)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	tbl := New(WithStyle(Light), WithScreenWidth(20), WithWrap(-1), WithAbbrev(1))
	tbl.SetHeader(NewRow("ID", "Description", "State"))
	r := NewRow("1", "something rather long to describe", "ok")
	r.AddDetail("detail")
	tbl.Add(r)

	first := tbl.String()
	require.Equal(t, first, tbl.String())
	require.Equal(t, 33, tbl.ColumnWidth(1))

	var buf bytes.Buffer
	n, err := tbl.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(len(first)), n)
	require.Equal(t, first, buf.String())
}

func wideTable(style LineStyle) *Table {
	tbl := New(WithStyle(style), WithScreenWidth(30))
	tbl.Add(NewRow("k1", "aaaaaaaaaa", "bbbbbbbbbb", "cccccccccc"))
	return tbl
}

func TestRenderNoWrapIgnoresScreenWidth(t *testing.T) {
	requireOutput(t, "k1 | aaaaaaaaaa | bbbbbbbbbb | cccccccccc\n", wideTable(None))
}

func TestRenderAutoWrap(t *testing.T) {
	tbl := wideTable(None)
	tbl.Wrap(-1)

	requireOutput(t, ""+
		"k1 | aaaaaaaaaa | bbbbbbbbbb\n"+
		"\n"+
		"k1 | cccccccccc\n", tbl)
}

func TestRenderForcedBreak(t *testing.T) {
	tbl := wideTable(None)
	tbl.Wrap(1)

	requireOutput(t, ""+
		"k1 | aaaaaaaaaa\n"+
		"\n"+
		"k1 | bbbbbbbbbb | cccccccccc\n", tbl)
}

func TestRenderForcedBreakOnlyWhenTooWide(t *testing.T) {
	tbl := wideTable(None)
	tbl.Wrap(1)
	tbl.SetScreenWidth(200)

	requireOutput(t, "k1 | aaaaaaaaaa | bbbbbbbbbb | cccccccccc\n", tbl)
}

func TestRenderWrapFramed(t *testing.T) {
	tbl := wideTable(Ascii)
	tbl.SetHeader(NewRow("K", "A", "B", "C"))
	r := NewRow("k2", "a", "b", "c")
	r.AddDetail("note")
	tbl.Add(r)
	tbl.Wrap(-1)

	out := tbl.String()
	blocks := strings.Split(out, "\n\n")
	require.Len(t, blocks, 3)

	seen := map[string]int{}
	for i, block := range blocks {
		lines := strings.Split(strings.TrimSuffix(block, "\n"), "\n")
		for _, line := range lines {
			require.LessOrEqual(t, displayWidth(line), 30, line)
		}
		header := lines[1]
		require.True(t, strings.HasPrefix(header, "| K "), header)
		for _, name := range []string{"A", "B", "C"} {
			if strings.Contains(header, "| "+name+" ") {
				seen[name]++
			}
		}
		require.Equal(t, i == 0, strings.Contains(block, "note"))
	}
	require.Equal(t, map[string]int{"A": 1, "B": 1, "C": 1}, seen)
}

func TestRenderAbbreviation(t *testing.T) {
	tbl := New(WithStyle(None), WithScreenWidth(20), WithWrap(-1), WithAbbrev(1))
	tbl.SetHeader(NewRow("ID", "Description"))
	tbl.Add(NewRow("id", "a very long description text"), NewRow("2", "short"))

	requireOutput(t, ""+
		"ID | Description\n"+
		"id | a very long de…\n"+
		"2  | short\n", tbl)

	// the stored rows are untouched
	require.Equal(t, "a very long description text", tbl.Rows()[0].Columns()[1])
}

func TestRenderAbbreviationKeepsHeaderWidth(t *testing.T) {
	tbl := New(WithStyle(None), WithScreenWidth(10), WithWrap(-1), WithAbbrev(1))
	tbl.SetHeader(NewRow("ID", "Description"))
	tbl.Add(NewRow("id", "a very long description text"))

	requireOutput(t, ""+
		"ID | Description\n"+
		"id | a very lon…\n", tbl)
}

func TestRenderAbbreviationAfterSplit(t *testing.T) {
	a := strings.Repeat("a", 40)
	b := strings.Repeat("b", 46)
	tbl := New(WithStyle(None), WithWrap(-1), WithScreenWidth(50), WithAbbrev(1))
	tbl.Add(NewRow("k", a, b))

	// column 1 fits its own block, so it keeps its full text
	requireOutput(t, "k | "+a+"\n\nk | "+b+"\n", tbl)

	// only a block that is still too wide after the split is abbreviated
	c := strings.Repeat("c", 40)
	tbl = New(WithStyle(None), WithWrap(-1), WithScreenWidth(50), WithAbbrev(3))
	tbl.Add(NewRow("k", a, c, strings.Repeat("b", 60)))

	requireOutput(t, ""+
		"k | "+a+"\n\n"+
		"k | "+c+"\n\n"+
		"k | "+strings.Repeat("b", 45)+"…\n", tbl)
}

func TestRenderKeepsTrailingSpacesOfCells(t *testing.T) {
	tbl := New(WithStyle(None))
	tbl.Add(NewRow("x ", "y "), NewRow("long", ""))

	requireOutput(t, ""+
		"x    | y \n"+
		"long |\n", tbl)
}

func TestRenderAbbreviationIgnoresIneligibleColumns(t *testing.T) {
	tbl := New(WithStyle(None), WithScreenWidth(20), WithWrap(-1), WithAbbrev(0))
	tbl.Add(NewRow("id", "a very long description text"))

	requireOutput(t, "id | a very long description text\n", tbl)
}

func TestWritePlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, packages(Light, 2).WritePlain(&buf))
	require.Equal(t, "Name\tVersion\nzypper\t1.14\nlibzypp\t17.3\n", buf.String())
}

type failingWriter struct{}

var errWrite = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

func TestWriteErrorsArePropagated(t *testing.T) {
	tbl := packages(Light, 0)

	_, err := tbl.WriteTo(failingWriter{})
	require.ErrorIs(t, err, errWrite)

	require.ErrorIs(t, tbl.WritePlain(failingWriter{}), errWrite)

	_, err = NewPropertyTable().Add("k", "v").WriteTo(failingWriter{})
	require.ErrorIs(t, err, errWrite)
}
