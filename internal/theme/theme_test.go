package theme

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	names := Available()
	require.Contains(t, names, DefaultName)
	require.Contains(t, names, "tabulator-light")
	require.Contains(t, names, "solarized")

	p, ok := Get(" Nord ")
	require.True(t, ok)
	require.Equal(t, "Nord", p.DisplayName)

	_, ok = Get("missing")
	require.False(t, ok)
}

func TestSetCurrent(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, SetCurrent(DefaultName)) })

	require.NoError(t, SetCurrent("gruvbox"))
	require.Equal(t, "gruvbox", Current().Name)

	require.NoError(t, SetCurrent(""))
	require.Equal(t, DefaultName, Current().Name)

	require.ErrorContains(t, SetCurrent("nope"), `unknown color theme "nope"`)
}

func TestFromContext(t *testing.T) {
	p, _ := Get("solarized")
	ctx := ContextWithPalette(context.Background(), p)
	require.Equal(t, "solarized", FromContext(ctx).Name)
	require.Equal(t, Current().Name, FromContext(context.Background()).Name)
}

func TestFlag(t *testing.T) {
	f := NewFlag("unknown")
	require.Equal(t, DefaultName, f.String())
	require.NoError(t, f.Set("NORD"))
	require.Equal(t, "nord", f.String())
	require.Error(t, f.Set("bogus"))
	require.Equal(t, "string", f.Type())
}

func TestDerivedPalettesAreComplete(t *testing.T) {
	for _, b := range builtinBases {
		p := paletteFromBase(b)
		for _, token := range []Token{
			ColorTextPrimary, ColorTextSecondary, ColorTextMuted, ColorBorder,
			ColorAccent, ColorSuccess, ColorInfo, ColorWarning, ColorDanger, ColorHighlight,
		} {
			c := p.Color(token)
			require.Len(t, c.Light, 7, "%s %s", b.id, token)
			require.Len(t, c.Dark, 7, "%s %s", b.id, token)
			require.True(t, strings.HasPrefix(c.Light, "#"))
		}
	}
}

func TestNormalizeHex(t *testing.T) {
	require.Equal(t, "#AABBCC", normalizeHex("abc"))
	require.Equal(t, "#A1B2C3", normalizeHex(" #a1b2c3 "))
	require.Equal(t, "#A1B2C3", normalizeHex("a1b2c3ff"))
	require.Equal(t, "", normalizeHex(""))
}

func TestBlendHex(t *testing.T) {
	require.Equal(t, "#FFFFFF", lightenHex("#000000", 1))
	require.Equal(t, "#000000", darkenHex("#FFFFFF", 1))
	require.Equal(t, "", lightenHex("", 0.5))
}

func TestParseColorContext(t *testing.T) {
	for _, name := range ColorContextNames() {
		cc, err := ParseColorContext(name)
		require.NoError(t, err)
		require.Equal(t, name, cc.String())
	}

	cc, err := ParseColorContext("MSG_ERROR")
	require.NoError(t, err)
	require.Equal(t, MsgError, cc)

	_, err = ParseColorContext("loud")
	require.Error(t, err)

	_, ok := Default.Token()
	require.False(t, ok)
	token, ok := Highlight.Token()
	require.True(t, ok)
	require.Equal(t, ColorHighlight, token)
}

func TestParseColorMode(t *testing.T) {
	m, err := ParseColorMode("")
	require.NoError(t, err)
	require.Equal(t, ColorAuto, m)

	m, err = ParseColorMode("Always")
	require.NoError(t, err)
	require.Equal(t, ColorAlways, m)

	_, err = ParseColorMode("sometimes")
	require.Error(t, err)
}

func TestPainter(t *testing.T) {
	var buf bytes.Buffer

	never := NewPainter(&buf, ColorNever, Current())
	require.False(t, never.Colored())
	require.Equal(t, "text", never.Paint("text", Highlight))
	require.Equal(t, "text", never.Paint("\x1b[31mtext\x1b[0m", Highlight))

	always := NewPainter(&buf, ColorAlways, Current())
	require.True(t, always.Colored())
	painted := always.Paint("text", Highlight)
	require.NotEqual(t, "text", painted)
	require.Equal(t, "text", ansi.Strip(painted))
	require.Equal(t, painted, always.Paint(painted, Highlight))
	require.Equal(t, "text", always.Paint("text", Default))
	require.Equal(t, "", always.Paint("", Highlight))

	require.False(t, PlainPainter().Colored())

	// writing to a non-terminal never detects color support
	auto := NewPainter(&buf, ColorAuto, Current())
	require.False(t, auto.Colored())
	require.Zero(t, buf.Len())
}
