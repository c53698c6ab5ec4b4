package theme

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultName is the built-in theme used when no override is provided.
const DefaultName = "tabulator-dark"

// Token represents a semantic color slot.
type Token string

const (
	ColorTextPrimary   Token = "text.primary"
	ColorTextSecondary Token = "text.secondary"
	ColorTextMuted     Token = "text.muted"
	ColorBorder        Token = "border"
	ColorAccent        Token = "accent"
	ColorSuccess       Token = "success"
	ColorInfo          Token = "info"
	ColorWarning       Token = "warning"
	ColorDanger        Token = "danger"
	ColorHighlight     Token = "highlight"
)

// Color stores light and dark variants for adaptive rendering.
type Color struct {
	Light string
	Dark  string
}

// Adaptive converts the color into a lipgloss adaptive color.
func (c Color) Adaptive() lipgloss.AdaptiveColor {
	light, dark := strings.TrimSpace(c.Light), strings.TrimSpace(c.Dark)
	switch {
	case light == "" && dark == "":
		return lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	case light == "":
		light = dark
	case dark == "":
		dark = light
	}
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Palette represents a concrete theme.
type Palette struct {
	Name        string
	DisplayName string
	Colors      map[Token]Color
}

// Color returns a color for the provided token, falling back to the default palette.
func (p Palette) Color(token Token) Color {
	if p.Colors != nil {
		if c, ok := p.Colors[token]; ok {
			return ensureColor(c, token)
		}
	}
	return fallbackColor(token)
}

// Adaptive returns the lipgloss adaptive color for the provided token.
func (p Palette) Adaptive(token Token) lipgloss.AdaptiveColor {
	return p.Color(token).Adaptive()
}

type contextKey struct{}

var (
	registryOnce sync.Once
	registryMu   sync.RWMutex
	palettes     map[string]Palette
	current      Palette
	defaultPal   Palette
	themeKey     contextKey
)

// ContextWithPalette stores the palette on the context.
func ContextWithPalette(ctx context.Context, p Palette) context.Context {
	return context.WithValue(ctx, themeKey, p)
}

// FromContext returns the palette stored on the context or the current palette.
func FromContext(ctx context.Context) Palette {
	if ctx == nil {
		return Current()
	}
	if p, ok := ctx.Value(themeKey).(Palette); ok {
		return p
	}
	return Current()
}

// Available returns the list of registered theme IDs (sorted).
func Available() []string {
	ensureRegistry()

	registryMu.RLock()
	defer registryMu.RUnlock()

	keys := make([]string, 0, len(palettes))
	for k := range palettes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Exists returns true when a theme is registered.
func Exists(name string) bool {
	_, ok := Get(name)
	return ok
}

// Get returns the palette with the provided name.
func Get(name string) (Palette, bool) {
	ensureRegistry()

	registryMu.RLock()
	defer registryMu.RUnlock()

	p, ok := palettes[sanitizeName(name)]
	return p, ok
}

// SetCurrent sets the active palette.
func SetCurrent(name string) error {
	ensureRegistry()

	name = sanitizeName(name)
	if name == "" {
		name = DefaultName
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	p, ok := palettes[name]
	if !ok {
		return fmt.Errorf("unknown color theme %q", name)
	}
	current = p
	return nil
}

// Current returns the active palette.
func Current() Palette {
	ensureRegistry()

	registryMu.RLock()
	defer registryMu.RUnlock()

	return current
}

// Flag is a pflag.Value implementation for theme IDs.
type Flag struct {
	value string
}

// NewFlag returns a Flag with the provided default value.
func NewFlag(defaultValue string) *Flag {
	name := sanitizeName(defaultValue)
	if name == "" || !Exists(name) {
		name = DefaultName
	}
	return &Flag{value: name}
}

// String implements pflag.Value.
func (f *Flag) String() string {
	if f == nil {
		return DefaultName
	}
	return f.value
}

// Set implements pflag.Value.
func (f *Flag) Set(v string) error {
	name := sanitizeName(v)
	if name == "" {
		name = DefaultName
	}
	if !Exists(name) {
		return fmt.Errorf("invalid color theme %q", v)
	}
	f.value = name
	return nil
}

// Type implements pflag.Value.
func (f *Flag) Type() string {
	return "string"
}

// ensureRegistry lazily loads the palettes.
func ensureRegistry() {
	registryOnce.Do(func() {
		registryMu.Lock()
		defer registryMu.Unlock()

		palettes = make(map[string]Palette)

		registerPalette(darkPalette())
		registerPalette(lightPalette())
		defaultPal = palettes[DefaultName]
		current = defaultPal

		for _, b := range builtinBases {
			registerPalette(paletteFromBase(b))
		}
	})
}

func registerPalette(p Palette) {
	if p.Name == "" {
		return
	}
	if p.DisplayName == "" {
		p.DisplayName = p.Name
	}
	if p.Colors == nil {
		p.Colors = map[Token]Color{}
	}
	p.Name = sanitizeName(p.Name)
	palettes[p.Name] = p
}

func ensureColor(c Color, token Token) Color {
	if strings.TrimSpace(c.Light) == "" && strings.TrimSpace(c.Dark) == "" {
		return fallbackColor(token)
	}
	if strings.TrimSpace(c.Light) == "" {
		c.Light = c.Dark
	}
	if strings.TrimSpace(c.Dark) == "" {
		c.Dark = c.Light
	}
	return c
}

func fallbackColor(token Token) Color {
	if defaultPal.Colors != nil {
		if c, ok := defaultPal.Colors[token]; ok {
			return ensureColor(c, token)
		}
	}
	return Color{Light: "#000000", Dark: "#FFFFFF"}
}

func sanitizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

// base is the handful of terminal colors a derived palette is built from.
type base struct {
	id, display string
	// terminal palette entries as hex strings
	fg, muted, cyan, green, blue, yellow, red string
}

var builtinBases = []base{
	{
		id: "solarized", display: "Solarized",
		fg: "#839496", muted: "#586E75", cyan: "#2AA198", green: "#859900",
		blue: "#268BD2", yellow: "#B58900", red: "#DC322F",
	},
	{
		id: "gruvbox", display: "Gruvbox",
		fg: "#EBDBB2", muted: "#928374", cyan: "#689D6A", green: "#98971A",
		blue: "#458588", yellow: "#D79921", red: "#CC241D",
	},
	{
		id: "nord", display: "Nord",
		fg: "#D8DEE9", muted: "#4C566A", cyan: "#88C0D0", green: "#A3BE8C",
		blue: "#81A1C1", yellow: "#EBCB8B", red: "#BF616A",
	},
}

func paletteFromBase(b base) Palette {
	return Palette{
		Name:        b.id,
		DisplayName: b.display,
		Colors: map[Token]Color{
			ColorTextPrimary:   pairColor(darkenHex(b.fg, 0.6), b.fg),
			ColorTextSecondary: derivedTextSecondary(b.fg),
			ColorTextMuted:     mutedColor(b.muted),
			ColorBorder:        borderColor(b.muted),
			ColorAccent:        pairColor(darkenHex(b.cyan, 0.2), b.cyan),
			ColorSuccess:       pairColor(darkenHex(b.green, 0.2), b.green),
			ColorInfo:          pairColor(darkenHex(b.blue, 0.2), b.blue),
			ColorWarning:       pairColor(darkenHex(b.yellow, 0.25), b.yellow),
			ColorDanger:        pairColor(darkenHex(b.red, 0.1), b.red),
			ColorHighlight:     pairColor(darkenHex(b.cyan, 0.35), lightenHex(b.cyan, 0.2)),
		},
	}
}

func singleColor(hex string) Color {
	h := normalizeHex(hex)
	return Color{Light: h, Dark: h}
}

func pairColor(light, dark string) Color {
	return Color{
		Light: normalizeHex(light),
		Dark:  normalizeHex(dark),
	}
}

func mutedColor(hex string) Color {
	base := normalizeHex(hex)
	if base == "" {
		return Color{Light: "#646A7A", Dark: "#7C8298"}
	}
	return Color{
		Light: darkenHex(base, 0.35),
		Dark:  lightenHex(base, 0.35),
	}
}

func derivedTextSecondary(hex string) Color {
	base := normalizeHex(hex)
	if base == "" {
		return Color{Light: "#1F2026", Dark: "#D7D9E3"}
	}
	return Color{
		Light: darkenHex(base, 0.5),
		Dark:  lightenHex(base, 0.2),
	}
}

func borderColor(hex string) Color {
	base := normalizeHex(hex)
	if base == "" {
		return Color{Light: "#4A4D65", Dark: "#4A4D65"}
	}
	return Color{
		Light: darkenHex(base, 0.15),
		Dark:  lightenHex(base, 0.25),
	}
}

func normalizeHex(hex string) string {
	trimmed := strings.TrimSpace(strings.TrimPrefix(hex, "#"))
	if trimmed == "" {
		return ""
	}
	switch len(trimmed) {
	case 3:
		var b strings.Builder
		b.WriteString("#")
		for _, r := range trimmed {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		return strings.ToUpper(b.String())
	case 6:
		return "#" + strings.ToUpper(trimmed)
	default:
		if len(trimmed) > 6 {
			return "#" + strings.ToUpper(trimmed[:6])
		}
		return "#" + strings.ToUpper(trimmed)
	}
}

func lightenHex(hex string, amount float64) string {
	return blendHex(hex, colorful.Color{R: 1, G: 1, B: 1}, amount)
}

func darkenHex(hex string, amount float64) string {
	return blendHex(hex, colorful.Color{R: 0, G: 0, B: 0}, amount)
}

func blendHex(hex string, with colorful.Color, amount float64) string {
	h := normalizeHex(hex)
	if h == "" {
		return ""
	}
	c, err := colorful.Hex(h)
	if err != nil {
		return h
	}
	return strings.ToUpper(c.BlendLab(with, min(max(amount, 0), 1)).Clamped().Hex())
}

func darkPalette() Palette {
	return Palette{
		Name:        DefaultName,
		DisplayName: "Tabulator Dark",
		Colors: map[Token]Color{
			ColorTextPrimary:   pairColor("#1B1D22", "#F2F3F5"),
			ColorTextSecondary: pairColor("#3D4048", "#C9CCD3"),
			ColorTextMuted:     pairColor("#6B6F7A", "#8A8F9B"),
			ColorBorder:        pairColor("#B7BAC2", "#4A4D55"),
			ColorAccent:        pairColor("#0A6BBF", "#5AB0F6"),
			ColorSuccess:       pairColor("#1C7C3A", "#5FD68A"),
			ColorInfo:          pairColor("#2859A8", "#7AA7F0"),
			ColorWarning:       pairColor("#9A6700", "#F2C14E"),
			ColorDanger:        pairColor("#B3261E", "#F2726B"),
			ColorHighlight:     pairColor("#0B4F8A", "#8FD3FF"),
		},
	}
}

func lightPalette() Palette {
	return Palette{
		Name:        "tabulator-light",
		DisplayName: "Tabulator Light",
		Colors: map[Token]Color{
			ColorTextPrimary:   singleColor("#1B1D22"),
			ColorTextSecondary: singleColor("#3D4048"),
			ColorTextMuted:     singleColor("#6B6F7A"),
			ColorBorder:        singleColor("#B7BAC2"),
			ColorAccent:        singleColor("#0A6BBF"),
			ColorSuccess:       singleColor("#1C7C3A"),
			ColorInfo:          singleColor("#2859A8"),
			ColorWarning:       singleColor("#9A6700"),
			ColorDanger:        singleColor("#B3261E"),
			ColorHighlight:     singleColor("#0B4F8A"),
		},
	}
}
