package jq

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/itchyny/gojq"
	cmdpkg "github.com/kong/tabulator/internal/cmd"
	"github.com/kong/tabulator/internal/config"
	"github.com/kong/tabulator/internal/iostreams"
	"github.com/kong/tabulator/internal/theme"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	FlagName                    = "jq"
	ColorFlagName               = "jq-color"
	ColorThemeFlagName          = "jq-color-theme"
	DefaultExpressionConfigPath = "jq.default-expression"
	ColorEnabledConfigPath      = "jq.color.enabled"
	ColorThemeConfigPath        = "jq.color.theme"
	DefaultTheme                = "friendly"
)

var jqQueryCache sync.Map

// Settings controls filtering of structured input and colorizing of JSON
// output.
type Settings struct {
	Filter    string
	ColorMode theme.ColorMode
	Theme     string
}

func AddFlags(flags *pflag.FlagSet) {
	flags.String(
		FlagName,
		"",
		"Filter JSON or YAML input with a jq expression before tabulating it (powered by gojq)",
	)

	jqColor := cmdpkg.NewEnum([]string{
		string(theme.ColorAuto),
		string(theme.ColorAlways),
		string(theme.ColorNever),
	}, string(theme.ColorAuto))

	flags.Var(
		jqColor,
		ColorFlagName,
		fmt.Sprintf(`Controls colorized JSON output.
- Config path: [ %s ]
- Allowed    : [ %s ]`, ColorEnabledConfigPath, jqColor.Usage()),
	)

	flags.String(
		ColorThemeFlagName,
		DefaultTheme,
		fmt.Sprintf(`Select the color theme used for JSON output.
- Config path: [ %s ]
- Examples   : [ friendly, github-dark, dracula ]`, ColorThemeConfigPath),
	)
}

func BindFlags(cfg config.Hook, flags *pflag.FlagSet) error {
	if cfg == nil || flags == nil {
		return nil
	}

	bindings := []struct{ flag, cfgPath string }{
		{ColorFlagName, ColorEnabledConfigPath},
		{ColorThemeFlagName, ColorThemeConfigPath},
	}

	for _, b := range bindings {
		if f := flags.Lookup(b.flag); f != nil {
			if err := cfg.BindFlag(b.cfgPath, f); err != nil {
				return err
			}
		}
	}
	return nil
}

func ResolveSettings(command *cobra.Command, cfg config.Hook) (Settings, error) {
	settings := Settings{
		Theme:     DefaultTheme,
		ColorMode: theme.ColorAuto,
	}

	if command == nil || command.Flags().Lookup(FlagName) == nil {
		return settings, nil
	}
	flags := command.Flags()

	jqFilter, err := flags.GetString(FlagName)
	if err != nil {
		return Settings{}, err
	}
	jqFilter = strings.TrimSpace(jqFilter)
	if flags.Changed(FlagName) && jqFilter == "" {
		jqFilter = "."
	}
	settings.Filter = jqFilter

	if cfg == nil {
		return settings, nil
	}

	if !flags.Changed(FlagName) {
		if def := strings.TrimSpace(cfg.GetString(DefaultExpressionConfigPath)); def != "" {
			settings.Filter = def
		}
	}

	mode, err := theme.ParseColorMode(cfg.GetString(ColorEnabledConfigPath))
	if err != nil {
		return Settings{}, &cmdpkg.ConfigurationError{Err: err}
	}
	settings.ColorMode = mode

	if t := strings.TrimSpace(cfg.GetString(ColorThemeConfigPath)); t != "" {
		settings.Theme = t
	}
	return settings, nil
}

func HasFilter(settings Settings) bool {
	return strings.TrimSpace(settings.Filter) != ""
}

// Apply runs filter over a decoded document. No results yield nil, one
// result is returned as is, and several are collected into a slice.
func Apply(payload any, filter string) (any, error) {
	results, err := evaluate(payload, filter)
	if err != nil {
		return nil, err
	}
	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}

// ApplyFilter is Apply for an encoded JSON document.
func ApplyFilter(body []byte, filter string) ([]byte, error) {
	if len(body) == 0 {
		return nil, errors.New("input is empty, cannot apply jq filter")
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("input is not valid JSON: %w", err)
	}

	result, err := Apply(payload, filter)
	if err != nil {
		return nil, err
	}

	filtered, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode filtered result: %w", err)
	}
	return filtered, nil
}

func evaluate(payload any, filter string) ([]any, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		filter = "."
	}

	query, err := getCachedQuery(filter)
	if err != nil {
		return nil, err
	}

	iter := query.Run(payload)
	var results []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, fmt.Errorf("jq filter failed: %w", err)
		}
		results = append(results, normalizeGoJQValue(v))
	}

	return results, nil
}

func getCachedQuery(filter string) (*gojq.Code, error) {
	if code, ok := jqQueryCache.Load(filter); ok {
		cached, ok := code.(*gojq.Code)
		if !ok {
			return nil, fmt.Errorf("invalid cached jq code for filter %q", filter)
		}
		return cached, nil
	}

	parsed, err := gojq.Parse(filter)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	jqQueryCache.Store(filter, code)
	return code, nil
}

func normalizeGoJQValue(v any) any {
	switch value := v.(type) {
	case map[any]any:
		converted := make(map[string]any, len(value))
		for k, val := range value {
			converted[fmt.Sprint(k)] = normalizeGoJQValue(val)
		}
		return converted
	case map[string]any:
		for k, val := range value {
			value[k] = normalizeGoJQValue(val)
		}
		return value
	case []any:
		for i := range value {
			value[i] = normalizeGoJQValue(value[i])
		}
		return value
	default:
		return value
	}
}

func BodyToPrintable(body []byte) string {
	var js any
	if err := json.Unmarshal(body, &js); err != nil {
		return string(body)
	}
	formatted, err := json.MarshalIndent(js, "", "  ")
	if err != nil {
		return string(body)
	}
	return string(formatted)
}

func ShouldUseColor(mode theme.ColorMode, out io.Writer) bool {
	switch mode {
	case theme.ColorAlways:
		return true
	case theme.ColorNever:
		return false
	default:
		if _, disabled := os.LookupEnv("NO_COLOR"); disabled {
			return false
		}
		return iostreams.IsTerminal(out)
	}
}

// WriteJSON writes body indented, colorized when settings ask for color on
// out.
func WriteJSON(body []byte, settings Settings, out io.Writer) error {
	printable := BodyToPrintable(body)
	if ShouldUseColor(settings.ColorMode, out) {
		printable = MaybeColorizeOutput(body, printable, settings.Theme)
	}
	_, err := fmt.Fprintln(out, strings.TrimRight(printable, "\n"))
	return err
}

func MaybeColorizeOutput(raw []byte, formatted, theme string) string {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return formatted
	}
	switch payload.(type) {
	case map[string]any, []any:
		// acceptable for colorization
	default:
		return formatted
	}

	lexer := lexers.Get("json")
	if lexer == nil {
		return formatted
	}
	iterator, err := lexer.Tokenise(nil, formatted)
	if err != nil {
		return formatted
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Get("terminal")
	}
	if formatter == nil {
		return formatted
	}

	style := styles.Get(theme)
	if style == nil {
		style = styles.Get(DefaultTheme)
	}
	if style == nil {
		style = styles.Fallback
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return formatted
	}

	return buf.String()
}
