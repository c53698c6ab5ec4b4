package show

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kong/tabulator/internal/cmd"
	"github.com/kong/tabulator/internal/cmd/common"
	jqoutput "github.com/kong/tabulator/internal/cmd/output/jq"
	"github.com/kong/tabulator/internal/input"
	"github.com/kong/tabulator/internal/meta"
	"github.com/kong/tabulator/internal/table"
	"github.com/kong/tabulator/internal/theme"
	"github.com/kong/tabulator/internal/util/i18n"
	"github.com/kong/tabulator/internal/util/normalizers"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	HighlightFlagName        = "highlight"
	HighlightColorFlagName   = "highlight-color"
	HighlightColorConfigPath = "show." + HighlightColorFlagName
	DefaultHighlightColor    = "highlight"
)

var (
	showUse   = "show [FILE]"
	showShort = i18n.T("root.show.showShort", "Show a JSON or YAML mapping as aligned key/value pairs")
	showLong  = normalizers.LongDesc(i18n.T("root.show.showLong", `
	Show reads a JSON or YAML mapping from FILE, or from standard input when
	FILE is missing or "-", and prints one key per line in the order of the
	document.

	Nested mappings are flattened into dotted keys. Lists print their length
	followed by one element per line, booleans print as Yes or No. A list of
	mappings, or a stream of YAML documents, prints one block per mapping.`))
	showExample = normalizers.Examples(i18n.T("root.show.showExamples",
		fmt.Sprintf(`
		# Show a package description
		%[1]s show package.yaml
		# Highlight the version in the warning color
		%[1]s show package.yaml --highlight version --highlight-color msg-warning
		`, meta.CLIName)))
)

func NewShowCmd() *cobra.Command {
	rv := &cobra.Command{
		Use:     showUse,
		Short:   showShort,
		Long:    showLong,
		Example: showExample,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(c *cobra.Command, args []string) error {
			return bindFlags(c, args)
		},
		RunE: func(c *cobra.Command, args []string) error {
			helper := cmd.BuildHelper(c, args)
			if err := validate(helper); err != nil {
				return err
			}
			return run(helper)
		},
	}

	rv.Flags().StringSlice(HighlightFlagName, nil,
		"Paint the values of these keys. A key also matches the keys nested below it.")

	color := cmd.NewEnum(theme.ColorContextNames(), DefaultHighlightColor)
	rv.Flags().Var(color, HighlightColorFlagName, fmt.Sprintf(`Color used for highlighted values.
- Config path: [ %s ]
- Allowed    : [ %s ]`, HighlightColorConfigPath, color.Usage()))

	cmd.AddPropertyTableFlags(rv.Flags())

	return rv
}

func bindFlags(c *cobra.Command, args []string) error {
	helper := cmd.BuildHelper(c, args)
	cfg, err := helper.GetConfig()
	if err != nil {
		return err
	}
	if err := cfg.BindFlag(HighlightColorConfigPath, c.Flags().Lookup(HighlightColorFlagName)); err != nil {
		return err
	}
	return cmd.BindTableFlags(cfg, c.Flags())
}

func validate(helper cmd.Helper) error {
	_, err := highlightColor(helper)
	return err
}

func highlightColor(helper cmd.Helper) (theme.ColorContext, error) {
	cfg, err := helper.GetConfig()
	if err != nil {
		return theme.Default, err
	}
	name := cfg.GetString(HighlightColorConfigPath)
	if name == "" {
		name = DefaultHighlightColor
	}
	cc, err := theme.ParseColorContext(name)
	if err != nil {
		return theme.Default, &cmd.ConfigurationError{Err: err}
	}
	return cc, nil
}

// matcher reports whether a flattened key is selected by one of keys.
type matcher []string

func (m matcher) matches(key string) bool {
	for _, k := range m {
		if strings.EqualFold(key, k) ||
			(len(key) > len(k) && key[len(k)] == '.' && strings.EqualFold(key[:len(k)], k)) {
			return true
		}
	}
	return false
}

func run(helper cmd.Helper) error {
	logger, err := helper.GetLogger()
	if err != nil {
		return err
	}

	name := cmd.SourceName(helper)
	data, err := cmd.ReadSource(helper)
	if err != nil {
		return cmd.PrepareExecutionError("failed to read input", err, helper.GetCmd(), "source", name)
	}
	sets, err := input.Properties(data)
	if err != nil {
		return cmd.PrepareExecutionError("failed to decode input", err, helper.GetCmd(), "source", name)
	}
	logger.Debug("decoded properties", "source", name, "documents", len(sets))

	out := helper.GetStreams().Out
	outType, err := helper.GetOutputFormat()
	if err != nil {
		return err
	}
	switch outType {
	case common.JSON:
		body, err := json.Marshal(objects(sets))
		if err != nil {
			return cmd.PrepareExecutionError("failed to encode properties", err, helper.GetCmd())
		}
		cfg, err := helper.GetConfig()
		if err != nil {
			return err
		}
		settings, err := jqoutput.ResolveSettings(helper.GetCmd(), cfg)
		if err != nil {
			return err
		}
		return jqoutput.WriteJSON(body, settings, out)
	case common.YAML:
		return writeYAML(out, sets)
	case common.TEXT:
	}

	if len(sets) == 0 {
		logger.Info("input has no entries", "source", name)
		_, err := fmt.Fprintln(helper.GetStreams().ErrOut, i18n.T("tabulator.show.empty", "No entries."))
		return err
	}

	cc, err := highlightColor(helper)
	if err != nil {
		return err
	}
	painter, err := helper.GetPainter()
	if err != nil {
		return err
	}
	opts, err := cmd.TableOptions(helper)
	if err != nil {
		return err
	}
	keys, _ := helper.GetCmd().Flags().GetStringSlice(HighlightFlagName)
	highlight := matcher(keys)

	var b strings.Builder
	for i, set := range sets {
		if i > 0 {
			b.WriteByte('\n')
		}
		pt := table.NewPropertyTable(table.WithPainter(painter), table.WithTableOptions(opts...))
		for _, p := range set {
			pt.Add(p.Key, p.Value).Paint(cc, highlight.matches(p.Key))
		}
		b.WriteString(pt.String())
	}
	if _, err := io.WriteString(out, b.String()); err != nil {
		return cmd.PrepareExecutionError("failed to write properties", err, helper.GetCmd())
	}
	return nil
}

func objects(sets []input.PropertySet) []map[string]any {
	out := make([]map[string]any, len(sets))
	for i, set := range sets {
		m := make(map[string]any, len(set))
		for _, p := range set {
			m[p.Key] = p.Value
		}
		out[i] = m
	}
	return out
}

// writeYAML writes the property sets as a sequence of mappings, keeping the
// key order of the input.
func writeYAML(w io.Writer, sets []input.PropertySet) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, set := range sets {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, p := range set {
			var value yaml.Node
			if err := value.Encode(p.Value); err != nil {
				return fmt.Errorf("failed to encode %s: %w", p.Key, err)
			}
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Key},
				&value)
		}
		seq.Content = append(seq.Content, m)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return err
	}
	return enc.Close()
}
