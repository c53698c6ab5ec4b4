package styles

import (
	"fmt"
	"strings"

	"github.com/kong/tabulator/internal/cmd"
	"github.com/kong/tabulator/internal/cmd/common"
	"github.com/kong/tabulator/internal/meta"
	"github.com/kong/tabulator/internal/table"
	"github.com/kong/tabulator/internal/theme"
	"github.com/kong/tabulator/internal/util/i18n"
	"github.com/kong/tabulator/internal/util/normalizers"
	"github.com/segmentio/cli"
	"github.com/spf13/cobra"
)

var (
	stylesUse   = "styles"
	stylesShort = i18n.T("root.styles.stylesShort", "Print a sample table in every line style")
	stylesLong  = normalizers.LongDesc(i18n.T("root.styles.stylesLong", `
	Print the same small table in each line style accepted by --style, so the
	styles can be compared on the current terminal and font.`))
	stylesExample = normalizers.Examples(i18n.T("root.styles.stylesExamples",
		fmt.Sprintf(`
		# Compare every style
		%[1]s styles
		# List the style names only
		%[1]s styles -o json
		`, meta.CLIName)))
)

type styleInfo struct {
	Name    string `json:"name" yaml:"name"`
	Default bool   `json:"default" yaml:"default"`
}

func NewStylesCmd() *cobra.Command {
	rv := &cobra.Command{
		Use:     stylesUse,
		Short:   stylesShort,
		Long:    stylesLong,
		Example: stylesExample,
		Args:    cobra.NoArgs,
		PreRunE: func(c *cobra.Command, args []string) error {
			helper := cmd.BuildHelper(c, args)
			cfg, err := helper.GetConfig()
			if err != nil {
				return err
			}
			return cmd.BindTableFlags(cfg, c.Flags())
		},
		RunE: func(c *cobra.Command, args []string) error {
			return run(cmd.BuildHelper(c, args))
		},
	}
	cmd.AddPropertyTableFlags(rv.Flags())
	return rv
}

// sample returns the table shown for every style.
func sample(opts []table.Option) *table.Table {
	t := table.New(opts...)
	t.SetHeader(table.NewRow("Name", "Version", "Summary"))
	t.Add(
		table.NewRow("tabulator", "1.4.0", "Tables for the terminal"),
		table.NewRow("jq", "1.7.1", "Command-line JSON processor"),
	)
	return t
}

func run(helper cmd.Helper) error {
	outType, err := helper.GetOutputFormat()
	if err != nil {
		return err
	}
	out := helper.GetStreams().Out

	if outType != common.TEXT {
		infos := make([]styleInfo, 0, len(table.LineStyles()))
		for _, s := range table.LineStyles() {
			infos = append(infos, styleInfo{Name: s.String(), Default: s == table.DefaultStyle})
		}
		printer, err := cli.Format(outType.String(), out)
		if err != nil {
			return err
		}
		defer printer.Flush()
		printer.Print(infos)
		return nil
	}

	opts, err := cmd.TableOptions(helper)
	if err != nil {
		return err
	}
	painter, err := helper.GetPainter()
	if err != nil {
		return err
	}

	var b strings.Builder
	for i, s := range table.LineStyles() {
		if i > 0 {
			b.WriteByte('\n')
		}
		title := s.String()
		if s == table.DefaultStyle {
			title += " (default)"
		}
		b.WriteString(painter.Paint(title, theme.Result))
		b.WriteString("\n")
		b.WriteString(sample(append(opts, table.WithStyle(s))).String())
	}
	if _, err := fmt.Fprint(out, b.String()); err != nil {
		return cmd.PrepareExecutionError("failed to write styles", err, helper.GetCmd())
	}
	return nil
}
