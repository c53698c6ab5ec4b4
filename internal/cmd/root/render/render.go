package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kong/tabulator/internal/cmd"
	"github.com/kong/tabulator/internal/cmd/common"
	jqoutput "github.com/kong/tabulator/internal/cmd/output/jq"
	"github.com/kong/tabulator/internal/cmd/output/pager"
	"github.com/kong/tabulator/internal/input"
	"github.com/kong/tabulator/internal/meta"
	"github.com/kong/tabulator/internal/table"
	"github.com/kong/tabulator/internal/theme"
	"github.com/kong/tabulator/internal/util/i18n"
	"github.com/kong/tabulator/internal/util/normalizers"
	"github.com/segmentio/cli"
	"github.com/spf13/cobra"
)

const (
	FormatFlagName       = "format"
	FormatConfigPath     = "render.format"
	NoHeaderFlagName     = "no-header"
	NoHeaderConfigPath   = "render.no-header"
	SortFlagName         = "sort"
	AbbrevFlagName       = "abbrev"
	ColumnsFlagName      = "columns"
	InteractiveFlagName  = "interactive"
	InteractiveFlagShort = "i"
	PlainFlagName        = "plain"
)

var (
	renderUse   = "render [FILE]"
	renderShort = i18n.T("root.render.renderShort", "Render CSV, TSV, JSON or YAML input as a table")
	renderLong  = normalizers.LongDesc(i18n.T("root.render.renderLong", `
	Render reads a document from FILE, or from standard input when FILE is
	missing or "-", and prints it as a table sized to the screen.

	JSON and YAML documents are flattened: a list of objects becomes one row
	per object with the sorted union of their keys as the header, nested
	values are printed as compact JSON.`))
	renderExample = normalizers.Examples(i18n.T("root.render.renderExamples",
		fmt.Sprintf(`
		# Render a CSV file with the default line style
		%[1]s render repos.csv
		# Sort by size, then by name, in the double line style
		%[1]s render repos.json --sort size --sort name --style double
		# Filter JSON input with jq and wrap at 80 columns
		kubectl get pods -o json | %[1]s render --jq '[.items[].metadata]' --wrap -w 80
		`, meta.CLIName)))
)

func NewRenderCmd() *cobra.Command {
	rv := &cobra.Command{
		Use:     renderUse,
		Short:   renderShort,
		Long:    renderLong,
		Example: renderExample,
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

	format := cmd.NewEnum(input.Formats(), string(input.FormatAuto))
	rv.Flags().Var(format, FormatFlagName, fmt.Sprintf(`Format of the input document.
- Config path: [ %s ]
- Allowed    : [ %s ]`, FormatConfigPath, format.Usage()))

	rv.Flags().Bool(NoHeaderFlagName, false, fmt.Sprintf(`Treat the first row of delimited input as data.
- Config path: [ %s ]`, NoHeaderConfigPath))

	rv.Flags().StringArray(SortFlagName, nil,
		"Sort rows by this column, given as a header name or index. Repeat for more sort keys.")
	rv.Flags().StringSlice(AbbrevFlagName, nil,
		"Columns that may be shortened with an ellipsis when the table is wider than the screen.")
	rv.Flags().StringSlice(ColumnsFlagName, nil,
		"Only show these columns, in this order.")
	rv.Flags().BoolP(InteractiveFlagName, InteractiveFlagShort, false,
		"Page the table in a scrollable view when the output is a terminal.")
	rv.Flags().Bool(PlainFlagName, false,
		"Print tab separated cells without any layout, for use in scripts.")
	rv.MarkFlagsMutuallyExclusive(InteractiveFlagName, PlainFlagName)

	cmd.AddTableFlags(rv.Flags())
	jqoutput.AddFlags(rv.Flags())

	return rv
}

func bindFlags(c *cobra.Command, args []string) error {
	helper := cmd.BuildHelper(c, args)
	cfg, err := helper.GetConfig()
	if err != nil {
		return err
	}

	for path, name := range map[string]string{
		FormatConfigPath:   FormatFlagName,
		NoHeaderConfigPath: NoHeaderFlagName,
	} {
		if err := cfg.BindFlag(path, c.Flags().Lookup(name)); err != nil {
			return err
		}
	}
	if err := cmd.BindTableFlags(cfg, c.Flags()); err != nil {
		return err
	}
	return jqoutput.BindFlags(cfg, c.Flags())
}

func validate(helper cmd.Helper) error {
	cfg, err := helper.GetConfig()
	if err != nil {
		return err
	}
	if _, err := input.ParseFormat(cfg.GetString(FormatConfigPath)); err != nil {
		return &cmd.ConfigurationError{Err: err}
	}
	return nil
}

func run(helper cmd.Helper) error {
	logger, err := helper.GetLogger()
	if err != nil {
		return err
	}
	cfg, err := helper.GetConfig()
	if err != nil {
		return err
	}

	name := cmd.SourceName(helper)
	data, err := cmd.ReadSource(helper)
	if err != nil {
		return cmd.PrepareExecutionError("failed to read input", err, helper.GetCmd(), "source", name)
	}

	format, _ := input.ParseFormat(cfg.GetString(FormatConfigPath))
	if format == input.FormatAuto {
		format = input.Detect(name, data)
	}

	settings, err := jqoutput.ResolveSettings(helper.GetCmd(), cfg)
	if err != nil {
		return err
	}
	if jqoutput.HasFilter(settings) && !format.Structured() {
		return &cmd.ConfigurationError{
			Err: fmt.Errorf("--%s needs JSON or YAML input, got %s", jqoutput.FlagName, format),
		}
	}

	hasHeader := !cfg.GetBool(NoHeaderConfigPath)
	records, err := decode(data, format, hasHeader, settings)
	if err != nil {
		return cmd.PrepareExecutionError("failed to decode input", err, helper.GetCmd(),
			"source", name, "format", string(format))
	}
	logger.Debug("decoded input", "source", name, "format", string(format),
		"rows", len(records.Rows), "header", records.HasHeader())

	flags := helper.GetCmd().Flags()
	columns, _ := flags.GetStringSlice(ColumnsFlagName)
	if err := records.Select(columns); err != nil {
		return &cmd.ConfigurationError{Err: err}
	}

	outType, err := helper.GetOutputFormat()
	if err != nil {
		return err
	}
	switch outType {
	case common.JSON:
		body, err := json.Marshal(printable(records))
		if err != nil {
			return cmd.PrepareExecutionError("failed to encode records", err, helper.GetCmd())
		}
		return jqoutput.WriteJSON(body, settings, helper.GetStreams().Out)
	case common.YAML:
		printer, err := cli.Format(outType.String(), helper.GetStreams().Out)
		if err != nil {
			return err
		}
		defer printer.Flush()
		printer.Print(printable(records))
		return nil
	case common.TEXT:
	}

	t, err := buildTable(helper, records)
	if err != nil {
		return err
	}
	if t.Empty() {
		logger.Info("input has no rows", "source", name)
		_, err := fmt.Fprintln(helper.GetStreams().ErrOut, i18n.T("tabulator.render.empty", "No rows."))
		return err
	}

	if plain, _ := flags.GetBool(PlainFlagName); plain {
		if err := t.WritePlain(helper.GetStreams().Out); err != nil {
			return cmd.PrepareExecutionError("failed to write rows", err, helper.GetCmd())
		}
		return nil
	}
	if interactive, _ := flags.GetBool(InteractiveFlagName); interactive {
		err := pager.Run(helper.GetStreams(), t.String(),
			pager.WithTitle(name),
			pager.WithPalette(theme.FromContext(helper.GetContext())))
		if err != nil {
			return cmd.PrepareExecutionErrorFromErr(helper, err)
		}
		return nil
	}
	if _, err := t.WriteTo(helper.GetStreams().Out); err != nil {
		return cmd.PrepareExecutionError("failed to write table", err, helper.GetCmd())
	}
	return nil
}

func decode(data []byte, format input.Format, hasHeader bool, settings jqoutput.Settings) (*input.Records, error) {
	switch format {
	case input.FormatCSV, input.FormatTSV:
		comma := ','
		if format == input.FormatTSV {
			comma = '\t'
		}
		rows, err := input.ReadDelimited(bytes.NewReader(data), comma)
		if err != nil {
			return nil, err
		}
		return input.FromMatrix(rows, hasHeader), nil
	default:
		doc, err := input.DecodeStructured(data)
		if err != nil {
			return nil, err
		}
		if jqoutput.HasFilter(settings) {
			if doc, err = jqoutput.Apply(doc, settings.Filter); err != nil {
				return nil, err
			}
		}
		return input.Tabulate(doc, hasHeader), nil
	}
}

// printable returns the records as objects keyed by column name, or as rows
// of cells when there is no header.
func printable(records *input.Records) any {
	if records.HasHeader() {
		return records.Objects()
	}
	return records.Rows
}

func buildTable(helper cmd.Helper, records *input.Records) (*table.Table, error) {
	opts, err := cmd.TableOptions(helper)
	if err != nil {
		return nil, err
	}
	flags := helper.GetCmd().Flags()

	abbrev, _ := flags.GetStringSlice(AbbrevFlagName)
	abbrevIdx, err := records.ColumnIndexes(abbrev)
	if err != nil {
		return nil, &cmd.ConfigurationError{Err: err}
	}
	sortKeys, _ := flags.GetStringArray(SortFlagName)
	sortIdx, err := records.ColumnIndexes(sortKeys)
	if err != nil {
		return nil, &cmd.ConfigurationError{Err: err}
	}

	t := table.New(append(opts, table.WithAbbrev(abbrevIdx...))...)
	if records.HasHeader() {
		t.SetHeader(table.NewRow(records.Header...))
	}
	for _, r := range records.Rows {
		t.Add(table.NewRow(r...))
	}
	if len(sortIdx) > 0 {
		t.SortBy(sortIdx...)
	}
	return t, nil
}
