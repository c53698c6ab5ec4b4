package cmd

import (
	"fmt"

	"github.com/kong/tabulator/internal/cmd/common"
	"github.com/kong/tabulator/internal/config"
	"github.com/kong/tabulator/internal/table"
	"github.com/spf13/pflag"
)

var tableFlagBindings = []struct{ flag, cfgPath string }{
	{common.StyleFlagName, common.StyleConfigPath},
	{common.MarginFlagName, common.MarginConfigPath},
	{common.WrapFlagName, common.WrapConfigPath},
	{common.BreakAfterFlagName, common.BreakAfterConfigPath},
	{common.ScreenWidthFlagName, common.ScreenWidthConfigPath},
}

// AddTableFlags adds the layout flags shared by every command that renders
// a table.
func AddTableFlags(flags *pflag.FlagSet) {
	style := NewEnum(table.LineStyleNames(), table.DefaultStyle.String())
	flags.Var(style, common.StyleFlagName, fmt.Sprintf(`Line style used to draw the table.
- Config path: [ %s ]
- Allowed    : [ %s ]`, common.StyleConfigPath, style.Usage()))

	addMarginFlag(flags)

	flags.Bool(common.WrapFlagName, false, fmt.Sprintf(`Split tables wider than the screen into blocks.
- Config path: [ %s ]`, common.WrapConfigPath))

	flags.Int(common.BreakAfterFlagName, common.DefaultBreakAfter,
		fmt.Sprintf(`End the first wrapped block after this column. Implies --%s.
- Config path: [ %s ]`, common.WrapFlagName, common.BreakAfterConfigPath))

	addScreenWidthFlag(flags)
}

// AddPropertyTableFlags adds the layout flags that apply to key/value
// output, which always uses the colon style.
func AddPropertyTableFlags(flags *pflag.FlagSet) {
	addMarginFlag(flags)
	addScreenWidthFlag(flags)
}

func addMarginFlag(flags *pflag.FlagSet) {
	flags.Int(common.MarginFlagName, 0, fmt.Sprintf(`Spaces of padding on both sides of every cell.
- Config path: [ %s ]`, common.MarginConfigPath))
}

func addScreenWidthFlag(flags *pflag.FlagSet) {
	flags.IntP(common.ScreenWidthFlagName, common.ScreenWidthFlagShort, common.DefaultScreenWidthAuto,
		fmt.Sprintf(`Screen width in columns, 0 detects the terminal width.
- Config path: [ %s ]`, common.ScreenWidthConfigPath))
}

// BindTableFlags binds the layout flags present in flags to their config
// paths.
func BindTableFlags(cfg config.Hook, flags *pflag.FlagSet) error {
	for _, b := range tableFlagBindings {
		if f := flags.Lookup(b.flag); f != nil {
			if err := cfg.BindFlag(b.cfgPath, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// TableOptions turns the configured layout settings into table options.
func TableOptions(helper Helper) ([]table.Option, error) {
	cfg, err := helper.GetConfig()
	if err != nil {
		return nil, err
	}

	style := table.DefaultStyle
	if name := cfg.GetString(common.StyleConfigPath); name != "" {
		if style, err = table.ParseLineStyle(name); err != nil {
			return nil, &ConfigurationError{Err: err}
		}
	}

	margin := cfg.GetInt(common.MarginConfigPath)
	if margin < 0 {
		return nil, &ConfigurationError{
			Err: fmt.Errorf("invalid margin %d, must not be negative", margin),
		}
	}

	width := cfg.GetInt(common.ScreenWidthConfigPath)
	if width <= 0 {
		width = helper.GetStreams().TerminalWidth()
	}

	opts := []table.Option{
		table.WithStyle(style),
		table.WithMargin(margin),
		table.WithScreenWidth(width),
	}

	breakAfter := cfg.GetIntOrElse(common.BreakAfterConfigPath, common.DefaultBreakAfter)
	if cfg.GetBool(common.WrapConfigPath) || breakAfter >= 0 {
		opts = append(opts, table.WithWrap(breakAfter))
	}
	return opts, nil
}
