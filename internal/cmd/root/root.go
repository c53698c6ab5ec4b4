package root

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/kong/tabulator/internal/build"
	"github.com/kong/tabulator/internal/cmd"
	"github.com/kong/tabulator/internal/cmd/common"
	"github.com/kong/tabulator/internal/cmd/root/render"
	"github.com/kong/tabulator/internal/cmd/root/show"
	"github.com/kong/tabulator/internal/cmd/root/styles"
	"github.com/kong/tabulator/internal/cmd/root/version"
	"github.com/kong/tabulator/internal/config"
	"github.com/kong/tabulator/internal/iostreams"
	"github.com/kong/tabulator/internal/log"
	"github.com/kong/tabulator/internal/meta"
	"github.com/kong/tabulator/internal/theme"
	"github.com/kong/tabulator/internal/util/i18n"
	"github.com/kong/tabulator/internal/util/normalizers"
	"github.com/spf13/cobra"
)

var (
	rootLong = normalizers.LongDesc(i18n.T("root.rootLong", `
  tabulator lays out CSV, TSV, JSON and YAML documents as aligned text tables
  and key/value property tables sized to the terminal.`))

	rootShort = i18n.T("root.rootShort", fmt.Sprintf("%s renders tables for the terminal", meta.CLIName))

	rootCmd *cobra.Command

	// Stores the global runtime value for the Configuration file path,
	configFilePath = config.ExpandDefaultConfigFilePath()

	currConfig config.Hook
	configErr  error
	streams    *iostreams.IOStreams
	logger     *slog.Logger
	closeLog   func() error

	outputFormat = cmd.NewEnum(common.OutputFormats(), common.DefaultOutputFormat)
	colorMode    = cmd.NewEnum([]string{
		string(theme.ColorAuto), string(theme.ColorAlways), string(theme.ColorNever),
	}, common.DefaultColorMode)
	colorTheme = theme.NewFlag(theme.DefaultName)
	logLevel   = cmd.NewEnum(log.Levels, common.DefaultLogLevel)

	buildInfo *build.Info
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           meta.CLIName,
		Short:         rootShort,
		Long:          rootLong,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			if configErr != nil {
				return &cmd.ConfigurationError{
					Err:  configErr,
					Hint: fmt.Sprintf("check the file given with --%s", common.ConfigFilePathFlagName),
				}
			}
			ctx, err := buildContext(c.Context())
			if err != nil {
				return err
			}
			c.SetContext(ctx)
			return nil
		},
	}

	// parses all flags not just the target command
	rootCmd.TraverseChildren = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFilePath, common.ConfigFilePathFlagName,
		config.ExpandDefaultConfigFilePath(),
		i18n.T("root."+common.ConfigFilePathFlagName, "Path to the configuration file to load."))

	// -------------------------------------------------------------------------
	// Add the output flag, which defines the text output format.
	// This requires some extra gymnastics to ensure that the output flag is
	// from a valid set of values. There may be a way to do this more elegantly
	// in the pFlag library
	pf.VarP(outputFormat, common.OutputFlagName, common.OutputFlagShort,
		fmt.Sprintf(`Configures the output format.
- Config path: [ %s ]
- Allowed    : [ %s ]`,
			common.OutputConfigPath, outputFormat.Usage()))
	// -------------------------------------------------------------------------

	pf.Var(colorMode, common.ColorFlagName,
		fmt.Sprintf(`Controls colored output.
- Config path: [ %s ]
- Allowed    : [ %s ]`,
			common.ColorConfigPath, colorMode.Usage()))

	pf.Var(colorTheme, common.ColorThemeFlagName,
		fmt.Sprintf(`Color theme used for highlights and the pager.
- Config path: [ %s ]
- Allowed    : [ %s ]`,
			common.ColorThemeConfigPath, strings.Join(theme.Available(), "|")))

	pf.Var(logLevel, common.LogLevelFlagName,
		fmt.Sprintf(`Configures the logging level.
- Config path: [ %s ]
- Allowed    : [ %s ]`,
			common.LogLevelConfigPath, logLevel.Usage()))

	pf.String(common.LogFileFlagName, "",
		fmt.Sprintf(`Write log records to this file in addition to printing errors.
- Config path: [ %s ]`, common.LogFileConfigPath))

	pf.String(common.LangFlagName, "",
		fmt.Sprintf(`Language for messages such as Yes and No. Defaults to LC_ALL, LC_MESSAGES or LANG.
- Config path: [ %s ]`, common.LangConfigPath))

	return rootCmd
}

// addCommands adds the root subcommands to the command.
func addCommands() {
	rootCmd.AddCommand(render.NewRenderCmd())
	rootCmd.AddCommand(show.NewShowCmd())
	rootCmd.AddCommand(styles.NewStylesCmd())
	rootCmd.AddCommand(version.NewVersionCmd())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd = newRootCmd()
	addCommands()
}

var persistentBindings = []struct {
	configPath string
	flagName   string
}{
	{common.OutputConfigPath, common.OutputFlagName},
	{common.ColorConfigPath, common.ColorFlagName},
	{common.ColorThemeConfigPath, common.ColorThemeFlagName},
	{common.LogLevelConfigPath, common.LogLevelFlagName},
	{common.LogFileConfigPath, common.LogFileFlagName},
	{common.LangConfigPath, common.LangFlagName},
}

func initConfig() {
	cfg, err := config.GetConfig(configFilePath, config.ExpandDefaultConfigFilePath())
	if err != nil {
		configErr = err
		return
	}
	configErr = nil
	currConfig = cfg

	for _, b := range persistentBindings {
		if err := cfg.BindFlag(b.configPath, rootCmd.PersistentFlags().Lookup(b.flagName)); err != nil {
			configErr = err
			return
		}
	}
}

// buildContext applies the language and theme settings and stores the
// configuration, streams, build info, palette and logger on ctx.
func buildContext(ctx context.Context) (context.Context, error) {
	if lang := currConfig.GetString(common.LangConfigPath); lang != "" {
		i18n.SetLanguage(lang)
	} else {
		i18n.FromEnv()
	}

	if err := theme.SetCurrent(currConfig.GetString(common.ColorThemeConfigPath)); err != nil {
		return ctx, &cmd.ConfigurationError{Err: err}
	}
	palette := theme.Current()

	mode, err := theme.ParseColorMode(currConfig.GetString(common.ColorConfigPath))
	if err != nil {
		return ctx, &cmd.ConfigurationError{Err: err}
	}
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor && mode == theme.ColorAuto {
		mode = theme.ColorNever
	}

	l, closer, err := log.New(log.Options{
		Level:   currConfig.GetString(common.LogLevelConfigPath),
		File:    currConfig.GetString(common.LogFileConfigPath),
		ErrOut:  streams.ErrOut,
		Painter: theme.NewPainter(streams.ErrOut, mode, palette),
	})
	if err != nil {
		return ctx, &cmd.ConfigurationError{Err: err}
	}
	logger = l
	closeLog = closer
	logger.Debug("configuration loaded",
		"path", currConfig.GetPath(), "language", i18n.Language().String(), "theme", palette.Name)

	ctx = context.WithValue(ctx, config.ConfigKey, currConfig)
	ctx = context.WithValue(ctx, iostreams.StreamsKey, streams)
	ctx = context.WithValue(ctx, build.InfoKey, buildInfo)
	ctx = context.WithValue(ctx, log.LoggerKey, logger)
	ctx = theme.ContextWithPalette(ctx, palette)
	return ctx, nil
}

// Execute runs the command line and returns the process exit code. Errors
// are printed through the logger, so they share the console format and
// reach the log file when one is configured.
func Execute(ctx context.Context, s *iostreams.IOStreams, bi *build.Info) int {
	buildInfo = bi
	cobra.EnableTraverseRunHooks = true
	streams = s
	logger = nil
	rootCmd.SetOut(s.Out)
	rootCmd.SetErr(s.ErrOut)
	rootCmd.SetIn(s.In)

	c, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		reportError(c, err)
	}
	if closeLog != nil {
		if cerr := closeLog(); cerr != nil && err == nil {
			err = cerr
			fmt.Fprintln(s.ErrOut, "Error:", cerr)
		}
		closeLog = nil
	}
	if err != nil {
		return 1
	}
	return 0
}

// reportError logs err for the command c that failed. Failures before the
// logger exists, such as a bad flag or configuration file, go to a console
// only logger.
func reportError(c *cobra.Command, err error) {
	l := logger
	if l == nil {
		l, _, _ = log.New(log.Options{ErrOut: streams.ErrOut})
	}

	var executionError *cmd.ExecutionError
	if errors.As(err, &executionError) {
		attrs := executionError.Attrs
		if executionError.Err != nil {
			attrs = append([]any{log.ErrorKey, executionError.Err}, attrs...)
			attrs = append(attrs, cmd.TryConvertErrorToAttrs(executionError.Err)...)
		}
		l.Error(executionError.Msg, attrs...)
		return
	}

	if c == nil {
		c = rootCmd
	}
	hint := fmt.Sprintf("run '%s --help' for usage", c.CommandPath())
	var configurationError *cmd.ConfigurationError
	if errors.As(err, &configurationError) && configurationError.Hint != "" {
		hint = configurationError.Hint
	}
	l.Error(err.Error(), log.HintKey, hint)
}
