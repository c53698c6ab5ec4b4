package common

import "fmt"

// Represents an enum of valid values for the format of the output for this CLI execution
type OutputFormat int

const (
	JSON OutputFormat = iota
	YAML
	TEXT
)

const (
	// related to the --output flag
	DefaultOutputFormat = "text"
	OutputFlagName      = "output"
	OutputFlagShort     = "o"
	OutputConfigPath    = OutputFlagName

	// related to the --color flag
	ColorFlagName    = "color"
	ColorConfigPath  = ColorFlagName
	DefaultColorMode = "auto"

	// related to the --color-theme flag
	ColorThemeFlagName   = "color-theme"
	ColorThemeConfigPath = ColorThemeFlagName

	// related to the --config-file flag
	ConfigFilePathFlagName = "config-file"

	// related to the --log-level flag
	LogLevelFlagName   = "log-level"
	DefaultLogLevel    = "error"
	LogLevelConfigPath = LogLevelFlagName

	// related to the --log-file flag
	LogFileFlagName   = "log-file"
	LogFileConfigPath = LogFileFlagName

	// related to the --lang flag
	LangFlagName   = "lang"
	LangConfigPath = LangFlagName

	// table layout defaults shared by render, show and styles
	StyleFlagName          = "style"
	StyleConfigPath        = "table.style"
	MarginFlagName         = "margin"
	MarginConfigPath       = "table.margin"
	WrapFlagName           = "wrap"
	WrapConfigPath         = "table.wrap"
	BreakAfterFlagName     = "break-after"
	BreakAfterConfigPath   = "table.break-after"
	ScreenWidthFlagName    = "width"
	ScreenWidthFlagShort   = "w"
	ScreenWidthConfigPath  = "table.screen-width"
	DefaultBreakAfter      = -1
	DefaultScreenWidthAuto = 0
)

var outputFormats = []string{"json", "yaml", "text"}

func (of OutputFormat) String() string {
	return outputFormats[of]
}

// OutputFormats returns the names accepted by --output.
func OutputFormats() []string {
	return append([]string(nil), outputFormats...)
}

func OutputFormatStringToIota(format string) (OutputFormat, error) {
	switch format {
	case "json":
		return JSON, nil
	case "yaml":
		return YAML, nil
	case "text", "":
		return TEXT, nil
	default:
		return TEXT, fmt.Errorf("invalid output format %q, must be one of %v", format, outputFormats)
	}
}
