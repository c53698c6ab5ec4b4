package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kong/tabulator/internal/cmd/common"
	"github.com/kong/tabulator/internal/meta"
	"github.com/kong/tabulator/internal/table"
	"github.com/kong/tabulator/internal/theme"
	"github.com/kong/tabulator/internal/util/viper"
	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var defaultConfigFileName = "config.yaml"

// Returns the expanded default config path depending on what
// environment variables are set. If XDG_CONFIG_HOME is set,
// the default is $XDG_CONFIG_HOME/tabulator,
// otherwise the default is os.UserHomeDir()/.config/tabulator.
// If these values are not set, an error is returned.
func GetDefaultConfigPath() (string, error) {
	val, set := os.LookupEnv("XDG_CONFIG_HOME")
	if !set || val == "" {
		var err error
		val, err = os.UserHomeDir()
		if err != nil {
			return "", err
		}
		val = filepath.Join(val, ".config")
	}
	val = filepath.Join(val, meta.CLIName)
	return os.ExpandEnv(val), nil
}

func GetDefaultConfigFilePath() (string, error) {
	path, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(path, defaultConfigFileName), nil
}

// ExpandDefaultConfigFilePath is GetDefaultConfigFilePath without the error;
// it returns "" when no home directory is known.
func ExpandDefaultConfigFilePath() string {
	path, err := GetDefaultConfigFilePath()
	if err != nil {
		return ""
	}
	return path
}

// GetConfig returns the configuration for this instance of the CLI. A file
// the user named explicitly must exist and parse; the default file is read
// when present and skipped otherwise. The configuration is never written.
func GetConfig(path string, defaultConfigFilePath string) (*Config, error) {
	path = os.ExpandEnv(path)

	var vip *v.Viper
	if _, err := os.Stat(path); err == nil {
		vip, err = viper.NewViperE(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if path == "" || path == defaultConfigFilePath {
		vip = viper.NewViper("")
	} else {
		return nil, fmt.Errorf("the provided config file path %s does not exist", path)
	}

	setDefaults(vip)
	return &Config{Viper: vip, Path: path}, nil
}

// Empty type to represent the _type_ Config. Genesis is to support a key in a Context
type Key struct{}

// Config is a global instance of the Key type
var ConfigKey = Key{}

// Hook provides a read-only view of the configuration. Flags bound with
// BindFlag take precedence over the environment, the config file and the
// defaults, in that order.
type Hook interface {
	// GetString returns a string value from the configuration
	GetString(key string) string
	// GetBool returns a boolean value from the configuration
	GetBool(key string) bool
	// GetInt returns an integer value from the configuration
	GetInt(key string) int
	// GetIntOrElse returns an integer value from the configuration or a default
	GetIntOrElse(key string, orElse int) int
	// GetStringSlice returns a slice of strings from the configuration
	GetStringSlice(key string) []string
	// BindFlag takes a specific configuration path and
	// binds it to a specific flag
	BindFlag(configPath string, f *pflag.Flag) error
	// The file path used to load this configuration
	GetPath() string
}

// Config implements Hook on top of a viper instance.
type Config struct {
	*v.Viper
	Path string
}

func (c *Config) GetIntOrElse(key string, orElse int) int {
	if c.IsSet(key) {
		return c.GetInt(key)
	}
	return orElse
}

func (c *Config) BindFlag(configPath string, f *pflag.Flag) error {
	if f == nil {
		return fmt.Errorf("no flag to bind to %s", configPath)
	}
	return c.BindPFlag(configPath, f)
}

func (c *Config) GetPath() string {
	return c.Path
}

func setDefaults(vip *v.Viper) {
	vip.SetDefault(common.OutputConfigPath, common.DefaultOutputFormat)
	vip.SetDefault(common.ColorConfigPath, common.DefaultColorMode)
	vip.SetDefault(common.ColorThemeConfigPath, theme.DefaultName)
	vip.SetDefault(common.LogLevelConfigPath, common.DefaultLogLevel)
	vip.SetDefault(common.LogFileConfigPath, "")
	vip.SetDefault(common.LangConfigPath, "")
	vip.SetDefault(common.StyleConfigPath, table.DefaultStyle.String())
	vip.SetDefault(common.MarginConfigPath, 0)
	vip.SetDefault(common.WrapConfigPath, false)
	vip.SetDefault(common.BreakAfterConfigPath, common.DefaultBreakAfter)
	vip.SetDefault(common.ScreenWidthConfigPath, common.DefaultScreenWidthAuto)
}
