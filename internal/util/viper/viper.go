package viper

import (
	"strings"

	"github.com/kong/tabulator/internal/meta"
	v "github.com/spf13/viper"
)

// ConfigureEnvVars makes every key of vip readable from the environment as
// PREFIX_KEY, with "." and "-" in keys mapped to "_".
func ConfigureEnvVars(vip *v.Viper, prefix string) {
	vip.AutomaticEnv()
	vip.SetEnvPrefix(prefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

// NewViperE loads path strictly: a missing or malformed file is an error.
func NewViperE(path string) (*v.Viper, error) {
	rv := v.New()
	rv.SetConfigFile(path)
	ConfigureEnvVars(rv, meta.EnvPrefix)
	err := rv.ReadInConfig()
	if err != nil {
		return nil, err
	}
	return rv, nil
}

// NewViper loads path when it can be read and otherwise starts from an empty
// configuration. An empty path skips the file entirely.
func NewViper(path string) *v.Viper {
	rv := v.New()
	ConfigureEnvVars(rv, meta.EnvPrefix)
	if path != "" {
		rv.SetConfigFile(path)
		_ = rv.ReadInConfig()
	}
	return rv
}
