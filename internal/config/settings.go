package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Setting keys shared by the CLI flags, the environment and the settings file.
const (
	KeyRules     = "rules"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
	KeyLogFile   = "log-file"
)

// EnvPrefix is prepended to every environment override, e.g. RULESCALC_LOG_LEVEL.
const EnvPrefix = "RULESCALC"

// Settings holds the runtime settings of the command-line tools.
type Settings struct {
	RulesPath string
	Logging   LoggingConfig
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputFile string // optional file output
}

// NewViper returns a viper instance with defaults and environment overrides
// registered. Flags are bound by the caller.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyRules, "")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogFile, "")
	return v
}

// LoadSettings reads an optional settings file and decodes the merged view of
// defaults, file, environment and bound flags.
func LoadSettings(v *viper.Viper, settingsFile string) (*Settings, error) {
	if settingsFile != "" {
		v.SetConfigFile(settingsFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", settingsFile, err)
		}
	}

	settings := &Settings{
		RulesPath: v.GetString(KeyRules),
		Logging: LoggingConfig{
			Level:      v.GetString(KeyLogLevel),
			Format:     v.GetString(KeyLogFormat),
			OutputFile: v.GetString(KeyLogFile),
		},
	}
	return settings, nil
}
