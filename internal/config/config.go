// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/streaming-roi/internal/projection"
	"github.com/iwvelando/streaming-roi/pkg/constants"
	"github.com/iwvelando/streaming-roi/pkg/validation"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for streaming-roi.
type Configuration struct {
	Assumptions projection.AssumptionSet `yaml:"assumptions" mapstructure:"assumptions"`
	Logging     LoggingConfig            `yaml:"logging,omitempty" mapstructure:"logging"`
	Output      OutputConfig             `yaml:"output,omitempty" mapstructure:"output"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json, chart
}

// FlagKeys maps command-line flag names to configuration keys. Flags that
// are present in the FlagSet passed to LoadConfiguration override the file
// and the environment.
var FlagKeys = map[string]string{
	"weekly-attendance": "assumptions.weeklyAttendance",
	"average-giving":    "assumptions.averageGiving",
	"streaming-cost":    "assumptions.streamingCost",
	"equipment-cost":    "assumptions.equipmentCost",
	"staff-hours":       "assumptions.staffHours",
	"online-engagement": "assumptions.onlineEngagement",
	"output-format":     "output.format",
	"log-level":         "logging.level",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := projection.DefaultAssumptions()
	v.SetDefault("assumptions.weeklyAttendance", defaults.WeeklyAttendance)
	v.SetDefault("assumptions.averageGiving", defaults.AverageGiving)
	v.SetDefault("assumptions.streamingCost", defaults.StreamingCost)
	v.SetDefault("assumptions.equipmentCost", defaults.EquipmentCost)
	v.SetDefault("assumptions.staffHours", defaults.StaffHours)
	v.SetDefault("assumptions.onlineEngagement", defaults.OnlineEngagement)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")
	return v
}

// LoadConfiguration loads the YAML-formatted configuration at configPath.
// A missing file is not an error: the defaults apply, still subject to
// environment and flag overrides. flags may be nil.
func LoadConfiguration(configPath string, flags *pflag.FlagSet) (*Configuration, error) {
	v := newViper()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file, %w", err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file, %w", err)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("unable to bind flag %s, %w", name, err)
			}
		}
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
// Keys absent from the document take their defaults.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Assumptions are never rejected.
func (c *Configuration) ValidateConfiguration() []string {
	warnings := validation.ValidateAssumptions(c.Assumptions)
	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}
	return warnings
}
