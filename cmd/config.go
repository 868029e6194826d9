package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"qa-insight/internal/dialect"
	"qa-insight/internal/engine"
	"qa-insight/internal/logging"
	"qa-insight/internal/schema"
)

const (
	SideLeft  = "left"
	SideRight = "right"
)

type EndpointConfig struct {
	Name     string `mapstructure:"name"`
	Side     string `mapstructure:"side"`
	Driver   string `mapstructure:"driver"`
	DSN      string `mapstructure:"dsn"`
	Database string `mapstructure:"database"`
	Schema   string `mapstructure:"schema"`

	// Optional nullability vocabulary; replaces the dialect's default when set.
	NullableTokens    []string `mapstructure:"nullable_tokens"`
	NotNullableTokens []string `mapstructure:"not_nullable_tokens"`
	UnknownNullable   bool     `mapstructure:"unknown_nullable"`
}

// Rule returns the endpoint's nullability decoding rule.
func (c *EndpointConfig) Rule(d dialect.Dialect) schema.NullabilityRule {
	if len(c.NullableTokens) == 0 && len(c.NotNullableTokens) == 0 {
		return d.NullabilityRule().WithUnknown(c.UnknownNullable)
	}
	return schema.RuleFromTokens(c.NullableTokens, c.NotNullableTokens, c.UnknownNullable)
}

// GetEndpointConfig returns the configuration of the endpoint on the given side.
func GetEndpointConfig(side string) (*EndpointConfig, error) {
	var configs []EndpointConfig

	if err := viper.UnmarshalKey("endpoints", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse endpoints config: %w", err)
	}

	var found *EndpointConfig
	count := 0

	for i := range configs {
		if strings.EqualFold(configs[i].Side, side) {
			found = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no %s endpoint found in config (set side: %s)", side, side)
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple %s endpoints found (only one per side)", side)
	}
	if found.Driver == "" {
		return nil, fmt.Errorf("%s endpoint: driver is required", side)
	}
	if found.DSN == "" {
		return nil, fmt.Errorf("%s endpoint: dsn is required", side)
	}
	if found.Name == "" {
		found.Name = found.Driver
	}

	return found, nil
}

// GetPairs returns the table pairs configured for batch runs.
func GetPairs() ([]engine.Pair, error) {
	var pairs []engine.Pair
	if err := viper.UnmarshalKey("pairs", &pairs); err != nil {
		return nil, fmt.Errorf("failed to parse pairs config: %w", err)
	}
	for i, p := range pairs {
		if p.Left == "" {
			return nil, fmt.Errorf("pairs[%d]: left table is required", i)
		}
	}
	return pairs, nil
}

// GetCompareOptions returns the comparator options, including type aliases.
func GetCompareOptions() (schema.Options, error) {
	var aliases []schema.TypeAlias
	if err := viper.UnmarshalKey("compare.type_aliases", &aliases); err != nil {
		return schema.Options{}, fmt.Errorf("failed to parse compare.type_aliases: %w", err)
	}
	for i, a := range aliases {
		if a.Left == "" || a.Right == "" {
			return schema.Options{}, fmt.Errorf("compare.type_aliases[%d]: left and right are required", i)
		}
	}
	return schema.Options{TypeAliases: aliases}, nil
}

// LoggingConfig reads the logging keys one by one. UnmarshalKey on the
// parent key would miss the --log-level flag and QAINSIGHT_LOGGING_* env.
func LoggingConfig() logging.Config {
	return logging.Config{
		Level:  viper.GetString("logging.level"),
		File:   viper.GetString("logging.file"),
		Format: viper.GetString("logging.format"),
	}
}
