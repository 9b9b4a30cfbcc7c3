// Package config turns flags, FINDR_* environment variables and an optional
// .findr.yml file into validated search settings.
//
// Precedence, highest first: flags, environment, config file, defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mlioz/findr/pkg/filesystem"
	"github.com/mlioz/findr/pkg/filter"
	"github.com/mlioz/findr/pkg/output"
)

// FileName is the config file looked up in each search path.
const (
	FileName   = configName + ".yml"
	configName = ".findr"
)

// Viper keys. They double as YAML keys and, upper-cased with a FINDR_
// prefix, as environment variable names.
const (
	KeyPaths    = "paths"
	KeyNames    = "names"
	KeyTypes    = "types"
	KeyMaxDepth = "max_depth"
	KeyMinDepth = "min_depth"
	KeyColor    = "color"
	KeyVerbose  = "verbose"
)

// Config is the raw, unvalidated configuration.
type Config struct {
	Paths    []string `yaml:"paths"`
	Names    []string `yaml:"names"`
	Types    []string `yaml:"types"`
	MaxDepth int      `yaml:"max_depth"`
	MinDepth int      `yaml:"min_depth"`
	Color    string   `yaml:"color"`
	Verbose  bool     `yaml:"verbose"`
}

// Settings is what a search run consumes. Built once, never mutated.
type Settings struct {
	Roots   []string
	Filters *filter.FilterSet
	Walk    filesystem.WalkOptions
	Color   output.ColorMode
	Verbose bool
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Paths:    []string{},
		Names:    []string{},
		Types:    []string{},
		MaxDepth: filesystem.NoDepthLimit,
		MinDepth: 0,
		Color:    string(output.ColorAuto),
	}
}

// NewViper returns a viper instance preloaded with defaults and FINDR_* env support.
func NewViper() *viper.Viper {
	def := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("FINDR")
	v.AutomaticEnv()

	v.SetDefault(KeyPaths, def.Paths)
	v.SetDefault(KeyNames, def.Names)
	v.SetDefault(KeyTypes, def.Types)
	v.SetDefault(KeyMaxDepth, def.MaxDepth)
	v.SetDefault(KeyMinDepth, def.MinDepth)
	v.SetDefault(KeyColor, def.Color)
	v.SetDefault(KeyVerbose, def.Verbose)
	return v
}

// flagKeys maps command-line flags onto viper keys.
var flagKeys = map[string]string{
	"name":      KeyNames,
	"type":      KeyTypes,
	"max-depth": KeyMaxDepth,
	"min-depth": KeyMinDepth,
	"color":     KeyColor,
	"verbose":   KeyVerbose,
}

// BindFlags lets flags that were set on the command line override every other source.
// Flags missing from the set are skipped.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// ReadFile loads an explicit config file, or searches FileName in each of
// searchPaths when file is empty. A missing searched file is not an error;
// a missing explicit one is. Returns the file that was read, if any.
func ReadFile(v *viper.Viper, file string, searchPaths ...string) (string, error) {
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		for _, p := range searchPaths {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load reads the merged configuration out of v.
func Load(v *viper.Viper) *Config {
	return &Config{
		Paths:    v.GetStringSlice(KeyPaths),
		Names:    v.GetStringSlice(KeyNames),
		Types:    v.GetStringSlice(KeyTypes),
		MaxDepth: v.GetInt(KeyMaxDepth),
		MinDepth: v.GetInt(KeyMinDepth),
		Color:    v.GetString(KeyColor),
		Verbose:  v.GetBool(KeyVerbose),
	}
}

// Build validates c and compiles it into Settings. Every problem is
// reported at once as ValidationErrors; no search may start on error.
func (c *Config) Build() (*Settings, error) {
	var errs ValidationErrors

	patterns := make([]*regexp.Regexp, 0, len(c.Names))
	for _, name := range c.Names {
		re, err := regexp.Compile(name)
		if err != nil {
			errs = append(errs, ValidationError{Field: KeyNames, Flag: "--name", Value: name, Message: err.Error()})
			continue
		}
		patterns = append(patterns, re)
	}

	types := make([]filesystem.EntryType, 0, len(c.Types))
	for _, token := range c.Types {
		t, err := filesystem.ParseEntryType(token)
		if err != nil {
			errs = append(errs, ValidationError{
				Field:      KeyTypes,
				Flag:       "--type",
				Value:      token,
				Message:    "unknown entry type",
				Suggestion: "use d, f or l",
			})
			continue
		}
		types = append(types, t)
	}

	if c.MaxDepth < filesystem.NoDepthLimit {
		errs = append(errs, ValidationError{
			Field:      KeyMaxDepth,
			Flag:       "--max-depth",
			Value:      strconv.Itoa(c.MaxDepth),
			Message:    "must not be negative",
			Suggestion: "use -1 for no limit",
		})
	}
	if c.MinDepth < 0 {
		errs = append(errs, ValidationError{
			Field:   KeyMinDepth,
			Flag:    "--min-depth",
			Value:   strconv.Itoa(c.MinDepth),
			Message: "must not be negative",
		})
	}

	color, err := output.ParseColorMode(c.Color)
	if err != nil {
		errs = append(errs, ValidationError{
			Field:      KeyColor,
			Flag:       "--color",
			Value:      c.Color,
			Message:    "unknown color mode",
			Suggestion: "use auto, always or never",
		})
	}

	if len(errs) > 0 {
		return nil, errs
	}

	roots := make([]string, len(c.Paths))
	copy(roots, c.Paths)

	return &Settings{
		Roots:   roots,
		Filters: filter.NewFilterSet(patterns, types),
		Walk:    filesystem.WalkOptions{MaxDepth: c.MaxDepth, MinDepth: c.MinDepth},
		Color:   color,
		Verbose: c.Verbose,
	}, nil
}

// SaveConfig writes cfg as YAML to path. An existing file is never overwritten.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing config file: %w", err)
	}
	return f.Close()
}
