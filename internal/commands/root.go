package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlioz/findr"
	"github.com/mlioz/findr/pkg/config"
	"github.com/mlioz/findr/pkg/filesystem"
	"github.com/mlioz/findr/pkg/logger"
	"github.com/mlioz/findr/pkg/output"
	"github.com/mlioz/findr/pkg/search"
)

// RootCmd creates and returns the findr command
func RootCmd() *cobra.Command {
	var configFile string
	var initConfig bool

	cmd := &cobra.Command{
		Use:   "findr [PATH...]",
		Short: "Find filesystem entries by name and type",
		Long: `findr walks each PATH (default: the current directory) depth-first and
prints every entry whose base name matches one of the --name regular
expressions and whose type is one of the --type values.

Entries that cannot be read are reported on stderr and skipped; the
search always runs to the end.

Configuration is layered, highest first: flags, FINDR_* environment
variables (FINDR_NAMES, FINDR_TYPES, FINDR_MAX_DEPTH, ...), a .findr.yml
file in the current or home directory, built-in defaults.`,
		Example: `  findr
  findr src docs --name '\.go$' --name '\.md$'
  findr --type f --name '\.log$'
  findr /etc --type l --max-depth 2`,
		Version:       findr.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if initConfig {
				return writeDefaultConfig(cmd)
			}
			return runSearch(cmd, args, configFile)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayP("name", "n", nil, "Regular expression matched against base names (repeatable)")
	flags.StringArrayP("type", "t", nil, "Entry type: d (directory), f (file), l (symlink) (repeatable)")
	flags.Int("max-depth", filesystem.NoDepthLimit, "Do not descend below this depth (-1: unlimited)")
	flags.Int("min-depth", 0, "Do not print entries above this depth")
	flags.String("color", string(output.ColorAuto), "Colorize output: auto, always or never")
	flags.BoolP("verbose", "v", false, "Log progress to stderr")
	flags.StringVar(&configFile, "config", "", "Read configuration from this file instead of "+config.FileName)
	flags.BoolVar(&initConfig, "init-config", false, "Write a default "+config.FileName+" in the current directory and exit")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		output.NewPrinter(c.OutOrStdout(), c.ErrOrStderr(), output.ColorAuto).Error(err.Error())
		return err
	})

	return cmd
}

// Execute runs the root command
func Execute() error {
	return RootCmd().Execute()
}

func runSearch(cmd *cobra.Command, args []string, configFile string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ColorAuto)

	settings, used, err := loadSettings(cmd, args, configFile)
	if err != nil {
		printer.Error(err.Error())
		return err
	}

	printer = output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), settings.Color)

	log := logger.NewSilentLogger()
	if settings.Verbose {
		log = logger.NewVerboseLogger(cmd.ErrOrStderr())
	}
	if used != "" {
		log.Debug("loaded config", logger.F("file", used))
	}

	searcher := search.New(settings.Filters,
		search.WithWalkOptions(settings.Walk),
		search.WithLogger(log),
	)
	if _, err := searcher.Run(settings.Roots, printer); err != nil {
		printer.Error(err.Error())
		return err
	}
	return nil
}

// loadSettings merges flags, env and config file; positional args replace configured paths.
func loadSettings(cmd *cobra.Command, args []string, configFile string) (*config.Settings, string, error) {
	v := config.NewViper()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, "", err
	}

	searchPaths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, home)
	}

	used, err := config.ReadFile(v, configFile, searchPaths...)
	if err != nil {
		return nil, "", err
	}

	cfg := config.Load(v)
	if len(args) > 0 {
		cfg.Paths = args
	}

	settings, err := cfg.Build()
	if err != nil {
		return nil, "", err
	}
	return settings, used, nil
}

func writeDefaultConfig(cmd *cobra.Command) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ColorAuto)

	if err := config.SaveConfig(config.FileName, config.DefaultConfig()); err != nil {
		printer.Error(err.Error())
		return err
	}
	printer.Success(fmt.Sprintf("Wrote %s", config.FileName))
	return nil
}
