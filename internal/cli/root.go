package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/blackboard/config"
)

// RootOptions holds global flags and the configuration resolved from them.
type RootOptions struct {
	ConfigFile string

	// Config is populated in PersistentPreRunE.
	Config *config.Config
}

// flagKeys maps flag names to their viper keys.
var flagKeys = map[string]string{
	"log-level":     "log.level",
	"log-format":    "log.format",
	"strict":        "run.strict",
	"dump":          "run.dump",
	"shared-memory": "run.shared_memory",
}

// NewRootCommand creates the root command for the blackboard CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	defaults := config.NewDefaultConfig()

	cmd := &cobra.Command{
		Use:           "blackboard",
		Short:         "Typed fact store with a pipeline of stateless agents",
		Long:          "Runs triangle scenarios through an angle deduction and right angle pipeline sharing one typed memory store.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.InitViper(opts.ConfigFile)
			if err != nil {
				return WrapExitError(ExitCommandError, "loading configuration", err)
			}
			bindFlags(v, cmd)
			c, err := config.Load(v)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid configuration", err)
			}
			opts.Config = c
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().String("log-level", defaults.Log.Level, "log level (debug|info|warn|error)")
	cmd.PersistentFlags().String("log-format", defaults.Log.Format, "log format (text|json)")

	// Add subcommands
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewScenariosCommand(opts))

	return cmd
}

// bindFlags connects the parsed flags of cmd to the viper precedence chain.
func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}
