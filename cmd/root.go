// Package cmd provides the entrypoint for the folio cli.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/isometry/folio/internal/config"
	"github.com/isometry/folio/internal/helpers"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configFilePath string
	logger         *slog.Logger
)

// boundEnvVar describes a flag bound to a configuration variable. Env overrides the environment
// variable derived from Name and Short is an optional one-letter alias.
type boundEnvVar[T argType] struct {
	Name, Description string
	Env, Short        string
	Hidden            bool
	// Count turns an int flag into a repeatable counter such as -vvv.
	Count bool
}

// New returns the root command for folio.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "folio",
		Short:        "Serve a small personal site over raw HTTP/1.1",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := reloadConfig(cmd); err != nil {
				return err
			}
			config.Global.Mode = strings.TrimSpace(config.Global.Mode)
			if cmd.HasParent() {
				config.Global.Mode = cmd.Name()
			}
			logger = helpers.NewLogger(os.Stdout, config.Global.Logging.Verbosity, config.Global.Logging.CallerTrace).
				With("mode", config.Global.Mode)
			return config.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch config.Global.Mode {
			case config.ModeService:
				return runService(cmd, args)
			case config.ModeLambda:
				return runLambda(cmd, args)
			default:
				return fmt.Errorf("invalid mode: %s", config.Global.Mode)
			}
		},
	}

	// Root command flags
	cmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", "config.yaml", "path to the configuration file")

	// Configuration loading & defaults
	if err := errors.Join(
		config.LoadFromFile(configFilePath),
		config.SetDefaults(),
	); err != nil {
		panic(err)
	}

	// Dynamic flags
	setupDynamicFlags(cmd)

	// Subcommands
	cmd.AddCommand(
		cmdLambda(),
		cmdService(),
	)

	return cmd
}

func setupDynamicFlags(cmd *cobra.Command) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(replacer)
	envOverrides = nil

	bindEnvMap(cmd, envMapString)
	bindEnvMap(cmd, envMapBool)
	bindEnvMap(cmd, envMapInt)
	bindEnvMap(cmd, envMapDuration)
	bindEnvMap(cmd, svcEnvMapString)
	bindEnvMap(cmd, svcEnvMapBool)
	bindEnvMap(cmd, svcEnvMapInt)
	bindEnvMap(cmd, svcEnvMapDuration)
	bindEnvMap(cmd, lambdaEnvMapString)
}

// reloadConfig loads an explicitly requested configuration file. Environment variables override
// the file and flags set on the command line override both.
func reloadConfig(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if !flags.Changed("config") {
		return nil
	}

	explicit := map[string]string{}
	flags.Visit(func(f *pflag.Flag) {
		if f.Name != "config" {
			explicit[f.Name] = f.Value.String()
		}
	})

	if err := errors.Join(config.LoadFromFile(configFilePath), config.SetDefaults()); err != nil {
		return err
	}
	for _, apply := range envOverrides {
		apply()
	}
	for name, value := range explicit {
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("failed to restore flag %s: %w", name, err)
		}
	}
	return nil
}
