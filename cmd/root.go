// file: cmd/root.go
// version: 2.0.0
// guid: 6a7b8c9d-0e1f-2a3b-4c5d-6e7f8a9b0c1d

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jdfalk/bookstreamer/internal/config"
	"github.com/jdfalk/bookstreamer/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd builds the command tree. Each tree owns its viper instance so
// tests can execute commands repeatedly without leaking flag state.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "bookstreamer",
		Short: "Book autofill server for the BookStreamer reading log",
		Long: `BookStreamer serves POST /api/autofill, which combines a generated
book summary and a cover image lookup into a single response.

Running without a subcommand starts the server, same as "bookstreamer serve".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v, cfgFile); err != nil {
				return err
			}
			loaded, err := config.Load(v)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			*cfg = loaded
			logging.Init(logging.Options{
				Level:   cfg.LogLevel,
				File:    cfg.LogFile,
				Console: cfg.LogConsole,
			})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), v, *cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bookstreamer.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-file", "", "also write logs to this file, rotated")
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))

	rootCmd.AddCommand(newServeCmd(v, cfg))
	rootCmd.AddCommand(newAutofillCmd(cfg))
	rootCmd.AddCommand(newCheckCmd(cfg))
	rootCmd.AddCommand(newConfigCmd(cfg))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".bookstreamer")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	logging.Info("using config file", "path", v.ConfigFileUsed())
	return nil
}
