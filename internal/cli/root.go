// Package cli provides the binarytrack command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/askiada/go-binarytrack/internal/config"
	"github.com/askiada/go-binarytrack/internal/ctxlog"
	"github.com/askiada/go-binarytrack/pkg/track/container"
)

// OpenerFunc builds the container opener, given the attribute names to probe.
type OpenerFunc func(attributes []string) container.Opener

type configKey struct{}

// NewRootCmd creates the root command. open provides access to track files.
func NewRootCmd(open OpenerFunc) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "binarytrack",
		Short: "Assemble binary star evolution tracks",
		Long: `binarytrack reads binary star evolution files, aligns the histories of both stars
on the binary history, merges them into one table and appends derived fields.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger, err := cfg.Logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if cfg.File != "" {
				logger.Debug("config loaded", "file", cfg.File)
			}

			ctx := ctxlog.WithLogger(cmd.Context(), logger)
			ctx = context.WithValue(ctx, configKey{}, cfg)
			cmd.SetContext(ctx)

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./"+config.DefaultFile+")")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text|json)")
	rootCmd.PersistentFlags().String("key", "", "sequence key shared by the histories")
	rootCmd.PersistentFlags().StringSlice("attribute", nil, "group attribute probed in track files (repeatable)")

	rootCmd.AddCommand(newAssembleCommand(open))
	rootCmd.AddCommand(newInspectCommand(open))
	rootCmd.AddCommand(newProfilesCommand(open))
	rootCmd.AddCommand(newFieldsCommand(open))
	rootCmd.AddCommand(newGridCommand(open))

	return rootCmd
}

// Execute runs the root command and reports errors on stderr.
func Execute(ctx context.Context, open OpenerFunc) error {
	rootCmd := NewRootCmd(open)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	return err
}

// getConfig returns the configuration loaded by the root command.
func getConfig(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(configKey{}).(*config.Config)

	return cfg
}

func opener(ctx context.Context, open OpenerFunc) container.Opener {
	return open(getConfig(ctx).H5.Attributes)
}

func output(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}

	return f, f.Close, nil
}
