// Package commands contains the CLI command definitions.
package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/syssam/typegen/internal/logging"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	var level string
	rootCmd := &cobra.Command{
		Use:           "typegen",
		Short:         "Generate Go model packages from schema documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			lvl, err := zerolog.ParseLevel(level)
			if err != nil {
				return fmt.Errorf("invalid log level %q", level)
			}
			logging.SetGlobalLogger(logging.NewConsole(cmd.ErrOrStderr(), lvl))
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&level, "log-level", "info", "Log level (debug, info, warn, error)")

	registerGenerateCmd(rootCmd)

	return rootCmd
}
