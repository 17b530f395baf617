package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/chatvault/internal/app"
	"github.com/heartmarshall/chatvault/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "chatctl",
		Short:        "chatvault operator tool",
		Long:         `chatctl manages a chatvault deployment: schema migrations, retention cleanups, per-user settings and test tokens.`,
		Version:      app.BuildVersion(),
		SilenceUsage: true,
	}

	root.AddCommand(
		newVersionCmd(),
		newMigrateCmd(),
		newCleanupCmd(),
		newSettingsCmd(),
		newTokenCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chatctl %s\n", app.BuildVersion())
		},
	}
}

// loadConfig loads configuration and a logger the same way the server does.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	app.NewLogger(cfg.Log)
	return cfg, nil
}
