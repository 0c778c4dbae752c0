// Package main is the stinger command: the catalog API server and a set of
// offline query and maintenance commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/HerbHall/stinger/internal/version"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath  string
	catalogPath string
	logLevel    string
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "stinger",
		Short:         "Movie catalog API with faceted filtering and relevance search",
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "path to configuration file")
	pf.StringVar(&opts.catalogPath, "catalog", "", "catalog source (.json, .yaml or .db); overrides catalog.path")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides log.level")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newListCmd(opts),
		newSearchCmd(opts),
		newGetCmd(opts),
		newServicesCmd(opts),
		newTrailerCmd(opts),
		newImportCmd(),
		newBackupCmd(opts),
		newRestoreCmd(),
		newVersionCmd(),
	)
	return rootCmd
}
