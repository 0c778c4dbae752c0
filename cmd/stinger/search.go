package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Rank movies against a free-text query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), opts, func(d *deps) error {
				return printJSON(cmd.OutOrStdout(), d.engine.Search(strings.Join(args, " ")))
			})
		},
	}
}
