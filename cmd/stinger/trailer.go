package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newTrailerCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "trailer <id>",
		Short: "Look up the trailer video id for a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: must be an integer", args[0])
			}
			return withDeps(cmd.Context(), opts, func(d *deps) error {
				svc, err := newTrailerService(d.catalog, d.settings.Trailer, d.logger)
				if err != nil {
					return err
				}
				t, err := svc.Lookup(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), t)
			})
		},
	}
}
