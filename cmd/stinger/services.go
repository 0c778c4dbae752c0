package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newServicesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the streaming services offered across the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDeps(cmd.Context(), opts, func(d *deps) error {
				for _, s := range d.engine.StreamingServices() {
					fmt.Fprintln(cmd.OutOrStdout(), s)
				}
				return nil
			})
		},
	}
}
