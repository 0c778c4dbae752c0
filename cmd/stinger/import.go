package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HerbHall/stinger/internal/store"
	pkgcatalog "github.com/HerbHall/stinger/pkg/catalog"
)

func newImportCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a JSON or YAML catalog into a SQLite database",
		Long: `Import validates a catalog file and replaces the contents of the SQLite
database with it. Without --from the embedded sample catalog is imported.
Serve the result with --catalog <db>.`,
		Example: "  stinger import --from movies.json --to catalog.db",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if to == "" {
				return errors.New("--to is required")
			}

			var (
				cat *pkgcatalog.Catalog
				err error
			)
			if from == "" {
				cat, err = pkgcatalog.Embedded()
			} else {
				cat, err = pkgcatalog.LoadFile(from)
			}
			if err != nil {
				return err
			}

			db, err := store.New(to)
			if err != nil {
				return err
			}
			defer db.Close()

			all := cat.All()
			items := make([]pkgcatalog.Item, len(all))
			for i, it := range all {
				items[i] = *it
			}
			if err := db.ImportItems(cmd.Context(), items); err != nil {
				return fmt.Errorf("importing into %s: %w", to, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d items into %s\n", len(items), to)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source catalog file (.json, .yaml or .yml)")
	cmd.Flags().StringVar(&to, "to", "", "destination SQLite database")
	return cmd
}
