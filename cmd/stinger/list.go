package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HerbHall/stinger/internal/catalog"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		sortBy    string
		services  []string
		genres    []string
		minRating float64
		maxRating float64
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List movies with optional facet and rating filters",
		Example: `  stinger list --sort rating
  stinger list --genres Comedy,Drama --services Netflix --min-rating 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if minRating < catalog.MinRating || maxRating > catalog.MaxRating || minRating > maxRating {
				return fmt.Errorf("rating range must satisfy %g <= min <= max <= %g", catalog.MinRating, catalog.MaxRating)
			}
			return withDeps(cmd.Context(), opts, func(d *deps) error {
				criteria := catalog.Criteria{
					Services: catalog.NewSet(services...),
					Genres:   catalog.NewSet(genres...),
					Rating:   &catalog.RatingRange{Min: minRating, Max: maxRating},
				}
				items := d.engine.ListFiltered(criteria, catalog.ParseSortOption(sortBy))
				return printJSON(cmd.OutOrStdout(), items)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&sortBy, "sort", "alphabetical", "sort order: alphabetical, rating or popularity")
	f.StringSliceVar(&services, "services", nil, "streaming services (any match)")
	f.StringSliceVar(&genres, "genres", nil, "genres (any match)")
	f.Float64Var(&minRating, "min-rating", catalog.MinRating, "minimum vote average")
	f.Float64Var(&maxRating, "max-rating", catalog.MaxRating, "maximum vote average")
	return cmd
}
