package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/entry"
)

// FilterOptions
type FilterOptions struct {
	Query     string
	Category  string
	MinRating float64
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Query, "search", "s", "",
		"Fuzzy match descriptions and categories.")
	cmd.Flags().StringVar(&o.Category, "category", "",
		"Only entries with this category.")
	cmd.Flags().Float64Var(&o.MinRating, "min-rating", 0,
		"Only entries rated at least this.")
}

func (o *FilterOptions) Filters() entry.Filters {
	return entry.Filters{Query: o.Query, Category: o.Category, MinRating: o.MinRating}
}
