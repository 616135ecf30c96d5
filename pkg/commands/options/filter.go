package options

import (
	"github.com/spf13/cobra"
)

// FilterOptions captures the visibility inputs for list output.
type FilterOptions struct {
	Status string
	Search string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVar(&o.Status, "status", "all",
		"Show only items with this status. One of 'all', 'completed' or 'incomplete'.")
	cmd.Flags().StringVar(&o.Search, "search", "",
		"Show only items whose text contains this term (case-insensitive).")
}
