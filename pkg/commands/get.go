package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/commands/options"
	"tableflip.dev/tick/pkg/filter"
	"tableflip.dev/tick/pkg/runner/get"
	"tableflip.dev/tick/pkg/store"
)

func addGet(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "get",
		Aliases: []string{"ls", "list"},
		Short:   "List items.",
		Example: `
tick get
tick get --status incomplete
tick get --search milk --show-id
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := filter.ParseStatus(fo.Status)
			if err != nil {
				return output.HandleError(err)
			}
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := get.Get{
				ShowID:      io.ShowID,
				Filter:      filter.State{Status: status, Term: fo.Search},
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
