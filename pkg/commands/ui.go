package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/app"
	teaui "tableflip.dev/tick/pkg/runner/tea"
	"tableflip.dev/tick/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "ui",
		Aliases: []string{"tui"},
		Short:   "Open the interactive list.",
		Example: `
tick ui
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			svc := &app.Service{Persistence: p}
			err = teaui.Run(svc)
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
