package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "tick",
		Short: options.Wrap80("A tiny persistent todo list."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, output)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addAdd(topLevel)
	addGet(topLevel)
	addEdit(topLevel)
	addRemove(topLevel)
	addVersion(topLevel)
}
