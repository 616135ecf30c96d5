package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/runner/edit"
	"tableflip.dev/tick/pkg/store"
)

func addEdit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "edit <ref> <new text>",
		Short: "Replace the text of an item, found by ID or exact text.",
		Example: `
tick edit "buy milk" buy oat milk
tick edit 7b0a8e9c-1f0e-4f1a-9f57-0a1b2c3d4e5f buy oat milk
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires the item ref and the new text")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := edit.Edit{
				Ref:         args[0],
				Text:        strings.Join(args[1:], " "),
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
