package remove

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/printers"
	"tableflip.dev/tick/pkg/store"
)

type Remove struct {
	// Ref is the item to delete, given as its ID or its exact text.
	Ref string

	// Force skips the confirmation prompt.
	Force bool

	// Confirm asks the user a yes/no question before a destructive
	// action. Defaults to reading from stdin.
	Confirm func(prompt string) bool

	Persistence store.Persistence
}

func (n *Remove) Do(ctx context.Context) error {
	svc := &app.Service{Persistence: n.Persistence}
	if err := svc.Hydrate(ctx); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}

	it := svc.Find(n.Ref)
	if it == nil {
		// Deleting what is not there is a no-op, same rule as the
		// collection itself.
		pp.Empty(fmt.Sprintf("nothing matches %q", n.Ref))
		return nil
	}

	if !n.Force {
		confirm := n.Confirm
		if confirm == nil {
			confirm = askStdin
		}
		if !confirm(fmt.Sprintf("delete %q?", it.Text)) {
			pp.Empty("kept")
			return nil
		}
	}

	if err := svc.Remove(ctx, it.ID); err != nil {
		return err
	}

	pp.TitleWithCount("tick", len(svc.Items()))
	pp.List(svc.Items()...)

	return nil
}

func askStdin(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
