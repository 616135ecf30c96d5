package edit

import (
	"context"
	"fmt"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/printers"
	"tableflip.dev/tick/pkg/store"
)

type Edit struct {
	// Ref is the item to rename, given as its ID or its exact text.
	Ref  string
	Text string

	Persistence store.Persistence
}

func (n *Edit) Do(ctx context.Context) error {
	svc := &app.Service{Persistence: n.Persistence}
	if err := svc.Hydrate(ctx); err != nil {
		return err
	}

	it := svc.Find(n.Ref)
	if it == nil {
		return fmt.Errorf("no item matches %q: %w", n.Ref, app.ErrNotFound)
	}
	if _, err := svc.Rename(ctx, it.ID, n.Text); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.TitleWithCount("tick", len(svc.Items()))
	pp.List(svc.Items()...)

	return nil
}
