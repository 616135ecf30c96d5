package get

import (
	"context"
	"fmt"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/filter"
	"tableflip.dev/tick/pkg/printers"
	"tableflip.dev/tick/pkg/store"
)

type Get struct {
	ShowID bool
	Filter filter.State

	Persistence store.Persistence
}

func (n *Get) Do(ctx context.Context) error {
	svc := &app.Service{Persistence: n.Persistence}
	if err := svc.Hydrate(ctx); err != nil {
		return err
	}

	visible := n.Filter.Apply(svc.Items())

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")

	if len(visible) == 0 {
		pp.TitleWithCount("tick", 0)
		pp.Empty(n.Filter.EmptyMessage())
		return nil
	}

	if n.ShowID {
		pp.Table("tick", visible...)
		return nil
	}

	pp.TitleWithCount("tick", len(visible))
	pp.List(visible...)

	return nil
}
