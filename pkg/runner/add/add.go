package add

import (
	"context"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/printers"
	"tableflip.dev/tick/pkg/store"
)

type Add struct {
	Text string

	Persistence store.Persistence
}

func (n *Add) Do(ctx context.Context) error {
	svc := &app.Service{Persistence: n.Persistence}
	if _, err := svc.Add(ctx, n.Text); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.TitleWithCount("tick", len(svc.Items()))
	pp.List(svc.Items()...)

	return nil
}
