// Package cal prints month grids with the days that have entries marked.
package cal

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/daybook/pkg/month"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
)

type Cal struct {
	From  month.Unit
	Count int
	// Long prints one line per day instead of a grid.
	Long bool
	Out  io.Writer

	Persistence store.Persistence
}

func (n *Cal) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not print calendar, no persistence")
	}
	pp := printers.PrettyPrint{Out: n.Out}
	u := n.From
	for i := 0; i < max(1, n.Count); i++ {
		entries := n.Persistence.ListMonth(ctx, u.Month, u.Year)
		if n.Long {
			pp.MonthLong(u, entries...)
		} else {
			pp.Month(u, entries...)
		}
		u = month.Next(u)
	}
	return nil
}
