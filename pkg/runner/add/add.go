package add

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/month"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
)

// Add records one entry and prints its month.
type Add struct {
	Raw entry.Raw

	Persistence store.Persistence
	Printer     *printers.PrettyPrint
}

func (n *Add) Do(ctx context.Context) error {
	if n.Raw.Date == "" || n.Raw.Date == "today" {
		n.Raw.Date = time.Now().Format(entry.DateLayout)
	}
	e, err := n.Raw.Resolve()
	if err != nil {
		return err
	}
	if n.Persistence == nil {
		return errors.New("can not add, no persistence")
	}
	if err := n.Persistence.Store(&e); err != nil {
		return err
	}

	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	u := month.FromTime(e.Date)
	all := n.Persistence.ListMonth(ctx, u.Month, u.Year)
	pp.TitleWithCount(u.String(), len(all))
	pp.Entries(all...)
	return nil
}
