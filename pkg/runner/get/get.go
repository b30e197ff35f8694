package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/month"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
)

// Output formats understood by Get.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Get lists entries, optionally limited to one month and filtered.
type Get struct {
	Month   *month.Unit
	Filters entry.Filters
	Output  string
	Out     io.Writer

	Persistence store.Persistence
}

func (n *Get) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not get, no persistence")
	}
	var all []entry.Dated
	if n.Month != nil {
		all = n.Persistence.ListMonth(ctx, n.Month.Month, n.Month.Year)
	} else {
		all = n.Persistence.ListAll(ctx)
	}
	all = n.Filters.Apply(all)

	out := n.Out
	if out == nil {
		out = color.Output
	}

	switch n.Output {
	case OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rawAll(all))
	case OutputYAML:
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(rawAll(all))
	case "", OutputTable:
		pp := printers.PrettyPrint{Out: out}
		if n.Month != nil {
			pp.TitleWithCount(n.Month.String(), len(all))
		} else {
			pp.TitleWithCount("All entries", len(all))
		}
		pp.Entries(all...)
		return nil
	default:
		return fmt.Errorf("get: unknown output %q", n.Output)
	}
}

func rawAll(all []entry.Dated) []entry.Raw {
	raws := make([]entry.Raw, 0, len(all))
	for _, e := range all {
		raws = append(raws, e.Raw())
	}
	return raws
}
