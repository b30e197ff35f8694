package info

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/daybook/pkg/config"
	"tableflip.dev/daybook/pkg/month"
	"tableflip.dev/daybook/pkg/store"
)

// Info prints where daybook reads from and how many entries each month holds.
type Info struct {
	Config      *config.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("DAYBOOK_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "DAYBOOK_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "DAYBOOK_CONFIG_PATH env var not set")
	}
	if n.Config == nil {
		return fmt.Errorf("info: no config")
	}
	_, _ = fmt.Fprintln(out, "path:", n.Config.Path)
	_, _ = fmt.Fprintln(out, "log:", n.Config.LogFile)
	_, _ = fmt.Fprintf(out, "window: capacity %d, batch %d, trim %s\n",
		n.Config.Window.Capacity, n.Config.Window.Batch, n.Config.Window.TrimPolicy)

	if n.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	counts := map[month.Unit]int{}
	for _, e := range n.Persistence.ListAll(ctx) {
		counts[month.FromTime(e.Date)]++
	}
	if len(counts) == 0 {
		_, _ = color.New(color.Faint).Fprintln(out, "no entries")
		return nil
	}
	units := make([]month.Unit, 0, len(counts))
	for u := range counts {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool { return units[i].Before(units[j]) })

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Month"), bold.Sprint("Entries"))
	for _, u := range units {
		tbl.AddRow(u.String(), counts[u])
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
