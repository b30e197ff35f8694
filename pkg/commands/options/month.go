package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/month"
)

// MonthOptions
type MonthOptions struct {
	MonthString string
}

func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVarP(&o.MonthString, "month", "m", "",
		`Limit to one month, example: --month=2025-09 or --month=this.`)
}

// GetMonth returns nil when no month was given.
func (o *MonthOptions) GetMonth(now time.Time) (*month.Unit, error) {
	switch o.MonthString {
	case "":
		return nil, nil
	case "this", "now":
		u := month.FromTime(now)
		return &u, nil
	}
	for _, layout := range []string{"2006-01", "2006-1", "Jan 2006", "January 2006"} {
		if t, err := time.Parse(layout, o.MonthString); err == nil {
			u := month.FromTime(t)
			return &u, nil
		}
	}
	return nil, fmt.Errorf("month %q, want yyyy-mm", o.MonthString)
}
