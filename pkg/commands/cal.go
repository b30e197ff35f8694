package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/month"
	"tableflip.dev/daybook/pkg/runner/cal"
)

func addCal(topLevel *cobra.Command, v *viper.Viper) {
	mo := &options.MonthOptions{}
	count := 1
	long := false

	cmd := &cobra.Command{
		Use:   "cal",
		Short: "Print month calendars with journaled days marked",
		Example: `
daybook cal
daybook cal --month 2025-01 -n 3
daybook cal --long
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			u, err := mo.GetMonth(now)
			if err != nil {
				return output.HandleError(err)
			}
			if u == nil {
				this := month.FromTime(now)
				u = &this
			}
			e, err := loadEnv(v, false)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			s := cal.Cal{From: *u, Count: count, Long: long, Persistence: e.store}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddMonthArgs(cmd, mo)
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of months to print.")
	cmd.Flags().BoolVar(&long, "long", false, "One line per day with the entry.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
