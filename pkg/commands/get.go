package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/get"
)

func addGet(topLevel *cobra.Command, v *viper.Viper) {
	mo := &options.MonthOptions{}
	fo := &options.FilterOptions{}
	oo := &options.FormatOptions{}

	cmd := &cobra.Command{
		Use:     "get",
		Aliases: []string{"list", "ls"},
		Short:   "List entries",
		Example: `
daybook get --month this
daybook get --min-rating 4 -o yaml
daybook get -s walk --category outdoors
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := mo.GetMonth(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			e, err := loadEnv(v, false)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			s := get.Get{
				Month:       u,
				Filters:     fo.Filters(),
				Output:      oo.Format,
				Persistence: e.store,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddMonthArgs(cmd, mo)
	options.AddFilterArgs(cmd, fo)
	options.AddFormatArg(cmd, oo)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
