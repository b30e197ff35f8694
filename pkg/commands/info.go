package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/daybook/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command, v *viper.Viper) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the configuration and entry counts per month",
		Example: `
daybook info
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(v, false)
			if err != nil {
				return err
			}
			defer e.Close()
			s := info.Info{Config: e.cfg, Persistence: e.store}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
