package commands

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/daybook/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command, v *viper.Viper) {
	demo := false
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the scrolling calendar",
		Example: `
daybook ui
daybook ui --demo
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			fd := os.Stdout.Fd()
			if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
				return errors.New("ui needs an interactive terminal")
			}
			e, err := loadEnv(v, true)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := context.Background()
			i := ui.UI{Config: e.cfg, Persistence: e.store, Logger: e.log}
			if demo {
				p, dir, err := ui.DemoStore(ctx, time.Now())
				if err != nil {
					return err
				}
				defer os.RemoveAll(dir)
				i.Persistence = p
			}
			return i.Do(ctx)
		},
	}
	cmd.Flags().BoolVar(&demo, "demo", false, "Browse generated sample entries instead of the journal.")

	topLevel.AddCommand(cmd)
}
