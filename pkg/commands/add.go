package commands

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command, v *viper.Viper) {
	ao := &options.AddOptions{}

	cmd := &cobra.Command{
		Use:   "add [description]",
		Short: "Add an entry",
		Example: `
daybook add long walk by the river --rating 4.5 -c walk,outdoors
daybook add --on 9/14 --rating 3 quiet day
daybook add --img ~/photos/coast.jpg -r 5 trip to the coast
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				ao.Description = strings.Join(args, " ")
				return nil
			}
			in, ok := cmd.InOrStdin().(*os.File)
			if !ok || !isatty.IsTerminal(in.Fd()) {
				return errors.New("requires a description")
			}
			desc, err := options.PromptDescription(in, os.Stdout)
			if err != nil {
				return err
			}
			ao.Description = desc
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := ao.Raw()
			if err != nil {
				return output.HandleError(err)
			}
			e, err := loadEnv(v, false)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			s := add.Add{Raw: raw, Persistence: e.store}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddAddArgs(cmd, ao)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
