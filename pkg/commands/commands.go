package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/config"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {
	v := config.New()

	cmd := &cobra.Command{
		Use:   "daybook",
		Short: base.Wrap80("A scrollable calendar of journal entries on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().String("path", "", "Directory holding the entries. Overrides the config file.")
	cmd.PersistentFlags().String("log-level", "", "One of debug, info, warn, error.")
	_ = v.BindPFlag("path", cmd.PersistentFlags().Lookup("path"))
	_ = v.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))

	AddCommands(cmd, v)
	return cmd
}

func AddCommands(topLevel *cobra.Command, v *viper.Viper) {
	addUI(topLevel, v)
	addAdd(topLevel, v)
	addImport(topLevel, v)
	addGet(topLevel, v)
	addCal(topLevel, v)
	addInfo(topLevel, v)
	addKey(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
