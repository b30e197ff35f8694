package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/importer"
)

func addImport(topLevel *cobra.Command, v *viper.Viper) {
	dryRun := false

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import entries from a JSON or YAML array",
		Long: `Import entries from a JSON or YAML array. Each entry has a date
(dd/mm/yyyy), a rating from 0 to 5 and optional categories, imgUrl and
description. Invalid entries are reported and skipped.`,
		Example: `
daybook import entries.json
cat entries.yaml | daybook import -
daybook import --dry-run entries.json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			s := importer.Importer{Path: path, DryRun: dryRun}
			if !dryRun {
				e, err := loadEnv(v, false)
				if err != nil {
					return output.HandleError(err)
				}
				defer e.Close()
				s.Persistence = e.store
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate without storing.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
