package cmd

import (
	"fmt"

	"crudgen/internal/schema"

	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:   "lint FILE",
	Short: "Report naming and relation problems in a schema file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadSchema(args[0])
		if err != nil {
			return err
		}
		issues := schema.Lint(schema.Normalize(doc, schema.NewIDGen()))
		out := cmd.OutOrStdout()
		for _, it := range issues {
			loc := it.Entity
			if it.Field != "" {
				loc += "." + it.Field
			}
			fmt.Fprintf(out, "%s: %s (%s)\n", loc, it.Message, it.Code)
		}
		if len(issues) > 0 {
			return fmt.Errorf("%d issue(s) found", len(issues))
		}
		fmt.Fprintln(out, "ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
