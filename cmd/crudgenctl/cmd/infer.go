package cmd

import (
	"strings"

	"crudgen/internal/schema"

	"github.com/spf13/cobra"
)

var inferOut string

var inferCmd = &cobra.Command{
	Use:   "infer TEXT...",
	Short: "Infer a schema from a plain-language description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ed := newEditor()
		defer ed.Close()

		ents, err := ed.GenerateFromText(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		doc := schema.ToWire(ents)
		if inferOut != "" {
			return schema.WriteFile(inferOut, doc)
		}
		data, err := schema.Encode(doc, schema.FormatYAML)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	inferCmd.Flags().StringVarP(&inferOut, "out", "o", "", "write the schema to this file (.yaml or .json)")
	rootCmd.AddCommand(inferCmd)
}
