package cmd

import (
	"fmt"

	"crudgen/internal/editor"

	"github.com/spf13/cobra"
)

var previewFile string

var previewCmd = &cobra.Command{
	Use:   "preview FILE",
	Short: "Print the generated code for a schema file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadSchema(args[0])
		if err != nil {
			return err
		}

		ed := newEditor()
		defer ed.Close()
		ed.Load(doc)

		p, err := ed.RefreshPreview(cmd.Context())
		if err != nil {
			return fmt.Errorf("preview: %w", err)
		}

		out := cmd.OutOrStdout()
		if previewFile != "" {
			content, ok := p.Files[previewFile]
			if !ok {
				return fmt.Errorf("%w %q (have: %v)", editor.ErrUnknownTab, previewFile, p.Names())
			}
			fmt.Fprint(out, content)
			return nil
		}
		for _, name := range p.Names() {
			fmt.Fprintf(out, "# ==> %s <==\n%s\n", name, p.Files[name])
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().StringVarP(&previewFile, "file", "f", "", "print only this file (e.g. models.py)")
	rootCmd.AddCommand(previewCmd)
}
