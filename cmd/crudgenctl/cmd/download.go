package cmd

import (
	"context"
	"fmt"

	"crudgen/internal/artifact"

	"github.com/spf13/cobra"
)

var downloadOut string

// renamed сохраняет архив под именем, заданным флагом --out
type renamed struct {
	artifact.Store
	name string
}

func (r renamed) Save(ctx context.Context, _ string, data []byte) (artifact.Object, error) {
	return r.Store.Save(ctx, r.name, data)
}

var downloadCmd = &cobra.Command{
	Use:   "download FILE",
	Short: "Generate the project for a schema file and store the zip archive",
	Long: `Stores the archive with the configured artifact driver: a local directory
(artifactsRoot) or an S3 bucket.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadSchema(args[0])
		if err != nil {
			return err
		}
		store, err := artifact.Open(cfg.Artifacts())
		if err != nil {
			return err
		}
		if downloadOut != "" {
			store = renamed{Store: store, name: downloadOut}
		}

		ed := newEditor()
		defer ed.Close()
		ed.Load(doc)

		obj, err := ed.Download(cmd.Context(), store)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes, sha256 %s)\n", obj.Location, obj.Size, obj.SHA256)
		return nil
	},
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOut, "out", "o", "", "archive name (default fastapi_project.zip)")
	rootCmd.AddCommand(downloadCmd)
}
