package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"crudgen/internal/config"
	"crudgen/internal/dsl"
	"crudgen/internal/editor"
	"crudgen/internal/generator"
	"crudgen/internal/logging"
	"crudgen/internal/schema"

	"github.com/apex/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	baseURL  string
	logLevel string

	cfg    config.Config
	logger *log.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "crudgenctl",
	Short:         "Preview and download generated FastAPI CRUD projects from a schema file",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return err
		}
		if cmd.Flags().Changed("base-url") {
			cfg.BaseURL = baseURL
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		logger, err = logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", editor.UserMessage(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "crudgen.json", "config JSON (missing file is ignored)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", generator.DefaultBaseURL, "generator service base URL")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug/info/warn/error)")
}

// newEditor создаёт редактор на один запуск команды. Команды сами вызывают RefreshPreview.
func newEditor() *editor.Editor {
	client := generator.New(generator.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout(),
		Logger:  logger,
	})
	return editor.New(client, editor.Options{
		Debounce: cfg.Debounce(),
		Timeout:  cfg.Timeout(),
		Logger:   logger,
	})
}

// loadSchema читает .dsl, .yaml/.yml или .json
func loadSchema(path string) (schema.Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".dsl") {
		return dsl.LoadFile(path)
	}
	return schema.ReadFile(path)
}
