// Package cli holds the goal-stock commands.
package cli

import (
	"goal-stock/api"
	"goal-stock/config"
	"goal-stock/logger"
	"goal-stock/search"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "goal-stock",
	Short: "Trade history analysis client",
	Long: `goal-stock builds a list of (ticker, buy date) rows, sends them to the
analysis server together with a target profit and prints which positions
reached the target.

Commands:
    edit        interactive row editor with ticker autocomplete
    analyze     submit rows from flags or a CSV/XLSX file
    search      look up tickers in the catalog
    quote       latest market quote for a symbol
    serve       ticker catalog server (GET /autocomplete)
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (env and .env still apply)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(quoteCmd)
}

func initConfig(cmd *cobra.Command) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = c

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	return logger.Init(logger.Config{
		Level:       level,
		Format:      cfg.Logging.Format,
		FilePath:    cfg.Logging.FilePath,
		FileOnly:    cmd.Name() == editCmd.Name(),
		ServiceName: "goal-stock",
	})
}

func newClient() *api.Client {
	return api.NewClient(cfg.Backend.URL, nil)
}

// newRemoteCatalog returns a catalog fed by the backend's /autocomplete.
func newRemoteCatalog(client *api.Client) *search.Catalog {
	return search.NewCatalog(client, search.EngineKind(cfg.Search.Engine))
}
