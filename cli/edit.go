package cli

import (
	"goal-stock/models"
	"goal-stock/tui"

	"github.com/spf13/cobra"
)

var (
	editImport string
	editTarget string
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Interactive row editor with ticker autocomplete",
	Long: `Opens the terminal editor. The ticker catalog is loaded from the
analysis server first; if that fails the editor still works, only without
suggestions. ctrl+o imports another file at any time, replacing the rows.
Logs go to the log file only (logging.file_path).`,
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editImport, "import", "i", "", "CSV or XLSX file to load into the rows")
	editCmd.Flags().StringVarP(&editTarget, "target", "t", "10", "target profit in percent")
}

func runEdit(cmd *cobra.Command, args []string) error {
	target, err := parseTarget(editTarget)
	if err != nil {
		return err
	}

	var upload *models.Upload
	if editImport != "" {
		if upload, err = readUpload(editImport); err != nil {
			return err
		}
	}

	client := newClient()
	catalog := newRemoteCatalog(client)
	defer catalog.Close()

	return tui.Run(cmd.Context(), tui.Options{
		Catalog:      catalog,
		Analyzer:     client,
		TargetProfit: target,
		Import:       upload,
	})
}
