package cli

import (
	"errors"
	"fmt"
	"goal-stock/models"
	"goal-stock/render"
	"goal-stock/rows"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	analyzeRows    []string
	analyzeFile    string
	analyzeAttach  bool
	analyzeTarget  string
	analyzeNoColor bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Submit rows for analysis and print the result",
	Long: `Builds the row list from a CSV/XLSX file (columns Ticker and BuyDate)
and/or --row flags, then posts it to the analysis server.

Examples:
  goal-stock analyze --row AAPL:2024-01-02 --row MSFT:2024-02-01 --target 10
  goal-stock analyze --file trades.xlsx --target 5`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringArrayVar(&analyzeRows, "row", nil, "TICKER:DATE row, repeatable")
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "CSV or XLSX file to import")
	analyzeCmd.Flags().BoolVar(&analyzeAttach, "attach", false, "also upload the file itself as excel_file")
	analyzeCmd.Flags().StringVarP(&analyzeTarget, "target", "t", "10", "target profit in percent")
	analyzeCmd.Flags().BoolVar(&analyzeNoColor, "no-color", false, "disable colored output")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	target, err := parseTarget(analyzeTarget)
	if err != nil {
		return err
	}

	// No catalog: autocomplete is not needed off-screen.
	ctrl := rows.NewController(nil, nil)

	var upload *models.Upload
	if analyzeFile != "" {
		upload, err = readUpload(analyzeFile)
		if err != nil {
			return err
		}
		warnings, err := ctrl.Import(upload.Filename, upload.Data)
		for _, w := range warnings {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
		}
		if err != nil {
			return err
		}
	}

	for _, value := range analyzeRows {
		entry, err := parseRow(value)
		if err != nil {
			return err
		}
		row := ctrl.AddRow(entry.Ticker, entry.Date)
		if !row.DateValid() {
			log.Warn().Str("ticker", entry.Ticker).Str("date", entry.Date).Msg("date is not YYYY-MM-DD, sending as typed")
		}
	}

	if ctrl.Len() == 0 {
		return errors.New("nothing to analyze: pass --row or --file")
	}

	req := models.AnalysisRequest{Rows: ctrl.Entries(), TargetProfit: target}
	if analyzeAttach {
		req.File = upload
	}

	presenter := render.Presenter{Color: !analyzeNoColor}
	res, err := newClient().Analyze(cmd.Context(), req)
	if err != nil {
		presenter.ShowErr(err)
		msg, _ := presenter.Error()
		return errors.New(msg)
	}
	presenter.ShowResult(res)
	fmt.Fprint(cmd.OutOrStdout(), presenter.Render())
	return nil
}
