package cli

import (
	"fmt"
	"goal-stock/api"
	"goal-stock/render"
	"strings"

	"github.com/spf13/cobra"
)

var quoteNoColor bool

var quoteCmd = &cobra.Command{
	Use:   "quote <symbol>",
	Short: "Latest market quote from Yahoo Finance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuote(cmd, api.YahooQuotes{}, args[0])
	},
}

func init() {
	quoteCmd.Flags().BoolVar(&quoteNoColor, "no-color", false, "disable colored output")
}

func runQuote(cmd *cobra.Command, quotes api.QuoteFetcher, symbol string) error {
	q, err := quotes.FetchQuote(cmd.Context(), strings.ToUpper(strings.TrimSpace(symbol)))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), render.RenderQuote(q, 0, !quoteNoColor))
	return nil
}
