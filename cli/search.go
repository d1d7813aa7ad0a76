package cli

import (
	"fmt"
	"goal-stock/render"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the backend ticker catalog by symbol",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	catalog := newRemoteCatalog(newClient())
	defer catalog.Close()

	if err := catalog.Load(cmd.Context()); err != nil {
		return err
	}

	matches := catalog.Search(args[0])
	if len(matches) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no tickers match %q\n", args[0])
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), render.RenderTickers(matches))
	return nil
}
