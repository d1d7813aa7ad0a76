package render

import (
	"errors"
	"fmt"
	"goal-stock/api"
	"goal-stock/models"
	"goal-stock/search"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const networkErrorMessage = "Could not reach the analysis server. Please try again."

// Presenter holds the two output regions of the screen. At most one of
// them is visible: showing an error hides the result and vice versa.
type Presenter struct {
	Color bool

	errMsg string
	result *models.AnalysisResult
}

// Reset hides both regions, as at the start of a submission.
func (p *Presenter) Reset() {
	p.errMsg = ""
	p.result = nil
}

func (p *Presenter) ShowError(msg string) {
	p.result = nil
	p.errMsg = msg
}

// ShowErr shows err in the error region. Errors that are not user-facing
// (an unavailable catalog) leave the regions untouched.
func (p *Presenter) ShowErr(err error) {
	if msg := ErrorMessage(err); msg != "" {
		p.ShowError(msg)
	}
}

func (p *Presenter) ShowResult(res *models.AnalysisResult) {
	p.errMsg = ""
	p.result = res
}

func (p *Presenter) Error() (string, bool) {
	return p.errMsg, p.errMsg != ""
}

func (p *Presenter) Result() *models.AnalysisResult {
	return p.result
}

// Render returns the visible region, or "" when both are hidden.
func (p *Presenter) Render() string {
	if p.errMsg != "" {
		return "Error: " + p.errMsg + "\n"
	}
	if p.result != nil {
		return RenderResult(p.result, p.Color)
	}
	return ""
}

// ErrorMessage maps an error to the text shown in the error region.
func ErrorMessage(err error) string {
	var analysisErr *api.AnalysisError
	switch {
	case err == nil, errors.Is(err, search.ErrCatalogUnavailable):
		return ""
	case errors.As(err, &analysisErr):
		return analysisErr.Message
	case errors.Is(err, api.ErrNetwork):
		return networkErrorMessage
	default:
		return err.Error()
	}
}

// RenderResult draws the summary followed by the realized and unrealized
// tables. Empty lists are omitted.
func RenderResult(res *models.AnalysisResult, color bool) string {
	var b strings.Builder

	summary := table.NewWriter()
	summary.SetStyle(table.StyleLight)
	summary.SetTitle("Summary")
	summary.AppendRows([]table.Row{
		{"Overall average profit", res.OverallAvgProfit.String() + "%"},
		{"Realized", strconv.Itoa(res.RealizedCount)},
		{"Unrealized", strconv.Itoa(res.UnrealizedCount)},
		{"Average days to target", res.AvgRealizedDays.String() + " days"},
	})
	b.WriteString(summary.Render())
	b.WriteString("\n")

	if len(res.RealizedList) > 0 {
		t := table.NewWriter()
		t.SetStyle(table.StyleLight)
		t.SetTitle("Target reached")
		t.AppendHeader(table.Row{"Symbol", "Buy date", "Buy price", "Sell price", "Reached on", "Profit", "Days"})
		for _, p := range res.RealizedList {
			t.AppendRow(table.Row{
				p.Symbol,
				p.BuyDate,
				money(p.BuyPrice.StringFixed(2)),
				money(p.SellPrice.StringFixed(2)),
				deref(p.AchieveDate),
				paint(color, text.FgGreen, p.Profit.String()+"%"),
				fmt.Sprintf("%d days", p.Days),
			})
		}
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	if len(res.UnrealizedList) > 0 {
		t := table.NewWriter()
		t.SetStyle(table.StyleLight)
		t.SetTitle("Still open")
		t.AppendHeader(table.Row{"Symbol", "Buy date", "Buy price", "Current price", "Profit", "Days"})
		for _, p := range res.UnrealizedList {
			c := text.FgRed
			if p.Profit.IsPositive() {
				c = text.FgGreen
			}
			t.AppendRow(table.Row{
				p.Symbol,
				p.BuyDate,
				money(p.BuyPrice.StringFixed(2)),
				money(p.SellPrice.StringFixed(2)),
				paint(color, c, p.Profit.String()+"%"),
				fmt.Sprintf("%d days", p.Days),
			})
		}
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	return b.String()
}

// RenderTickers lists catalog entries, used by the search command.
func RenderTickers(tickers []models.Ticker) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Symbol", "Name", "Rank"})
	for _, tk := range tickers {
		t.AppendRow(table.Row{tk.Symbol, tk.Name, tk.Rank})
	}
	return t.Render() + "\n"
}

func money(s string) string {
	return "$" + s
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func paint(enabled bool, c text.Color, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

// RenderQuote prints one market snapshot as a two-column table.
func RenderQuote(q *api.Quote, rank int, color bool) string {
	c := text.FgRed
	if !q.ChangePercent.IsNegative() {
		c = text.FgGreen
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(q.Symbol)
	t.AppendRow(table.Row{"Name", q.Name})
	if rank > 0 {
		t.AppendRow(table.Row{"Rank", rank})
	}
	t.AppendRows([]table.Row{
		{"Price", money(q.Price.StringFixed(2))},
		{"Previous close", money(q.PreviousClose.StringFixed(2))},
		{"Change", paint(color, c, q.ChangePercent.StringFixed(2)+"%")},
		{"As of", q.MarketTime.Format("2006-01-02 15:04 MST")},
	})
	return t.Render() + "\n"
}
