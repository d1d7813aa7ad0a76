package tui

import (
	"context"
	"errors"
	"goal-stock/api"
	"goal-stock/models"
	"goal-stock/search"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalyzer struct {
	calls  atomic.Int32
	last   models.AnalysisRequest
	result *models.AnalysisResult
	err    error
}

func (s *stubAnalyzer) Analyze(_ context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	s.calls.Add(1)
	s.last = req
	return s.result, s.err
}

type downSource struct{}

func (downSource) FetchTickers(context.Context) ([]models.Ticker, error) {
	return nil, errors.New("connection refused")
}

func testCatalog() *search.Catalog {
	return search.NewStaticCatalog([]models.Ticker{
		{Symbol: "AAPL", Name: "Apple Inc.", Rank: 1},
		{Symbol: "AMZN", Name: "Amazon.com, Inc.", Rank: 2},
		{Symbol: "MSFT", Name: "Microsoft Corporation", Rank: 3},
	}, search.EngineMemory)
}

func newReadyModel(t *testing.T, opts Options) *Model {
	t.Helper()
	if opts.Catalog == nil {
		opts.Catalog = testCatalog()
	}
	if opts.Analyzer == nil {
		opts.Analyzer = &stubAnalyzer{}
	}
	m := NewModel(context.Background(), opts)
	m.Update(m.loadCatalog()())
	require.True(t, m.ready)
	return m
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestStartupAddsOneEmptyRow(t *testing.T) {
	m := newReadyModel(t, Options{})

	require.Equal(t, 1, m.Controller().Len())
	assert.Equal(t, models.RowEntry{}, m.Controller().Entries()[0])
	assert.NotNil(t, m.Controller().Rows()[0].Autocomplete())
}

func TestKeysIgnoredUntilCatalogLoaded(t *testing.T) {
	m := NewModel(context.Background(), Options{Catalog: testCatalog(), Analyzer: &stubAnalyzer{}})
	m.Update(key(tea.KeyCtrlN))
	assert.Equal(t, 0, m.Controller().Len())
	assert.Contains(t, m.View(), "Loading")
}

func TestStartupWithUnavailableCatalog(t *testing.T) {
	m := newReadyModel(t, Options{Catalog: search.NewCatalog(downSource{}, search.EngineMemory)})

	row := m.Controller().Rows()[0]
	assert.Nil(t, row.Autocomplete())
	_, ok := m.presenter.Error()
	assert.False(t, ok, "catalog failures are not shown")

	typeText(m, "AAPL")
	assert.Equal(t, "AAPL", row.Ticker())
	assert.False(t, row.SuggestionsOpen())
}

func TestTypingOpensSuggestionsAndEnterSelects(t *testing.T) {
	m := newReadyModel(t, Options{})
	row := m.Controller().Rows()[0]

	typeText(m, "a")
	require.True(t, row.SuggestionsOpen())
	assert.Contains(t, m.View(), "Apple Inc.")

	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyEnter))

	assert.Equal(t, "AMZN", row.Ticker())
	assert.False(t, row.SuggestionsOpen())
	assert.Equal(t, 0, m.focus, "arrows were consumed by the popup")
}

func TestEscapeClosesPopup(t *testing.T) {
	m := newReadyModel(t, Options{})
	row := m.Controller().Rows()[0]

	typeText(m, "ms")
	require.True(t, row.SuggestionsOpen())
	m.Update(key(tea.KeyEsc))
	assert.False(t, row.SuggestionsOpen())
	assert.Equal(t, "ms", row.Ticker())
}

func TestBackspaceEditsTicker(t *testing.T) {
	m := newReadyModel(t, Options{})
	row := m.Controller().Rows()[0]

	typeText(m, "aa")
	m.Update(key(tea.KeyBackspace))
	assert.Equal(t, "a", row.Ticker())
	m.Update(key(tea.KeyBackspace))
	assert.Equal(t, "", row.Ticker())
	assert.False(t, row.SuggestionsOpen())
}

func TestArrowsMoveFocusWhenPopupClosed(t *testing.T) {
	m := newReadyModel(t, Options{})
	m.Update(key(tea.KeyCtrlN))
	require.Equal(t, 2, m.Controller().Len())
	assert.Equal(t, 1, m.focus)

	m.Update(key(tea.KeyUp))
	assert.Equal(t, 0, m.focus)
	m.Update(key(tea.KeyUp))
	assert.Equal(t, 0, m.focus)
}

func TestFocusChangeClosesOtherPopups(t *testing.T) {
	m := newReadyModel(t, Options{})
	first := m.Controller().Rows()[0]
	typeText(m, "a")
	require.True(t, first.SuggestionsOpen())

	m.Update(key(tea.KeyCtrlN))
	assert.False(t, first.SuggestionsOpen())
}

func TestTabSwitchesToDateAndClosesPopup(t *testing.T) {
	m := newReadyModel(t, Options{})
	row := m.Controller().Rows()[0]
	typeText(m, "a")
	require.True(t, row.SuggestionsOpen())

	m.Update(key(tea.KeyTab))
	assert.False(t, row.SuggestionsOpen())
	typeText(m, "2024-01-31")
	assert.Equal(t, "2024-01-31", row.Date())
	assert.True(t, row.DateValid())

	m.Update(key(tea.KeyRight))
	assert.Equal(t, "2024-02-01", row.Date())
	m.Update(key(tea.KeyLeft))
	m.Update(key(tea.KeyLeft))
	assert.Equal(t, "2024-01-30", row.Date())
}

func TestRemoveFocusedRow(t *testing.T) {
	m := newReadyModel(t, Options{})
	typeText(m, "AAPL")
	m.Update(key(tea.KeyCtrlN))
	typeText(m, "MSFT")

	m.Update(key(tea.KeyCtrlD))
	entries := m.Controller().Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "AAPL", entries[0].Ticker)
	assert.Equal(t, 0, m.focus)

	m.Update(key(tea.KeyCtrlD))
	assert.Equal(t, 0, m.Controller().Len())
	assert.Contains(t, m.View(), "no rows")
}

func TestSubmitShowsResult(t *testing.T) {
	analyzer := &stubAnalyzer{result: &models.AnalysisResult{
		OverallAvgProfit: decimal.RequireFromString("4.5"),
		RealizedCount:    1,
	}}
	m := newReadyModel(t, Options{Analyzer: analyzer, TargetProfit: decimal.NewFromInt(10)})
	typeText(m, "AAPL")
	m.Update(key(tea.KeyTab))
	typeText(m, "2024-01-02")

	_, cmd := m.Update(key(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	assert.True(t, m.submitting)

	// A second submit while in flight is ignored.
	_, again := m.Update(key(tea.KeyCtrlS))
	assert.Nil(t, again)

	m.Update(m.submit()())
	assert.False(t, m.submitting)
	assert.Equal(t, int32(1), analyzer.calls.Load())
	assert.Equal(t, []models.RowEntry{{Ticker: "AAPL", Date: "2024-01-02"}}, analyzer.last.Rows)
	assert.True(t, analyzer.last.TargetProfit.Equal(decimal.NewFromInt(10)))
	require.NotNil(t, m.presenter.Result())
	assert.Contains(t, m.View(), "Summary")
}

func TestSubmitShowsBackendError(t *testing.T) {
	analyzer := &stubAnalyzer{err: &api.AnalysisError{Message: "no data for ZZZZ"}}
	m := newReadyModel(t, Options{Analyzer: analyzer})
	m.presenter.ShowResult(&models.AnalysisResult{})

	m.Update(key(tea.KeyCtrlS))
	m.Update(m.submit()())

	msg, ok := m.presenter.Error()
	require.True(t, ok)
	assert.Equal(t, "no data for ZZZZ", msg)
	assert.Nil(t, m.presenter.Result())
}

func TestImportAfterCatalogLoad(t *testing.T) {
	data := []byte("Ticker,BuyDate\nAAPL,2024-01-02\n,2024-01-03\nMSFT,2024-02-01\n")
	m := newReadyModel(t, Options{Import: &models.Upload{Filename: "trades.csv", Data: data}})

	assert.Equal(t, []models.RowEntry{
		{Ticker: "AAPL", Date: "2024-01-02"},
		{Ticker: "MSFT", Date: "2024-02-01"},
	}, m.Controller().Entries())
	assert.Len(t, m.notices, 1)
	assert.NotNil(t, m.Controller().Rows()[0].Autocomplete())
}

func TestImportFailureLeavesNoRows(t *testing.T) {
	m := newReadyModel(t, Options{Import: &models.Upload{Filename: "trades.csv", Data: []byte("Symbol,Date\nAAPL,2024-01-02\n")}})

	assert.Equal(t, 0, m.Controller().Len())
	_, ok := m.presenter.Error()
	assert.True(t, ok)
}

func TestImportFromPromptReplacesRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")
	require.NoError(t, os.WriteFile(path, []byte("Ticker,BuyDate\nMSFT,2024-02-01\nAMZN,2024-03-04\n"), 0644))

	m := newReadyModel(t, Options{})
	typeText(m, "AAPL")
	m.Update(key(tea.KeyCtrlN))
	require.Equal(t, 2, m.Controller().Len())

	m.Update(key(tea.KeyCtrlO))
	require.True(t, m.prompting)
	typeText(m, path)
	assert.Equal(t, "AAPL", m.Controller().Rows()[0].Ticker(), "typing goes to the prompt")

	_, cmd := m.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.False(t, m.prompting)
	m.Update(cmd())

	assert.Equal(t, []models.RowEntry{
		{Ticker: "MSFT", Date: "2024-02-01"},
		{Ticker: "AMZN", Date: "2024-03-04"},
	}, m.Controller().Entries())
	assert.Equal(t, 0, m.focus)
}

func TestImportPromptEscapeCancels(t *testing.T) {
	m := newReadyModel(t, Options{})
	typeText(m, "AAPL")

	m.Update(key(tea.KeyCtrlO))
	typeText(m, "trades.csv")
	_, cmd := m.Update(key(tea.KeyEsc))

	assert.Nil(t, cmd)
	assert.False(t, m.prompting)
	assert.Equal(t, []models.RowEntry{{Ticker: "AAPL"}}, m.Controller().Entries())
}

func TestImportUnreadableFileKeepsRows(t *testing.T) {
	m := newReadyModel(t, Options{})
	typeText(m, "AAPL")

	m.Update(key(tea.KeyCtrlO))
	typeText(m, filepath.Join(t.TempDir(), "missing.xlsx"))
	_, cmd := m.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)
	m.Update(cmd())

	msg, ok := m.presenter.Error()
	require.True(t, ok)
	assert.Contains(t, msg, "missing.xlsx")
	assert.Equal(t, 1, m.Controller().Len())
}

func TestCtrlCQuits(t *testing.T) {
	m := NewModel(context.Background(), Options{Catalog: testCatalog(), Analyzer: &stubAnalyzer{}})
	_, cmd := m.Update(key(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
