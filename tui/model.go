package tui

import (
	"context"
	"fmt"
	"goal-stock/models"
	"goal-stock/render"
	"goal-stock/rows"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Analyzer submits rows for analysis; *api.Client implements it.
type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error)
}

type field int

const (
	fieldTicker field = iota
	fieldDate
)

type catalogLoadedMsg struct{ err error }

type importFileMsg struct {
	path   string
	upload *models.Upload
	err    error
}

type analysisDoneMsg struct {
	result *models.AnalysisResult
	err    error
}

// Options configures a terminal editing session.
type Options struct {
	Catalog      rows.Catalog
	Analyzer     Analyzer
	TargetProfit decimal.Decimal
	Import       *models.Upload // applied once the catalog has loaded
}

// Model is the bubbletea model of the row editor.
type Model struct {
	ctx      context.Context
	catalog  rows.Catalog
	ctrl     *rows.Controller
	analyzer Analyzer
	target   decimal.Decimal
	pending  *models.Upload

	presenter render.Presenter
	spinner   spinner.Model
	notices   []string

	importPrompt textinput.Model
	prompting    bool

	ready      bool
	submitting bool
	focus      int
	field      field
}

func NewModel(ctx context.Context, opts Options) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = focusStyle

	ti := textinput.New()
	ti.Prompt = "Import file: "
	ti.Placeholder = "trades.csv or trades.xlsx"
	ti.CharLimit = 512

	return &Model{
		ctx:      ctx,
		catalog:  opts.Catalog,
		ctrl:     rows.NewController(opts.Catalog, rows.CalendarPicker{}),
		analyzer: opts.Analyzer,
		target:   opts.TargetProfit,
		pending:  opts.Import,
		spinner:  s,

		importPrompt: ti,
	}
}

func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCatalog())
}

// Controller exposes the row list, mainly for tests.
func (m *Model) Controller() *rows.Controller {
	return m.ctrl
}

func (m *Model) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg{err: m.catalog.Load(m.ctx)}
	}
}

func (m *Model) submit() tea.Cmd {
	req := models.AnalysisRequest{Rows: m.ctrl.Entries(), TargetProfit: m.target}
	return func() tea.Msg {
		res, err := m.analyzer.Analyze(m.ctx, req)
		return analysisDoneMsg{result: res, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		m.onCatalogLoaded(msg.err)
		return m, nil

	case analysisDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.presenter.ShowErr(msg.err)
		} else {
			m.presenter.ShowResult(msg.result)
		}
		return m, nil

	case importFileMsg:
		if msg.err != nil {
			m.presenter.ShowError(fmt.Sprintf("could not read %s: %v", msg.path, msg.err))
			return m, nil
		}
		m.applyImport(msg.upload)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) onCatalogLoaded(err error) {
	if err != nil {
		log.Debug().Err(err).Msg("editor running without autocomplete")
	}
	m.ready = true

	if m.pending == nil {
		m.ctrl.AddRow("", "")
		return
	}

	upload := m.pending
	m.pending = nil
	m.applyImport(upload)
}

// applyImport replaces every row with the file's records.
func (m *Model) applyImport(upload *models.Upload) {
	warnings, err := m.ctrl.Import(upload.Filename, upload.Data)
	m.notices = warnings
	if err != nil {
		m.presenter.ShowErr(err)
	}
	m.focus = 0
	m.field = fieldTicker
}

func readImportFile(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return importFileMsg{path: path, err: err}
		}
		return importFileMsg{path: path, upload: &models.Upload{Filename: filepath.Base(path), Data: data}}
	}
}

func (m *Model) focused() *rows.Row {
	list := m.ctrl.Rows()
	if m.focus < 0 || m.focus >= len(list) {
		return nil
	}
	return list[m.focus]
}

func (m *Model) setFocus(i int) {
	list := m.ctrl.Rows()
	if len(list) == 0 {
		m.focus = 0
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(list) {
		i = len(list) - 1
	}
	m.focus = i
	// Focusing a row is a click inside it and outside every other row.
	m.ctrl.PointerDown(list[i].ID())
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if !m.ready {
		return m, nil
	}
	if m.prompting {
		return m, m.handlePromptKey(msg)
	}

	switch msg.Type {
	case tea.KeyCtrlO:
		if row := m.focused(); row != nil {
			row.Blur()
		}
		m.prompting = true
		m.importPrompt.SetValue("")
		return m, m.importPrompt.Focus()

	case tea.KeyCtrlS:
		if m.submitting {
			return m, nil
		}
		m.submitting = true
		m.presenter.Reset()
		return m, m.submit()

	case tea.KeyCtrlN:
		m.ctrl.AddRow("", "")
		m.field = fieldTicker
		m.setFocus(m.ctrl.Len() - 1)
		return m, nil

	case tea.KeyCtrlD:
		if row := m.focused(); row != nil {
			m.ctrl.RemoveRow(row.ID())
			m.setFocus(m.focus)
		}
		return m, nil

	case tea.KeyTab, tea.KeyShiftTab:
		if row := m.focused(); row != nil {
			row.Blur()
		}
		if m.field == fieldTicker {
			m.field = fieldDate
		} else {
			m.field = fieldTicker
		}
		return m, nil
	}

	row := m.focused()
	if row == nil {
		return m, nil
	}
	if m.field == fieldTicker {
		return m, m.handleTickerKey(row, msg)
	}
	return m, m.handleDateKey(row, msg)
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompting = false
		m.importPrompt.Blur()
		return nil
	case tea.KeyEnter:
		m.prompting = false
		m.importPrompt.Blur()
		path := strings.TrimSpace(m.importPrompt.Value())
		if path == "" {
			return nil
		}
		return readImportFile(path)
	}

	var cmd tea.Cmd
	m.importPrompt, cmd = m.importPrompt.Update(msg)
	return cmd
}

func (m *Model) handleTickerKey(row *rows.Row, msg tea.KeyMsg) tea.Cmd {
	if key := toRowKey(msg); key != rows.KeyOther && row.KeyDown(key) {
		return nil
	}

	switch msg.Type {
	case tea.KeyUp:
		m.setFocus(m.focus - 1)
	case tea.KeyDown:
		m.setFocus(m.focus + 1)
	case tea.KeyBackspace:
		row.SetTicker(dropLastRune(row.Ticker()))
	case tea.KeyRunes, tea.KeySpace:
		row.SetTicker(row.Ticker() + string(msg.Runes))
	}
	return nil
}

func (m *Model) handleDateKey(row *rows.Row, msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyUp:
		m.setFocus(m.focus - 1)
	case tea.KeyDown:
		m.setFocus(m.focus + 1)
	case tea.KeyCtrlT:
		row.PickDate(time.Now())
	case tea.KeyLeft, tea.KeyRight:
		if t, err := time.Parse(row.DatePicker().Layout, row.Date()); err == nil {
			step := 1
			if msg.Type == tea.KeyLeft {
				step = -1
			}
			row.PickDate(t.AddDate(0, 0, step))
		}
	case tea.KeyBackspace:
		row.SetDate(dropLastRune(row.Date()))
	case tea.KeyRunes:
		row.SetDate(row.Date() + string(msg.Runes))
	}
	return nil
}

func toRowKey(msg tea.KeyMsg) rows.Key {
	switch msg.Type {
	case tea.KeyDown:
		return rows.KeyArrowDown
	case tea.KeyUp:
		return rows.KeyArrowUp
	case tea.KeyEnter:
		return rows.KeyEnter
	case tea.KeyEsc:
		return rows.KeyEscape
	}
	return rows.KeyOther
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Trade history analysis  (target +%s%%)", m.target.String())))
	b.WriteString("\n\n")

	if !m.ready {
		b.WriteString(m.spinner.View() + " Loading ticker list...\n")
		return b.String()
	}

	for i, row := range m.ctrl.Rows() {
		b.WriteString(m.viewRow(i, row))
		b.WriteString("\n")
		if i == m.focus && row.SuggestionsOpen() {
			b.WriteString(viewPopup(row.Autocomplete()))
			b.WriteString("\n")
		}
	}
	if m.ctrl.Len() == 0 {
		b.WriteString(placeholder.Render("  no rows, ctrl+n to add one") + "\n")
	}
	b.WriteString("\n")

	if m.prompting {
		b.WriteString(m.importPrompt.View() + "\n")
		b.WriteString(helpStyle.Render("enter: import (replaces all rows)  esc: cancel") + "\n\n")
	}
	for _, n := range m.notices {
		b.WriteString(noticeStyle.Render("! "+n) + "\n")
	}
	if m.submitting {
		b.WriteString(m.spinner.View() + " Analyzing...\n")
	}
	if msg, ok := m.presenter.Error(); ok {
		b.WriteString(errorStyle.Render("Error: "+msg) + "\n")
	} else if res := m.presenter.Result(); res != nil {
		b.WriteString(render.RenderResult(res, true))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab: ticker/date  ↑/↓: suggestions or rows  enter: pick  ctrl+n: add  ctrl+d: remove  ctrl+o: import  ctrl+t: today  ←/→: ±1 day  ctrl+s: analyze  ctrl+c: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) viewRow(i int, row *rows.Row) string {
	cursor := "  "
	if i == m.focus {
		cursor = focusStyle.Render("> ")
	}

	ticker := fieldText(row.Ticker(), "e.g. AAPL", 10)
	date := fieldText(row.Date(), "buy date", 10)
	if row.Date() != "" && !row.DateValid() {
		date = invalidDateStl.Render(date)
	}
	if i == m.focus {
		if m.field == fieldTicker {
			ticker = focusStyle.Render("[" + ticker + "]")
			date = " " + date + " "
		} else {
			ticker = " " + ticker + " "
			date = focusStyle.Render("[" + date + "]")
		}
	} else {
		ticker = " " + ticker + " "
		date = " " + date + " "
	}

	line := cursor + ticker + "  " + date
	if i == m.focus && m.field == fieldDate && row.DateValid() {
		t, _ := time.Parse(row.DatePicker().Layout, row.Date())
		line += "  " + helpStyle.Render(rows.CalendarLabel(t, row.DatePicker().Locale))
	}
	return line
}

func fieldText(value, hint string, width int) string {
	if value == "" {
		return placeholder.Render(fmt.Sprintf("%-*s", width, hint))
	}
	return fieldStyle.Render(fmt.Sprintf("%-*s", width, value))
}

func viewPopup(ac *rows.Autocomplete) string {
	active, hasActive := ac.Highlighted()
	lines := make([]string, 0, len(ac.Matches()))
	for i, t := range ac.Matches() {
		item := fmt.Sprintf("%-8s %-32s Rank %d", t.Symbol, truncate(t.Name, 32), t.Rank)
		if hasActive && i == active {
			lines = append(lines, activeItem.Render(item))
			continue
		}
		lines = append(lines, symbolStyle.Render(fmt.Sprintf("%-8s", t.Symbol))+" "+
			nameStyle.Render(fmt.Sprintf("%-32s", truncate(t.Name, 32)))+" "+
			rankStyle.Render(fmt.Sprintf("Rank %d", t.Rank)))
	}
	return popupStyle.Render(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
