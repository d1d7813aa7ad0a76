package rows

import (
	"context"
	"goal-stock/loader"
	"goal-stock/models"

	"github.com/rs/zerolog/log"
)

// Catalog is what the controller needs from search.Catalog.
type Catalog interface {
	Suggester
	Load(ctx context.Context) error
	Len() int
}

// Controller owns the ordered list of input rows.
type Controller struct {
	catalog Catalog
	picker  DatePicker

	rows   []*Row
	nextID int
}

func NewController(catalog Catalog, picker DatePicker) *Controller {
	if picker == nil {
		picker = CalendarPicker{}
	}
	return &Controller{catalog: catalog, picker: picker, nextID: 1}
}

// Init loads the ticker catalog and adds the first empty row. A failed load
// only disables autocomplete.
func (c *Controller) Init(ctx context.Context) {
	if c.catalog != nil {
		if err := c.catalog.Load(ctx); err != nil {
			log.Debug().Err(err).Msg("continuing without autocomplete")
		}
	}
	c.AddRow("", "")
}

// AddRow appends a row. Autocomplete is wired only when the catalog has
// entries.
func (c *Controller) AddRow(ticker, date string) *Row {
	row := &Row{id: c.nextID, ticker: ticker, date: date}
	c.nextID++

	if c.catalog != nil && c.catalog.Len() > 0 {
		row.suggest = NewAutocomplete(c.catalog, func(symbol string) {
			row.ticker = symbol
		})
	}
	c.picker.Attach(row, DefaultDatePickerOptions)

	c.rows = append(c.rows, row)
	return row
}

// RemoveRow detaches the row with the given id. It reports false if no such
// row is in the list.
func (c *Controller) RemoveRow(id int) bool {
	for i, row := range c.rows {
		if row.id == id {
			c.rows = append(c.rows[:i], c.rows[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Controller) Clear() {
	c.rows = nil
}

// ReplaceAllRows drops every row and adds one per record, in order.
func (c *Controller) ReplaceAllRows(records []models.ImportRecord) {
	c.Clear()
	for _, rec := range records {
		c.AddRow(rec.Ticker, rec.Date)
	}
}

// Import clears the list, then parses the uploaded file and applies its
// records. On error the list is left empty and the error is returned for
// display.
func (c *Controller) Import(filename string, data []byte) ([]string, error) {
	c.Clear()

	records, warnings, err := loader.ParseImport(filename, data)
	if err != nil {
		log.Error().Err(err).Str("file", filename).Msg("import failed")
		return warnings, err
	}

	c.ReplaceAllRows(records)
	log.Info().Str("file", filename).Int("rows", len(records)).Int("skipped", len(warnings)).Msg("rows imported")
	return warnings, nil
}

// PointerDown is a click inside the row with the given id; every other
// row's popup is closed. An id of 0 means outside all rows.
func (c *Controller) PointerDown(id int) {
	for _, row := range c.rows {
		if row.id != id {
			row.closeSuggestions()
		}
	}
}

func (c *Controller) Rows() []*Row {
	return c.rows
}

func (c *Controller) Row(id int) *Row {
	for _, row := range c.rows {
		if row.id == id {
			return row
		}
	}
	return nil
}

func (c *Controller) Len() int {
	return len(c.rows)
}

// Entries is the submission data of the current rows, in display order.
func (c *Controller) Entries() []models.RowEntry {
	entries := make([]models.RowEntry, len(c.rows))
	for i, row := range c.rows {
		entries[i] = row.Entry()
	}
	return entries
}
