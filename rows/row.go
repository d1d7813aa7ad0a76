package rows

import (
	"goal-stock/models"
	"time"
)

// Row is one live (ticker, buy date) input line.
type Row struct {
	id     int
	ticker string
	date   string

	suggest *Autocomplete // nil when the catalog was empty at creation
	picker  *DatePickerOptions
}

func (r *Row) ID() int {
	return r.id
}

func (r *Row) Ticker() string {
	return r.ticker
}

func (r *Row) Date() string {
	return r.date
}

// Autocomplete returns the row's suggestion popup, or nil if none is wired.
func (r *Row) Autocomplete() *Autocomplete {
	return r.suggest
}

// DatePicker returns the options bound to the date field, or
// DefaultDatePickerOptions when the picker bound none.
func (r *Row) DatePicker() DatePickerOptions {
	if r.picker == nil {
		return DefaultDatePickerOptions
	}
	return *r.picker
}

// BindDatePicker stores the options a DatePicker attaches to the date field.
func (r *Row) BindDatePicker(opts DatePickerOptions) {
	r.picker = &opts
}

// SetTicker is a text input event on the ticker field.
func (r *Row) SetTicker(value string) {
	r.ticker = value
	if r.suggest != nil {
		r.suggest.Input(value)
	}
}

// KeyDown forwards a key press on the ticker field and reports whether it
// was consumed. Without autocomplete only Enter is swallowed.
func (r *Row) KeyDown(key Key) bool {
	if r.suggest == nil {
		return key == KeyEnter
	}
	return r.suggest.KeyDown(key)
}

// SelectSuggestion is a click on suggestion i.
func (r *Row) SelectSuggestion(i int) bool {
	if r.suggest == nil {
		return false
	}
	return r.suggest.Select(i)
}

func (r *Row) SuggestionsOpen() bool {
	return r.suggest != nil && r.suggest.Open()
}

// Blur is the ticker field losing focus; its popup is discarded.
func (r *Row) Blur() {
	r.closeSuggestions()
}

func (r *Row) closeSuggestions() {
	if r.suggest != nil {
		r.suggest.PointerOutside()
	}
}

// SetDate is typed input on the date field.
func (r *Row) SetDate(value string) {
	r.date = value
}

// PickDate stores a date chosen from the calendar using the picker layout.
func (r *Row) PickDate(t time.Time) {
	r.date = t.Format(r.DatePicker().Layout)
}

// DateValid reports whether the date field parses with the picker layout.
func (r *Row) DateValid() bool {
	_, err := time.Parse(r.DatePicker().Layout, r.date)
	return err == nil
}

func (r *Row) Entry() models.RowEntry {
	return models.RowEntry{Ticker: r.ticker, Date: r.date}
}
