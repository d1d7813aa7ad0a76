package rows

import (
	"goal-stock/models"
	"strings"
)

// Suggester is the lookup an Autocomplete runs on every input change.
type Suggester interface {
	Search(query string) []models.Ticker
}

type State int

const (
	Idle State = iota
	SuggestionsOpen
)

func (s State) String() string {
	if s == SuggestionsOpen {
		return "suggestions-open"
	}
	return "idle"
}

type Key int

const (
	KeyOther Key = iota
	KeyArrowDown
	KeyArrowUp
	KeyEnter
	KeyEscape
)

const noHighlight = -1

// Autocomplete is the suggestion popup state of one ticker field.
// While open, matches is non-empty and highlighted is either noHighlight
// or a valid index into matches.
type Autocomplete struct {
	suggester Suggester

	state       State
	query       string
	matches     []models.Ticker
	highlighted int

	onSelect func(symbol string)
}

func NewAutocomplete(s Suggester, onSelect func(symbol string)) *Autocomplete {
	return &Autocomplete{
		suggester:   s,
		highlighted: noHighlight,
		onSelect:    onSelect,
	}
}

// Input re-runs the search for the new field value. An empty value or a
// query without matches closes the popup; there is no "no results" row.
func (a *Autocomplete) Input(value string) {
	query := strings.ToUpper(strings.TrimSpace(value))
	a.query = query
	if query == "" {
		a.Close()
		return
	}

	matches := a.suggester.Search(query)
	if len(matches) == 0 {
		a.Close()
		return
	}

	a.state = SuggestionsOpen
	a.matches = matches
	a.highlighted = noHighlight
}

// KeyDown applies a key press and reports whether the field consumed it.
// Enter is always consumed so it never submits the surrounding form.
func (a *Autocomplete) KeyDown(key Key) bool {
	switch key {
	case KeyArrowDown:
		if a.state != SuggestionsOpen {
			return false
		}
		if a.highlighted < len(a.matches)-1 {
			a.highlighted++
		} else {
			a.highlighted = 0
		}
		return true
	case KeyArrowUp:
		if a.state != SuggestionsOpen {
			return false
		}
		if a.highlighted > 0 {
			a.highlighted--
		} else {
			a.highlighted = len(a.matches) - 1
		}
		return true
	case KeyEnter:
		if a.state == SuggestionsOpen && a.highlighted != noHighlight {
			a.Select(a.highlighted)
		}
		return true
	case KeyEscape:
		open := a.state == SuggestionsOpen
		a.Close()
		return open
	}
	return false
}

// Select picks matches[i] as if it had been clicked.
func (a *Autocomplete) Select(i int) bool {
	if a.state != SuggestionsOpen || i < 0 || i >= len(a.matches) {
		return false
	}
	symbol := a.matches[i].Symbol
	a.Close()
	if a.onSelect != nil {
		a.onSelect(symbol)
	}
	return true
}

// PointerOutside handles a click outside the row's container.
func (a *Autocomplete) PointerOutside() {
	a.Close()
}

func (a *Autocomplete) Close() {
	a.state = Idle
	a.matches = nil
	a.highlighted = noHighlight
}

func (a *Autocomplete) State() State {
	return a.state
}

func (a *Autocomplete) Open() bool {
	return a.state == SuggestionsOpen
}

func (a *Autocomplete) Query() string {
	return a.query
}

func (a *Autocomplete) Matches() []models.Ticker {
	return a.matches
}

// Highlighted returns the highlighted index, ok is false when none is.
func (a *Autocomplete) Highlighted() (int, bool) {
	if a.highlighted == noHighlight {
		return 0, false
	}
	return a.highlighted, true
}
