package rows

import (
	"fmt"
	"time"
)

// DatePickerOptions is the fixed configuration every date field gets.
type DatePickerOptions struct {
	Layout     string
	Locale     string
	EnableTime bool
	AllowInput bool // typed text is kept verbatim
}

// DefaultDatePickerOptions formats dates as YYYY-MM-DD with the Korean
// calendar locale and allows free typing.
var DefaultDatePickerOptions = DatePickerOptions{
	Layout:     "2006-01-02",
	Locale:     "ko",
	EnableTime: false,
	AllowInput: true,
}

// DatePicker is attached to each new row's date field.
type DatePicker interface {
	Attach(row *Row, opts DatePickerOptions)
}

// CalendarPicker is the default picker. It only binds options to the field;
// picking and validation go through Row.PickDate and Row.DateValid.
type CalendarPicker struct{}

func (CalendarPicker) Attach(row *Row, opts DatePickerOptions) {
	row.BindDatePicker(opts)
}

var koreanWeekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// CalendarLabel renders a date for the picker header in the given locale.
func CalendarLabel(t time.Time, locale string) string {
	if locale == "ko" {
		return fmt.Sprintf("%d년 %d월 %d일 (%s)", t.Year(), int(t.Month()), t.Day(), koreanWeekdays[t.Weekday()])
	}
	return t.Format("Mon, Jan 2 2006")
}
