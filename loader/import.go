package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"goal-stock/models"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// Column headers expected in uploaded spreadsheets.
const (
	ColumnTicker  = "Ticker"
	ColumnBuyDate = "BuyDate"
)

// DateLayout is the YYYY-MM-DD form used for buy dates everywhere.
const DateLayout = "2006-01-02"

// Excel serial of 1970-01-01 in the 1900 date system.
const excelUnixEpoch = 25569

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseImport turns an uploaded .csv or .xlsx file into rows, in file order.
// Rows missing a ticker or a date are skipped and reported as warnings.
func ParseImport(filename string, data []byte) ([]models.ImportRecord, []string, error) {
	var (
		table [][]string
		err   error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		table, err = readCSV(data)
	case ".xlsx":
		table, err = readXLSX(data)
	default:
		return nil, nil, fmt.Errorf("%w: unsupported file type %q, upload a CSV or XLSX file", ErrImportParse, filepath.Ext(filename))
	}
	if err != nil {
		return nil, nil, err
	}
	return extractRecords(filename, table)
}

func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: csv: %v", ErrImportParse, err)
	}
	return records, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx: %v", ErrImportParse, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: xlsx: workbook has no sheets", ErrImportParse)
	}

	// Raw values keep date cells as serial numbers instead of display text.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx: %v", ErrImportParse, err)
	}

	var table [][]string
	dateCol := -1
	for r, row := range rows {
		if isBlank(row) {
			continue
		}
		if len(table) == 0 {
			dateCol = indexOf(row, ColumnBuyDate)
		} else if dateCol >= 0 && dateCol < len(row) {
			numeric, err := numericCell(f, sheets[0], dateCol, r)
			if err != nil {
				return nil, fmt.Errorf("%w: xlsx: %v", ErrImportParse, err)
			}
			if numeric {
				row[dateCol] = serialCellToDate(row[dateCol])
			}
		}
		table = append(table, row)
	}
	return table, nil
}

// numericCell reports whether the cell at zero-based (col, row) is stored as
// a number. Text that merely looks numeric is not.
func numericCell(f *excelize.File, sheet string, col, row int) (bool, error) {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return false, err
	}
	typ, err := f.GetCellType(sheet, name)
	if err != nil {
		return false, err
	}
	return typ == excelize.CellTypeNumber || typ == excelize.CellTypeUnset, nil
}

// serialCellToDate rewrites an Excel date serial to YYYY-MM-DD. Anything
// else is returned as is.
func serialCellToDate(value string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return value
	}
	return SerialToDate(serial)
}

// SerialToDate converts an Excel date serial to YYYY-MM-DD (UTC).
func SerialToDate(serial float64) string {
	secs := math.Round((serial - excelUnixEpoch) * 86400)
	return time.Unix(int64(secs), 0).UTC().Format(DateLayout)
}

func extractRecords(filename string, table [][]string) ([]models.ImportRecord, []string, error) {
	if len(table) == 0 {
		return nil, nil, fmt.Errorf("%w: %s is empty", ErrImportEmpty, filename)
	}

	header := table[0]
	tickerCol := indexOf(header, ColumnTicker)
	dateCol := indexOf(header, ColumnBuyDate)
	if tickerCol < 0 || dateCol < 0 {
		return nil, nil, fmt.Errorf("%w: %s has no %q or %q column, use the provided template",
			ErrImportParse, filename, ColumnTicker, ColumnBuyDate)
	}

	var (
		records  []models.ImportRecord
		warnings []string
	)
	for i, row := range table[1:] {
		ticker := cell(row, tickerCol)
		date := cell(row, dateCol)
		if ticker == "" || date == "" {
			msg := fmt.Sprintf("row %d: missing %s or %s, skipped", i+2, ColumnTicker, ColumnBuyDate)
			log.Warn().Str("file", filename).Int("row", i+2).Msg("import row missing ticker or date")
			warnings = append(warnings, msg)
			continue
		}
		records = append(records, models.ImportRecord{Ticker: ticker, Date: date})
	}

	if len(records) == 0 {
		return nil, warnings, fmt.Errorf("%w: no valid ticker rows found in %s, check the column names and data", ErrImportEmpty, filename)
	}
	return records, warnings, nil
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
