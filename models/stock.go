package models

import "github.com/shopspring/decimal"

// Ticker is one entry of the autocomplete catalog served at /autocomplete.
type Ticker struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Rank   int    `json:"rank"` // popularity rank, 1 is the most traded
}

// RowEntry is the submitted value of one input row.
type RowEntry struct {
	Ticker string `json:"ticker"`
	Date   string `json:"date"`
}

// ImportRecord is one valid row read from an uploaded spreadsheet.
type ImportRecord struct {
	Ticker string
	Date   string
}

// Upload is a spreadsheet attached to an analysis request as excel_file.
type Upload struct {
	Filename string
	Data     []byte
}

type AnalysisRequest struct {
	Rows         []RowEntry
	TargetProfit decimal.Decimal // percent, e.g. 10 for +10%
	File         *Upload
}

// Position is a single analysed holding returned by the backend.
type Position struct {
	Symbol      string           `json:"symbol"`
	BuyDate     string           `json:"buy_date"`
	BuyPrice    decimal.Decimal  `json:"buy_price"`
	TargetPrice *decimal.Decimal `json:"target_price,omitempty"`
	SellPrice   decimal.Decimal  `json:"sell_price"`
	Profit      decimal.Decimal  `json:"profit"`
	Days        int              `json:"days"`
	AchieveDate *string          `json:"achieve_date,omitempty"` // nil while unrealized
	Realized    bool             `json:"realized"`
}

type AnalysisResult struct {
	OverallAvgProfit decimal.Decimal `json:"overall_avg_profit"`
	RealizedCount    int             `json:"realized_count"`
	UnrealizedCount  int             `json:"unrealized_count"`
	AvgRealizedDays  decimal.Decimal `json:"avg_realized_days"`
	RealizedList     []Position      `json:"realized_list"`
	UnrealizedList   []Position      `json:"unrealized_list"`
}
