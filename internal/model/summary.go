package model

// Summary aggregates a caller's trades. Money and percentages are rounded to
// two decimals.
type Summary struct {
	TotalTrades   int     `json:"total_trades"`
	TotalPnL      float64 `json:"total_pnl"`
	AvgPnL        float64 `json:"avg_pnl"`
	WinningTrades int     `json:"winning_trades"`
	LosingTrades  int     `json:"losing_trades"`
	WinRate       float64 `json:"win_rate"`
	AvgRisk       float64 `json:"avg_risk"`
}

// Export is a full dump of a caller's journal.
type Export struct {
	Trades      []Trade        `json:"trades"`
	DayJournals []DayJournal   `json:"day_journals"`
	Metadata    ExportMetadata `json:"metadata"`
}

type ExportMetadata struct {
	TotalTrades      int    `json:"total_trades"`
	TotalDayJournals int    `json:"total_day_journals"`
	ExportDate       string `json:"export_date"`
}
