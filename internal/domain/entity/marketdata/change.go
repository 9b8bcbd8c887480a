package marketdata

// ChangeRow is one leaderboard entry: percentage price change over the
// two most recent sessions.
type ChangeRow struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	PctChange float64 `json:"pct_change"`
}
