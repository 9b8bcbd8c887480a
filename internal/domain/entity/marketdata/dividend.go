package marketdata

import "time"

// DividendEvent is a cash dividend from the corporate-action history.
// Amount is always positive; zero-amount actions are filtered out at
// the provider boundary.
type DividendEvent struct {
	ExDate time.Time `json:"ex_date"`
	Amount float64   `json:"amount"`
}

// DividendEstimate is a derived row for the dividend report. PayDate
// and AnnualYieldPct are heuristic estimates, not authoritative
// figures.
type DividendEstimate struct {
	ExDate         time.Time `json:"ex_date"`
	PayDate        time.Time `json:"estimated_pay_date"`
	Amount         float64   `json:"amount"`
	AnnualYieldPct float64   `json:"estimated_annual_yield_pct"`
}
