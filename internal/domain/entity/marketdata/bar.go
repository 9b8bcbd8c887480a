package marketdata

import (
	"fmt"
	"time"
)

// Interval is a sampling interval for historical bars, in the
// provider's notation.
type Interval string

const (
	IntervalDaily   Interval = "1d"
	IntervalWeekly  Interval = "1wk"
	IntervalMonthly Interval = "1mo"
)

func (i Interval) String() string {
	return string(i)
}

func (i Interval) IsValid() bool {
	switch i {
	case IntervalDaily, IntervalWeekly, IntervalMonthly:
		return true
	default:
		return false
	}
}

func NewInterval(s string) (Interval, error) {
	i := Interval(s)
	if !i.IsValid() {
		return "", fmt.Errorf("invalid interval: %s", s)
	}
	return i, nil
}

// Period is a named trailing window of bars. Periods map to fixed
// trading-day counts (252 per year), not calendar ranges.
type Period string

const (
	PeriodHalfYear  Period = "6mo"
	PeriodOneYear   Period = "1y"
	PeriodTwoYears  Period = "2y"
	PeriodFiveYears Period = "5y"
	PeriodMax       Period = "max"
)

func (p Period) String() string {
	return string(p)
}

func (p Period) IsValid() bool {
	switch p {
	case PeriodHalfYear, PeriodOneYear, PeriodTwoYears, PeriodFiveYears, PeriodMax:
		return true
	default:
		return false
	}
}

func NewPeriod(s string) (Period, error) {
	p := Period(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid period: %s", s)
	}
	return p, nil
}

// BarCount returns the trailing bar count for the period, or 0 for the
// whole series.
func (p Period) BarCount() int {
	switch p {
	case PeriodHalfYear:
		return 126
	case PeriodOneYear:
		return 252
	case PeriodTwoYears:
		return 504
	case PeriodFiveYears:
		return 1260
	default:
		return 0
	}
}

// Bar is one OHLCV observation. Time is a timezone-naive trading date
// (midnight UTC). Series of bars are ordered ascending by Time with no
// duplicates.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}
