package analytics

import (
	"errors"
	"fmt"
	"math"
	"time"

	instruments "main/internal/domain/entity/instruments"
	marketdata "main/internal/domain/entity/marketdata"
)

var (
	ErrInvalidWindow = errors.New("moving average window must be positive")
	ErrInvalidPrice  = errors.New("current price must be positive")
)

// MovingAverage computes the simple rolling mean of close prices over
// the trailing window. The output has the same length as the input;
// positions before the window fills are NaN, not zero.
func MovingAverage(bars []marketdata.Bar, window int) ([]float64, error) {
	if window < 1 {
		return nil, ErrInvalidWindow
	}

	out := make([]float64, len(bars))
	var sum float64
	for i, bar := range bars {
		sum += bar.Close
		if i >= window {
			sum -= bars[i-window].Close
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}

// WindowSlice returns the trailing bars for the named period, fewer if
// the series is shorter. Periods are trading-day approximations, not
// calendar ranges.
func WindowSlice(bars []marketdata.Bar, period marketdata.Period) []marketdata.Bar {
	n := period.BarCount()
	if n <= 0 || n >= len(bars) {
		return bars
	}
	return bars[len(bars)-n:]
}

// HoverLabel formats a bar timestamp for chart hover text: daily bars
// as the date, weekly bars as the Monday-Friday range of that week,
// monthly bars as year/month.
func HoverLabel(t time.Time, interval marketdata.Interval) string {
	switch interval {
	case marketdata.IntervalWeekly:
		sinceMonday := (int(t.Weekday()) + 6) % 7
		monday := t.AddDate(0, 0, -sinceMonday)
		friday := monday.AddDate(0, 0, 4)
		return fmt.Sprintf("%s–%s", monday.Format("2006/01/02"), friday.Format("2006/01/02"))
	case marketdata.IntervalMonthly:
		return t.Format("2006/01")
	default:
		return t.Format("2006/01/02")
	}
}

// FrequencyRule infers annual payout count from a symbol substring.
// The rules are a coarse heuristic carried over from the curated ETF
// set; outputs built on them are estimates only.
type FrequencyRule struct {
	Substring string
	PerYear   int
}

// DefaultFrequencyRules covers the curated high-dividend ETFs: monthly
// payers first, then the semi-annual pair. Anything unmatched is
// assumed quarterly.
func DefaultFrequencyRules() []FrequencyRule {
	return []FrequencyRule{
		{Substring: "00929", PerYear: 12},
		{Substring: "0050", PerYear: 2},
		{Substring: "0056", PerYear: 2},
	}
}

const defaultFrequency = 4

// Payout-date offsets from ex-date, by market.
const (
	taiwanPayoutOffset  = 28 * 24 * time.Hour
	defaultPayoutOffset = 20 * 24 * time.Hour
)

func payoutOffset(market instruments.Market) time.Duration {
	if market == instruments.MarketTaiwan {
		return taiwanPayoutOffset
	}
	return defaultPayoutOffset
}
