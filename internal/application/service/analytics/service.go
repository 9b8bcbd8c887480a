package analytics

import (
	"context"
	"sort"
	"strings"
	"time"

	symbols "main/internal/application/service/symbols"
	instruments "main/internal/domain/entity/instruments"
	marketdata "main/internal/domain/entity/marketdata"
	interfaces "main/internal/domain/interfaces"
	"main/internal/infrastructure/cache"

	"github.com/sirupsen/logrus"
)

const defaultDividendCount = 10

// Request carries the parameters for one full instrument analysis.
type Request struct {
	Symbol      string
	Market      instruments.Market
	Interval    marketdata.Interval
	Period      marketdata.Period
	ShortWindow int
	LongWindow  int
}

// Report is the assembled chart-and-dividend payload for one
// instrument. Bars, MAShort, MALong, Volume and Labels are aligned by
// index. An empty Bars slice means the provider had no data.
type Report struct {
	Symbol    string                        `json:"symbol"`
	Name      string                        `json:"name"`
	Bars      []marketdata.Bar              `json:"bars"`
	MAShort   []float64                     `json:"-"`
	MALong    []float64                     `json:"-"`
	Volume    []int64                       `json:"volume"`
	Labels    []string                      `json:"labels"`
	Dividends []marketdata.DividendEstimate `json:"dividends"`
	LastClose float64                       `json:"last_close"`
}

// history bundles the memoized provider fetch for one symbol+interval.
type history struct {
	bars      []marketdata.Bar
	dividends []marketdata.DividendEvent
}

// Service assembles the deep-analysis report: history fetch, trailing
// window, moving averages and the dividend estimate table.
type Service struct {
	provider  interfaces.MarketDataProvider
	symbols   *symbols.Service
	cache     *cache.Cache
	ttl       time.Duration
	logger    *logrus.Logger
	freqRules []FrequencyRule
}

func NewService(provider interfaces.MarketDataProvider, syms *symbols.Service, memo *cache.Cache, ttl time.Duration, logger *logrus.Logger) *Service {
	return &Service{
		provider:  provider,
		symbols:   syms,
		cache:     memo,
		ttl:       ttl,
		logger:    logger,
		freqRules: DefaultFrequencyRules(),
	}
}

// SetFrequencyRules overrides the dividend payout-frequency heuristics.
func (s *Service) SetFrequencyRules(rules []FrequencyRule) {
	s.freqRules = rules
}

// frequency infers the annual payout count for a symbol.
func (s *Service) frequency(symbol string) int {
	for _, rule := range s.freqRules {
		if strings.Contains(symbol, rule.Substring) {
			return rule.PerYear
		}
	}
	return defaultFrequency
}

// DividendReport derives the estimate table from the most recent
// `count` dividend events, newest first. Payout dates and annualized
// yields follow the documented market and symbol heuristics.
func (s *Service) DividendReport(events []marketdata.DividendEvent, currentPrice float64, market instruments.Market, symbol string, count int) ([]marketdata.DividendEstimate, error) {
	if currentPrice <= 0 {
		return nil, ErrInvalidPrice
	}
	if count <= 0 {
		count = defaultDividendCount
	}

	recent := make([]marketdata.DividendEvent, len(events))
	copy(recent, events)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].ExDate.After(recent[j].ExDate)
	})
	if len(recent) > count {
		recent = recent[:count]
	}

	freq := s.frequency(symbol)
	offset := payoutOffset(market)

	rows := make([]marketdata.DividendEstimate, 0, len(recent))
	for _, event := range recent {
		rows = append(rows, marketdata.DividendEstimate{
			ExDate:         event.ExDate,
			PayDate:        event.ExDate.Add(offset),
			Amount:         event.Amount,
			AnnualYieldPct: event.Amount * float64(freq) / currentPrice * 100,
		})
	}
	return rows, nil
}

// Analyze runs the full single-instrument pipeline. Provider failures
// come back as an empty report, never an error; invalid parameters fail
// loudly.
func (s *Service) Analyze(ctx context.Context, req Request) (*Report, error) {
	symbol, err := s.symbols.Normalize(req.Symbol, req.Market)
	if err != nil {
		return nil, err
	}
	if req.ShortWindow < 1 || req.LongWindow < 1 {
		return nil, ErrInvalidWindow
	}

	hist := s.fetchHistory(ctx, symbol, req.Interval)
	name := s.symbols.DisplayName(ctx, symbol)

	report := &Report{Symbol: symbol, Name: name}
	if len(hist.bars) == 0 {
		return report, nil
	}

	// Averages run over the full history so the window is already
	// filled at the left edge of the displayed slice.
	maShort, err := MovingAverage(hist.bars, req.ShortWindow)
	if err != nil {
		return nil, err
	}
	maLong, err := MovingAverage(hist.bars, req.LongWindow)
	if err != nil {
		return nil, err
	}

	bars := WindowSlice(hist.bars, req.Period)
	offset := len(hist.bars) - len(bars)

	report.Bars = bars
	report.MAShort = maShort[offset:]
	report.MALong = maLong[offset:]
	report.Volume = make([]int64, len(bars))
	report.Labels = make([]string, len(bars))
	for i, bar := range bars {
		report.Volume[i] = bar.Volume
		report.Labels[i] = HoverLabel(bar.Time, req.Interval)
	}
	report.LastClose = bars[len(bars)-1].Close

	dividends, err := s.DividendReport(hist.dividends, report.LastClose, req.Market, symbol, defaultDividendCount)
	if err != nil {
		return nil, err
	}
	report.Dividends = dividends

	return report, nil
}

// fetchHistory memoizes the provider round trip per symbol and
// interval. A failed fetch degrades to an empty history and is retried
// on the next cache miss.
func (s *Service) fetchHistory(ctx context.Context, symbol string, interval marketdata.Interval) history {
	key := cache.Key("history", symbol, interval.String())
	hist, err := cache.GetOrCompute(s.cache, key, s.ttl, func() (history, error) {
		bars, dividends, err := s.provider.History(ctx, symbol, interval)
		if err != nil {
			return history{}, err
		}
		return history{bars: bars, dividends: dividends}, nil
	})
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"symbol":   symbol,
			"interval": interval.String(),
		}).Warn("history fetch failed")
		return history{}
	}
	return hist
}
